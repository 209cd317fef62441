// Package notify sends comment and contact-form email notifications.
// Delivery is fire-and-forget: failures are logged and reported as a
// boolean, never propagated as a fatal error to the primary operation.
package notify

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/blogcore-dev/blogcore/internal/content"
	"github.com/blogcore-dev/blogcore/internal/domain"
	"github.com/blogcore-dev/blogcore/internal/logger"
)

const excerptLength = 200

type Notifier struct {
	sender     Sender
	adminEmail string
	strict     *bluemonday.Policy
}

func New(sender Sender, adminEmail string) *Notifier {
	return &Notifier{
		sender:     sender,
		adminEmail: adminEmail,
		strict:     bluemonday.StrictPolicy(),
	}
}

// CommentSubmitted notifies the post author about a new pending comment.
// Returns false when no author email exists or delivery failed.
func (n *Notifier) CommentSubmitted(comment *domain.Comment, post *domain.Post) bool {
	if post.Author.Email == "" {
		return false
	}

	subject := fmt.Sprintf("New comment on: %s", post.Title)
	body := fmt.Sprintf(
		"%s commented on %q:\n\n%s\n\nThe comment is awaiting moderation.",
		comment.Author.Username, post.Title, n.excerpt(comment.Body),
	)

	if err := n.sender.Send(post.Author.Email, subject, body); err != nil {
		logger.Log.Warn("comment notification failed", "comment", comment.Id, "error", err)
		return false
	}
	return true
}

// CommentApproved notifies the comment author that their comment is live.
func (n *Notifier) CommentApproved(comment *domain.Comment, post *domain.Post) bool {
	if comment.Author.Email == "" {
		return false
	}

	subject := fmt.Sprintf("Your comment on %q was approved", post.Title)
	body := fmt.Sprintf(
		"Hi %s,\n\nyour comment on %q has been approved and is now visible.",
		comment.Author.Username, post.Title,
	)

	if err := n.sender.Send(comment.Author.Email, subject, body); err != nil {
		logger.Log.Warn("approval notification failed", "comment", comment.Id, "error", err)
		return false
	}
	return true
}

// ContactMessage forwards a contact-form submission to the site owner.
func (n *Notifier) ContactMessage(ticketId, name, email, message string) bool {
	if n.adminEmail == "" {
		return false
	}

	subject := fmt.Sprintf("Contact form message [%s]", ticketId)
	body := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)

	if err := n.sender.Send(n.adminEmail, subject, body); err != nil {
		logger.Log.Warn("contact notification failed", "ticket", ticketId, "error", err)
		return false
	}
	return true
}

// excerpt renders a tag-free preview of the comment body. StrictPolicy
// guarantees no markup survives regardless of what the blocklist let through.
func (n *Notifier) excerpt(doc domain.Document) string {
	text := n.strict.Sanitize(content.Text(doc))
	runes := []rune(text)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "..."
	}
	return text
}
