package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/blogcore-dev/blogcore/internal/captcha"
	"github.com/blogcore-dev/blogcore/internal/config"
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/logger"
	"github.com/blogcore-dev/blogcore/internal/middleware/metrics"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/validation"
)

const (
	maxContactNameLength    = 100
	maxContactMessageLength = 5000
)

type ContactRequest struct {
	Name         string
	Email        string
	Message      string
	CaptchaToken string
	Identity     string
	RemoteIP     string
}

type ContactService interface {
	// Submit processes a contact form message and returns a ticket id the
	// sender can reference in follow-ups.
	Submit(ctx context.Context, req ContactRequest) (string, error)
}

type ContactNotifier interface {
	ContactMessage(ticketId, name, email, message string) bool
}

type Contact struct {
	limiter  RateLimiter
	verifier captcha.Verifier
	notifier ContactNotifier
	policy   config.RateLimitPolicy
}

func NewContact(limiter RateLimiter, verifier captcha.Verifier, notifier ContactNotifier, policy config.RateLimitPolicy) ContactService {
	return &Contact{limiter, verifier, notifier, policy}
}

func (c *Contact) Submit(ctx context.Context, req ContactRequest) (string, error) {
	if c.limiter.CheckAndIncrement(ctx, ratelimit.ActionContactForm, req.Identity, c.policy.MaxAttempts, c.policy.Window()) {
		metrics.RateLimitRejection(ratelimit.ActionContactForm)
		return "", e.RateLimited("contact form")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", e.Validation("Name is required")
	}
	if len([]rune(name)) > maxContactNameLength {
		return "", e.Validation("Name is too long")
	}
	if err := validation.Email(req.Email); err != nil {
		return "", err
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", e.Validation("Message is required")
	}
	if len([]rune(message)) > maxContactMessageLength {
		return "", e.Validation("Message is too long")
	}

	if ok, score := c.verifier.Verify(ctx, req.CaptchaToken, ratelimit.ActionContactForm, req.RemoteIP); !ok {
		logger.Log.Info("contact message rejected by captcha", "identity", req.Identity, "score", score)
		return "", e.Forbidden("Captcha verification failed")
	}

	ticketId := uuid.NewString()
	if !c.notifier.ContactMessage(ticketId, name, req.Email, message) {
		return "", e.Downstream()
	}
	return ticketId, nil
}
