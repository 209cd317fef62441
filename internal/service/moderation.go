package service

import (
	"strings"

	"github.com/blogcore-dev/blogcore/internal/domain"
)

type ModerationService interface {
	ListPending(query string) ([]domain.Comment, error)
	Approve(id domain.CommentId) (*domain.Comment, error)
	Delete(id domain.CommentId) (int64, error)
}

type Moderation struct {
	storage  ModerationStorage
	notifier CommentNotifier
}

type ModerationStorage interface {
	GetComment(id domain.CommentId) (*domain.Comment, error)
	GetPost(id domain.PostId) (*domain.Post, error)
	ApproveComment(id domain.CommentId) error
	DeleteCommentTree(id domain.CommentId) (int64, error)
	ListPending(query string) ([]domain.Comment, error)
}

func NewModeration(storage ModerationStorage, notifier CommentNotifier) ModerationService {
	return &Moderation{storage, notifier}
}

// ListPending returns the moderation queue, newest first, optionally
// filtered by a free text search over author, post title and comment text.
func (m *Moderation) ListPending(query string) ([]domain.Comment, error) {
	pending, err := m.storage.ListPending(strings.TrimSpace(query))
	if err != nil {
		return nil, storeErr("list pending", err)
	}
	return pending, nil
}

// Approve publishes a pending comment and tells the author. Approving twice
// is harmless, the comment just stays visible.
func (m *Moderation) Approve(id domain.CommentId) (*domain.Comment, error) {
	if err := m.storage.ApproveComment(id); err != nil {
		return nil, storeErr("approve comment", err)
	}
	comment, err := m.storage.GetComment(id)
	if err != nil {
		return nil, storeErr("get comment", err)
	}
	if post, err := m.storage.GetPost(comment.PostId); err == nil {
		go m.notifier.CommentApproved(comment, post)
	}
	return comment, nil
}

// Delete removes the comment together with every reply under it and reports
// how many comments were removed.
func (m *Moderation) Delete(id domain.CommentId) (int64, error) {
	deleted, err := m.storage.DeleteCommentTree(id)
	if err != nil {
		return 0, storeErr("delete comment tree", err)
	}
	return deleted, nil
}
