package handler

import (
	"context"

	"github.com/blogcore-dev/blogcore/internal/config"
	"github.com/blogcore-dev/blogcore/internal/service"
)

// Pinger reports backing store connectivity, for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	submission service.SubmissionService
	comment    service.CommentService
	moderation service.ModerationService
	contact    service.ContactService
	search     service.SearchService
	auth       service.AuthService
	limiter    service.RateLimiter
	storage    Pinger
	cfg        *config.Config
}

func New(
	submission service.SubmissionService,
	comment service.CommentService,
	moderation service.ModerationService,
	contact service.ContactService,
	search service.SearchService,
	auth service.AuthService,
	limiter service.RateLimiter,
	storage Pinger,
	cfg *config.Config,
) *Handler {
	return &Handler{submission, comment, moderation, contact, search, auth, limiter, storage, cfg}
}
