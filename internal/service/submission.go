package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/blogcore-dev/blogcore/internal/captcha"
	"github.com/blogcore-dev/blogcore/internal/config"
	"github.com/blogcore-dev/blogcore/internal/content"
	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/logger"
	"github.com/blogcore-dev/blogcore/internal/middleware/metrics"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
)

// SubmissionRequest carries one comment submission through the pipeline.
// Identity is the rate-limit actor key, RemoteIP goes to the captcha oracle.
type SubmissionRequest struct {
	PostId       domain.PostId
	Author       domain.User
	ParentId     *domain.CommentId
	RawBody      json.RawMessage
	CaptchaToken string
	Identity     string
	RemoteIP     string
}

type SubmissionService interface {
	Submit(ctx context.Context, req SubmissionRequest) (domain.Comment, error)
}

// RateLimiter is the fixed-window gate the services share.
type RateLimiter interface {
	CheckAndIncrement(ctx context.Context, action, identity string, maxAttempts int, window time.Duration) bool
	RemainingAndReset(ctx context.Context, action, identity string, maxAttempts int) (int, time.Duration)
}

type SubmissionStorage interface {
	GetPost(id domain.PostId) (*domain.Post, error)
	CreateComment(data domain.CommentCreationData) (domain.Comment, error)
}

// CommentNotifier delivers moderation mail. Best effort: senders report
// success but the pipeline never fails because of them.
type CommentNotifier interface {
	CommentSubmitted(comment *domain.Comment, post *domain.Post) bool
	CommentApproved(comment *domain.Comment, post *domain.Post) bool
}

type Submission struct {
	storage  SubmissionStorage
	limiter  RateLimiter
	verifier captcha.Verifier
	notifier CommentNotifier
	policy   config.RateLimitPolicy
}

func NewSubmission(storage SubmissionStorage, limiter RateLimiter, verifier captcha.Verifier, notifier CommentNotifier, policy config.RateLimitPolicy) SubmissionService {
	return &Submission{storage, limiter, verifier, notifier, policy}
}

// Submit runs the gauntlet in fixed order: rate limit, captcha, content
// sanitization, then persistence. The rate limit counts the attempt even
// when a later stage rejects it, so retry-spamming invalid content still
// burns budget.
func (s *Submission) Submit(ctx context.Context, req SubmissionRequest) (domain.Comment, error) {
	if s.limiter.CheckAndIncrement(ctx, ratelimit.ActionCommentAdd, req.Identity, s.policy.MaxAttempts, s.policy.Window()) {
		metrics.RateLimitRejection(ratelimit.ActionCommentAdd)
		return domain.Comment{}, e.RateLimited("comment")
	}

	if ok, score := s.verifier.Verify(ctx, req.CaptchaToken, ratelimit.ActionCommentAdd, req.RemoteIP); !ok {
		logger.Log.Info("comment rejected by captcha", "identity", req.Identity, "score", score)
		return domain.Comment{}, e.Forbidden("Captcha verification failed")
	}

	body, problems := content.SanitizeDocument(req.RawBody)
	if len(problems) > 0 {
		return domain.Comment{}, e.Validation(strings.Join(problems, "; "))
	}

	post, err := s.storage.GetPost(req.PostId)
	if err != nil {
		return domain.Comment{}, storeErr("get post", err)
	}

	comment, err := s.storage.CreateComment(domain.CommentCreationData{
		PostId:   req.PostId,
		Author:   req.Author,
		ParentId: req.ParentId,
		Body:     body,
		BodyText: content.Text(body),
	})
	if err != nil {
		return domain.Comment{}, storeErr("create comment", err)
	}

	go s.notifier.CommentSubmitted(&comment, post)

	return comment, nil
}
