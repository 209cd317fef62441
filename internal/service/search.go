package service

import (
	"context"

	"github.com/blogcore-dev/blogcore/internal/config"
	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/middleware/metrics"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/validation"
)

type SearchService interface {
	Posts(ctx context.Context, identity, query string) ([]domain.Post, error)
}

type SearchStorage interface {
	SearchPosts(query string) ([]domain.Post, error)
}

type Search struct {
	storage SearchStorage
	limiter RateLimiter
	policy  config.RateLimitPolicy
}

func NewSearch(storage SearchStorage, limiter RateLimiter, policy config.RateLimitPolicy) SearchService {
	return &Search{storage, limiter, policy}
}

// Posts runs a rate limited full text-ish search over post titles and
// intros. The query is cleaned before it reaches storage.
func (s *Search) Posts(ctx context.Context, identity, query string) ([]domain.Post, error) {
	if s.limiter.CheckAndIncrement(ctx, ratelimit.ActionBlogSearch, identity, s.policy.MaxAttempts, s.policy.Window()) {
		metrics.RateLimitRejection(ratelimit.ActionBlogSearch)
		return nil, e.RateLimited("search")
	}

	cleaned, err := validation.SearchQuery(query)
	if err != nil {
		return nil, err
	}
	posts, err := s.storage.SearchPosts(cleaned)
	if err != nil {
		return nil, storeErr("search posts", err)
	}
	return posts, nil
}
