package service

import (
	"context"

	"github.com/blogcore-dev/blogcore/internal/config"
	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/jwt"
	"github.com/blogcore-dev/blogcore/internal/middleware/metrics"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/validation"
)

type AuthService interface {
	// Signup registers an account and returns the user with a signed access
	// token.
	Signup(ctx context.Context, identity string, data domain.UserCreationData) (domain.User, string, error)
	// Me re-reads the account behind a token. Claims go stale, moderator
	// status may have changed since the token was issued.
	Me(id domain.UserId) (*domain.User, error)
}

type AuthStorage interface {
	CreateUser(data domain.UserCreationData) (domain.User, error)
	GetUser(id domain.UserId) (*domain.User, error)
}

type Auth struct {
	storage AuthStorage
	jwt     jwt.JwtService
	limiter RateLimiter
	policy  config.RateLimitPolicy
}

func NewAuth(storage AuthStorage, jwtService jwt.JwtService, limiter RateLimiter, policy config.RateLimitPolicy) AuthService {
	return &Auth{storage, jwtService, limiter, policy}
}

func (a *Auth) Signup(ctx context.Context, identity string, data domain.UserCreationData) (domain.User, string, error) {
	if a.limiter.CheckAndIncrement(ctx, ratelimit.ActionUserSignup, identity, a.policy.MaxAttempts, a.policy.Window()) {
		metrics.RateLimitRejection(ratelimit.ActionUserSignup)
		return domain.User{}, "", e.RateLimited("signup")
	}

	if err := validation.Username(string(data.Username)); err != nil {
		return domain.User{}, "", err
	}
	if err := validation.Email(string(data.Email)); err != nil {
		return domain.User{}, "", err
	}

	user, err := a.storage.CreateUser(data)
	if err != nil {
		return domain.User{}, "", storeErr("create user", err)
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (a *Auth) Me(id domain.UserId) (*domain.User, error) {
	user, err := a.storage.GetUser(id)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return user, nil
}
