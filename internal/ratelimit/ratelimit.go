// Package ratelimit implements a fixed-window counter keyed by
// (action, actor identity) over an expiring key-value store.
//
// The window is fixed, not sliding: the counter and its TTL reset together,
// so a burst straddling a window boundary can reach up to twice the nominal
// rate. Accepted trade-off for simplicity.
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/blogcore-dev/blogcore/internal/domain"
	"github.com/blogcore-dev/blogcore/internal/logger"
)

// Action tags. Each action has an independent counter namespace: exhausting
// one budget does not affect another.
const (
	ActionCommentAdd  = "comment_add"
	ActionContactForm = "contact_form"
	ActionUserSignup  = "user_signup"
	ActionBlogSearch  = "blog_search"
)

// Store is the expiring key-value backend. Implementations must make
// IncrWithTTL effectively atomic per key; separate read+write cycles lose
// updates under concurrency.
type Store interface {
	// Get returns the current count for key. ok is false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (count int64, ok bool, err error)
	// IncrWithTTL increments key atomically, initializing to 1 when absent,
	// and sets or refreshes its expiry. Returns the new count.
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// TTL returns the remaining lifetime of key, zero when absent.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type Limiter struct {
	store Store
}

func New(store Store) *Limiter {
	return &Limiter{store: store}
}

func counterKey(action, identity string) string {
	return "ratelimit:" + action + ":" + identity
}

// CheckAndIncrement reports whether the actor exceeded its budget for action.
// When not blocked the attempt is counted and the window expiry refreshed;
// when blocked the count is left untouched.
//
// Store failures fail open: the limiter is best-effort abuse mitigation, not
// a security boundary, and an unreachable store must not take submissions
// down with it. Deliberate policy, logged so outages stay visible.
func (l *Limiter) CheckAndIncrement(ctx context.Context, action, identity string, maxAttempts int, window time.Duration) bool {
	key := counterKey(action, identity)

	count, ok, err := l.store.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("rate limit store unavailable, failing open", "action", action, "error", err)
		return false
	}
	if ok && count >= int64(maxAttempts) {
		return true
	}

	if _, err := l.store.IncrWithTTL(ctx, key, window); err != nil {
		logger.Log.Warn("rate limit increment failed, failing open", "action", action, "error", err)
	}
	return false
}

// RemainingAndReset returns the attempts left in the current window and the
// seconds until it resets. Read-only: never increments. For UI/diagnostics.
func (l *Limiter) RemainingAndReset(ctx context.Context, action, identity string, maxAttempts int) (remaining int, resetIn time.Duration) {
	key := counterKey(action, identity)

	count, ok, err := l.store.Get(ctx, key)
	if err != nil || !ok {
		return maxAttempts, 0
	}

	remaining = maxAttempts - int(count)
	if remaining < 0 {
		remaining = 0
	}

	ttl, err := l.store.TTL(ctx, key)
	if err != nil || ttl < 0 {
		ttl = 0
	}
	return remaining, ttl
}

// Identity resolves the rate-limit actor: authenticated principals are keyed
// by user id so budgets follow the account, everyone else by client IP.
func Identity(user *domain.User, r *http.Request) string {
	if user != nil {
		return fmt.Sprintf("user:%d", user.Id)
	}
	return ClientIP(r)
}

// ClientIP extracts the client address, preferring the first hop of a
// forwarded-for chain, then the transport peer address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
