package handler

import (
	"net/http"

	"github.com/blogcore-dev/blogcore/internal/config"
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/middleware"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/utils"
)

func (h *Handler) policyFor(action string) (config.RateLimitPolicy, bool) {
	limits := h.cfg.Public.RateLimits
	switch action {
	case ratelimit.ActionCommentAdd:
		return limits.CommentAdd, true
	case ratelimit.ActionContactForm:
		return limits.ContactForm, true
	case ratelimit.ActionUserSignup:
		return limits.UserSignup, true
	case ratelimit.ActionBlogSearch:
		return limits.BlogSearch, true
	default:
		return config.RateLimitPolicy{}, false
	}
}

// GetRateLimitInfo tells the caller how much budget it has left for an
// action. Read only, asking never costs an attempt.
func (h *Handler) GetRateLimitInfo(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	policy, ok := h.policyFor(action)
	if !ok {
		utils.WriteErrorAndStatusCode(w, e.Validation("Unknown action"))
		return
	}

	user := middleware.GetUserFromContext(r)
	identity := ratelimit.Identity(user, r)
	remaining, resetIn := h.limiter.RemainingAndReset(r.Context(), action, identity, policy.MaxAttempts)

	utils.WriteJSON(w, map[string]any{
		"action":        action,
		"limit":         policy.MaxAttempts,
		"remaining":     remaining,
		"reset_seconds": int(resetIn.Seconds()),
	})
}
