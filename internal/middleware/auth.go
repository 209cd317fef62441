package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/blogcore-dev/blogcore/internal/domain"
	"github.com/blogcore-dev/blogcore/internal/jwt"
	"github.com/blogcore-dev/blogcore/internal/utils"
)

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

// extractToken looks for credentials in the access cookie first, then in a
// bearer Authorization header. Empty string means anonymous.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return token
		}
	}
	return ""
}

func Auth(jwtService jwt.JwtService, moderatorOnly bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			user, err := jwtService.DecodeUser(token)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if moderatorOnly && !user.Moderator {
				http.Error(w, "Access denied. Only for moderators", http.StatusForbidden)
				return
			}

			next(w, r.WithContext(WithUser(r.Context(), user)))
		}
	}
}

func ModeratorOnly(jwtService jwt.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, true)
}

func NeedAuth(jwtService jwt.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, false)
}

// OptionalAuth attaches the user when valid credentials are present but
// never rejects the request. Anonymous traffic flows through untouched;
// rate limiting keys off the IP instead.
func OptionalAuth(jwtService jwt.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next(w, r)
				return
			}
			user, err := jwtService.DecodeUser(token)
			if err != nil {
				next(w, r)
				return
			}
			next(w, r.WithContext(WithUser(r.Context(), user)))
		}
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userClaimsKey, user)
}

// Function to retrieve the user from the context
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
