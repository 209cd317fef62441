package handler

import (
	"net/http"

	"github.com/blogcore-dev/blogcore/internal/domain"
	"github.com/blogcore-dev/blogcore/internal/middleware"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/utils"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Username string `validate:"required" json:"username"`
		Email    string `validate:"required" json:"email"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.auth.Signup(r.Context(), ratelimit.ClientIP(r), domain.UserCreationData{
		Username: body.Username,
		Email:    body.Email,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, toUserJSON(user))
}

// GetMe returns the caller's account, read fresh from storage rather than
// from the token claims.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	fresh, err := h.auth.Me(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, toProfileJSON(*fresh))
}
