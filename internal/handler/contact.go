package handler

import (
	"net/http"

	"github.com/blogcore-dev/blogcore/internal/middleware"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/service"
	"github.com/blogcore-dev/blogcore/internal/utils"
)

func (h *Handler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Name         string `validate:"required" json:"name"`
		Email        string `validate:"required" json:"email"`
		Message      string `validate:"required" json:"message"`
		CaptchaToken string `json:"captcha_token"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user := middleware.GetUserFromContext(r)
	ticketId, err := h.contact.Submit(r.Context(), service.ContactRequest{
		Name:         body.Name,
		Email:        body.Email,
		Message:      body.Message,
		CaptchaToken: body.CaptchaToken,
		Identity:     ratelimit.Identity(user, r),
		RemoteIP:     ratelimit.ClientIP(r),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	utils.WriteJSON(w, map[string]string{"ticket_id": ticketId})
}
