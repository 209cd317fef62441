package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/middleware"
	"github.com/blogcore-dev/blogcore/internal/middleware/metrics"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/service"
	"github.com/blogcore-dev/blogcore/internal/utils"
)

func (h *Handler) SubmitComment(w http.ResponseWriter, r *http.Request) {
	postId, err := urlParamInt64(r, "post")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	type bodyJson struct {
		ParentId     *domain.CommentId `json:"parent_id"`
		Body         json.RawMessage   `validate:"required" json:"body"`
		CaptchaToken string            `json:"captcha_token"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	comment, err := h.submission.Submit(r.Context(), service.SubmissionRequest{
		PostId:       postId,
		Author:       *user,
		ParentId:     body.ParentId,
		RawBody:      body.Body,
		CaptchaToken: body.CaptchaToken,
		Identity:     ratelimit.Identity(user, r),
		RemoteIP:     ratelimit.ClientIP(r),
	})
	if err != nil {
		metrics.CommentSubmission(submissionOutcome(err))
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.CommentSubmission("accepted")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, toCommentJSON(comment))
}

func submissionOutcome(err error) string {
	statusErr, ok := err.(*e.ErrorWithStatusCode)
	if !ok {
		return "error"
	}
	switch statusErr.StatusCode {
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusForbidden:
		return "captcha_failed"
	case http.StatusBadRequest:
		return "rejected"
	default:
		return "error"
	}
}

// GetThread returns the comment tree of a post. Moderators see pending
// comments too, everyone else only approved ones.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	postId, err := urlParamInt64(r, "post")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r)
	includeUnapproved := user != nil && user.Moderator

	forest, err := h.comment.Thread(postId, includeUnapproved)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, toForestJSON(forest))
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	commentId, err := urlParamInt64(r, "comment")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	comment, err := h.comment.Get(commentId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if !comment.Approved {
		user := middleware.GetUserFromContext(r)
		if user == nil || !user.Moderator {
			utils.WriteErrorAndStatusCode(w, e.NotFound("Comment"))
			return
		}
	}
	utils.WriteJSON(w, toCommentJSON(*comment))
}

func (h *Handler) GetReplies(w http.ResponseWriter, r *http.Request) {
	commentId, err := urlParamInt64(r, "comment")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	user := middleware.GetUserFromContext(r)
	approvedOnly := user == nil || !user.Moderator

	replies, err := h.comment.Replies(commentId, approvedOnly)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, toCommentsJSON(replies))
}

// GetThreadInfo reports where a comment sits in its thread: nesting depth
// and the id of the top level ancestor.
func (h *Handler) GetThreadInfo(w http.ResponseWriter, r *http.Request) {
	commentId, err := urlParamInt64(r, "comment")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	depth, root, err := h.comment.ThreadInfo(commentId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"depth":   depth,
		"root_id": root.Id,
	})
}
