package handler

import (
	"net/http"

	"github.com/blogcore-dev/blogcore/internal/middleware/metrics"
	"github.com/blogcore-dev/blogcore/internal/utils"
)

// Moderation endpoints. The router guards them with ModeratorOnly, handlers
// assume the caller is already vetted.

func (h *Handler) ListPendingComments(w http.ResponseWriter, r *http.Request) {
	pending, err := h.moderation.ListPending(r.URL.Query().Get("query"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, toCommentsJSON(pending))
}

func (h *Handler) ApproveComment(w http.ResponseWriter, r *http.Request) {
	commentId, err := urlParamInt64(r, "comment")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	comment, err := h.moderation.Approve(commentId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.ModerationAction("approve")
	utils.WriteJSON(w, toCommentJSON(*comment))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentId, err := urlParamInt64(r, "comment")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	deleted, err := h.moderation.Delete(commentId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.ModerationAction("delete")
	utils.WriteJSON(w, map[string]int64{"deleted": deleted})
}
