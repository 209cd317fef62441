package handler

import (
	"net/http"

	"github.com/blogcore-dev/blogcore/internal/middleware"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
	"github.com/blogcore-dev/blogcore/internal/utils"
)

func (h *Handler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)

	posts, err := h.search.Posts(r.Context(), ratelimit.Identity(user, r), r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	out := make([]postJSON, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostJSON(post))
	}
	utils.WriteJSON(w, out)
}
