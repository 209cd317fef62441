package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogcore-dev/blogcore/internal/domain"
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/middleware"
	"github.com/blogcore-dev/blogcore/internal/service"
)

func withUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestSubmitComment(t *testing.T) {
	th := newTestHandler()
	var gotReq service.SubmissionRequest
	th.submission.SubmitFunc = func(ctx context.Context, req service.SubmissionRequest) (domain.Comment, error) {
		gotReq = req
		return domain.Comment{Id: 5, PostId: req.PostId, Author: req.Author}, nil
	}

	body := `{"body": [{"type": "rich_text", "value": "<p>hi</p>"}], "captcha_token": "tok"}`
	req := withUser(jsonRequest(http.MethodPost, "/v1/posts/42/comments", body), &domain.User{Id: 7, Username: "alice"})
	req.RemoteAddr = "203.0.113.9:41000"
	w := serve(http.MethodPost, "/v1/posts/{post}/comments", th.SubmitComment, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, domain.PostId(42), gotReq.PostId)
	assert.Equal(t, "user:7", gotReq.Identity)
	assert.Equal(t, "203.0.113.9", gotReq.RemoteIP)
	assert.Equal(t, "tok", gotReq.CaptchaToken)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 5, resp["id"])
	// author email must never appear in responses
	assert.NotContains(t, w.Body.String(), "email")
}

func TestSubmitCommentAnonymous(t *testing.T) {
	th := newTestHandler()

	body := `{"body": [{"type": "rich_text", "value": "<p>hi</p>"}]}`
	req := jsonRequest(http.MethodPost, "/v1/posts/42/comments", body)
	w := serve(http.MethodPost, "/v1/posts/{post}/comments", th.SubmitComment, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitCommentBadRequests(t *testing.T) {
	th := newTestHandler()
	user := &domain.User{Id: 7}

	t.Run("missing body field", func(t *testing.T) {
		req := withUser(jsonRequest(http.MethodPost, "/v1/posts/42/comments", `{"captcha_token": "tok"}`), user)
		w := serve(http.MethodPost, "/v1/posts/{post}/comments", th.SubmitComment, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := withUser(jsonRequest(http.MethodPost, "/v1/posts/42/comments", `{`), user)
		w := serve(http.MethodPost, "/v1/posts/{post}/comments", th.SubmitComment, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric post id", func(t *testing.T) {
		req := withUser(jsonRequest(http.MethodPost, "/v1/posts/abc/comments", `{"body": []}`), user)
		w := serve(http.MethodPost, "/v1/posts/{post}/comments", th.SubmitComment, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubmitCommentRateLimited(t *testing.T) {
	th := newTestHandler()
	th.submission.SubmitFunc = func(ctx context.Context, req service.SubmissionRequest) (domain.Comment, error) {
		return domain.Comment{}, e.RateLimited("comment")
	}

	body := `{"body": [{"type": "rich_text", "value": "<p>hi</p>"}]}`
	req := withUser(jsonRequest(http.MethodPost, "/v1/posts/42/comments", body), &domain.User{Id: 7})
	w := serve(http.MethodPost, "/v1/posts/{post}/comments", th.SubmitComment, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestGetThread(t *testing.T) {
	th := newTestHandler()
	var gotIncludeUnapproved bool
	th.comment.ThreadFunc = func(postId domain.PostId, includeUnapproved bool) ([]*domain.CommentNode, error) {
		gotIncludeUnapproved = includeUnapproved
		return []*domain.CommentNode{
			{Comment: domain.Comment{Id: 1, PostId: postId, Approved: true}},
		}, nil
	}

	t.Run("anonymous sees approved only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/posts/42/comments", nil)
		w := serve(http.MethodGet, "/v1/posts/{post}/comments", th.GetThread, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, gotIncludeUnapproved)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Contains(t, resp[0], "replies")
	})

	t.Run("moderator sees pending", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/v1/posts/42/comments", nil), &domain.User{Id: 1, Moderator: true})
		w := serve(http.MethodGet, "/v1/posts/{post}/comments", th.GetThread, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotIncludeUnapproved)
	})
}

func TestGetCommentHidesPending(t *testing.T) {
	th := newTestHandler()
	th.comment.GetFunc = func(id domain.CommentId) (*domain.Comment, error) {
		return &domain.Comment{Id: id, Approved: false}, nil
	}

	t.Run("anonymous gets 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/comments/3", nil)
		w := serve(http.MethodGet, "/v1/comments/{comment}", th.GetComment, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("moderator sees it", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/v1/comments/3", nil), &domain.User{Id: 1, Moderator: true})
		w := serve(http.MethodGet, "/v1/comments/{comment}", th.GetComment, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetThreadInfo(t *testing.T) {
	th := newTestHandler()
	calls := 0
	th.comment.ThreadInfoFunc = func(id domain.CommentId) (int, *domain.Comment, error) {
		calls++
		return 2, &domain.Comment{Id: 10}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/comments/12/thread_info", nil)
	w := serve(http.MethodGet, "/v1/comments/{comment}/thread_info", th.GetThreadInfo, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp["depth"])
	assert.EqualValues(t, 10, resp["root_id"])
	assert.Equal(t, 1, calls)
}
