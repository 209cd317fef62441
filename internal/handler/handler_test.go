package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blogcore-dev/blogcore/internal/config"
	"github.com/blogcore-dev/blogcore/internal/domain"
	"github.com/blogcore-dev/blogcore/internal/service"
)

// Service mocks with func-field overrides, same pattern as the service
// package tests.

type MockSubmission struct {
	SubmitFunc func(ctx context.Context, req service.SubmissionRequest) (domain.Comment, error)
}

func (m *MockSubmission) Submit(ctx context.Context, req service.SubmissionRequest) (domain.Comment, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return domain.Comment{Id: 1, PostId: req.PostId, Author: req.Author}, nil
}

type MockComment struct {
	GetFunc        func(id domain.CommentId) (*domain.Comment, error)
	ThreadFunc     func(postId domain.PostId, includeUnapproved bool) ([]*domain.CommentNode, error)
	RepliesFunc    func(id domain.CommentId, approvedOnly bool) ([]domain.Comment, error)
	ThreadInfoFunc func(id domain.CommentId) (int, *domain.Comment, error)
}

func (m *MockComment) Get(id domain.CommentId) (*domain.Comment, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return &domain.Comment{Id: id, Approved: true}, nil
}

func (m *MockComment) Thread(postId domain.PostId, includeUnapproved bool) ([]*domain.CommentNode, error) {
	if m.ThreadFunc != nil {
		return m.ThreadFunc(postId, includeUnapproved)
	}
	return nil, nil
}

func (m *MockComment) Replies(id domain.CommentId, approvedOnly bool) ([]domain.Comment, error) {
	if m.RepliesFunc != nil {
		return m.RepliesFunc(id, approvedOnly)
	}
	return nil, nil
}

func (m *MockComment) ThreadInfo(id domain.CommentId) (int, *domain.Comment, error) {
	if m.ThreadInfoFunc != nil {
		return m.ThreadInfoFunc(id)
	}
	return 0, &domain.Comment{Id: id}, nil
}

type MockModeration struct {
	ListPendingFunc func(query string) ([]domain.Comment, error)
	ApproveFunc     func(id domain.CommentId) (*domain.Comment, error)
	DeleteFunc      func(id domain.CommentId) (int64, error)
}

func (m *MockModeration) ListPending(query string) ([]domain.Comment, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(query)
	}
	return nil, nil
}

func (m *MockModeration) Approve(id domain.CommentId) (*domain.Comment, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(id)
	}
	return &domain.Comment{Id: id, Approved: true}, nil
}

func (m *MockModeration) Delete(id domain.CommentId) (int64, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return 1, nil
}

type MockContact struct {
	SubmitFunc func(ctx context.Context, req service.ContactRequest) (string, error)
}

func (m *MockContact) Submit(ctx context.Context, req service.ContactRequest) (string, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return "ticket-1", nil
}

type MockSearch struct {
	PostsFunc func(ctx context.Context, identity, query string) ([]domain.Post, error)
}

func (m *MockSearch) Posts(ctx context.Context, identity, query string) ([]domain.Post, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(ctx, identity, query)
	}
	return nil, nil
}

type MockAuth struct {
	SignupFunc func(ctx context.Context, identity string, data domain.UserCreationData) (domain.User, string, error)
	MeFunc     func(id domain.UserId) (*domain.User, error)
}

func (m *MockAuth) Signup(ctx context.Context, identity string, data domain.UserCreationData) (domain.User, string, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, identity, data)
	}
	return domain.User{Id: 1, Username: data.Username, Email: data.Email}, "token", nil
}

func (m *MockAuth) Me(id domain.UserId) (*domain.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(id)
	}
	return &domain.User{Id: id, Username: "alice"}, nil
}

type MockLimiter struct {
	RemainingAndResetFunc func(ctx context.Context, action, identity string, maxAttempts int) (int, time.Duration)
}

func (m *MockLimiter) CheckAndIncrement(ctx context.Context, action, identity string, maxAttempts int, window time.Duration) bool {
	return false
}

func (m *MockLimiter) RemainingAndReset(ctx context.Context, action, identity string, maxAttempts int) (int, time.Duration) {
	if m.RemainingAndResetFunc != nil {
		return m.RemainingAndResetFunc(ctx, action, identity, maxAttempts)
	}
	return maxAttempts, 0
}

type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// testHandler bundles the handler with its mocks so tests can override the
// bits they exercise.
type testHandler struct {
	*Handler
	submission *MockSubmission
	comment    *MockComment
	moderation *MockModeration
	contact    *MockContact
	search     *MockSearch
	auth       *MockAuth
	limiter    *MockLimiter
	pinger     *MockPinger
}

func newTestHandler() *testHandler {
	th := &testHandler{
		submission: &MockSubmission{},
		comment:    &MockComment{},
		moderation: &MockModeration{},
		contact:    &MockContact{},
		search:     &MockSearch{},
		auth:       &MockAuth{},
		limiter:    &MockLimiter{},
		pinger:     &MockPinger{},
	}
	cfg := &config.Config{
		Public: config.Public{
			JwtTTL: time.Hour,
			RateLimits: config.RateLimits{
				CommentAdd:  config.RateLimitPolicy{MaxAttempts: 10, WindowSeconds: 3600},
				ContactForm: config.RateLimitPolicy{MaxAttempts: 5, WindowSeconds: 3600},
				UserSignup:  config.RateLimitPolicy{MaxAttempts: 5, WindowSeconds: 3600},
				BlogSearch:  config.RateLimitPolicy{MaxAttempts: 30, WindowSeconds: 300},
			},
		},
	}
	th.Handler = New(th.submission, th.comment, th.moderation, th.contact, th.search, th.auth, th.limiter, th.pinger, cfg)
	return th
}

// serve mounts the handler on a chi route so URL params resolve.
func serve(method, pattern string, handlerFunc http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handlerFunc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
