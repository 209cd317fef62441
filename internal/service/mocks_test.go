package service

import (
	"context"
	"time"

	"github.com/blogcore-dev/blogcore/internal/domain"
)

// Mock structs shared by the service tests. Unset funcs fall back to a
// permissive default so each test only stubs what it cares about.

type MockStorage struct {
	GetCommentFunc        func(id domain.CommentId) (*domain.Comment, error)
	GetPostFunc           func(id domain.PostId) (*domain.Post, error)
	CreateCommentFunc     func(data domain.CommentCreationData) (domain.Comment, error)
	ApproveCommentFunc    func(id domain.CommentId) error
	DeleteCommentTreeFunc func(id domain.CommentId) (int64, error)
	ListPendingFunc       func(query string) ([]domain.Comment, error)
	PostCommentTreeFunc   func(postId domain.PostId) ([]*domain.CommentNode, error)
	CommentSubtreeFunc    func(id domain.CommentId) (*domain.CommentNode, error)
	CommentPathFunc       func(id domain.CommentId) ([]domain.Comment, error)
	SearchPostsFunc       func(query string) ([]domain.Post, error)
	CreateUserFunc        func(data domain.UserCreationData) (domain.User, error)
	GetUserFunc           func(id domain.UserId) (*domain.User, error)
}

func (m *MockStorage) GetComment(id domain.CommentId) (*domain.Comment, error) {
	if m.GetCommentFunc != nil {
		return m.GetCommentFunc(id)
	}
	return &domain.Comment{Id: id}, nil
}

func (m *MockStorage) GetPost(id domain.PostId) (*domain.Post, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(id)
	}
	return &domain.Post{Id: id}, nil
}

func (m *MockStorage) CreateComment(data domain.CommentCreationData) (domain.Comment, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(data)
	}
	return domain.Comment{
		Id:       1,
		PostId:   data.PostId,
		Author:   data.Author,
		ParentId: data.ParentId,
		Body:     data.Body,
		BodyText: data.BodyText,
	}, nil
}

func (m *MockStorage) ApproveComment(id domain.CommentId) error {
	if m.ApproveCommentFunc != nil {
		return m.ApproveCommentFunc(id)
	}
	return nil
}

func (m *MockStorage) DeleteCommentTree(id domain.CommentId) (int64, error) {
	if m.DeleteCommentTreeFunc != nil {
		return m.DeleteCommentTreeFunc(id)
	}
	return 1, nil
}

func (m *MockStorage) ListPending(query string) ([]domain.Comment, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(query)
	}
	return nil, nil
}

func (m *MockStorage) PostCommentTree(postId domain.PostId) ([]*domain.CommentNode, error) {
	if m.PostCommentTreeFunc != nil {
		return m.PostCommentTreeFunc(postId)
	}
	return nil, nil
}

func (m *MockStorage) CommentSubtree(id domain.CommentId) (*domain.CommentNode, error) {
	if m.CommentSubtreeFunc != nil {
		return m.CommentSubtreeFunc(id)
	}
	return &domain.CommentNode{Comment: domain.Comment{Id: id}}, nil
}

func (m *MockStorage) CommentPath(id domain.CommentId) ([]domain.Comment, error) {
	if m.CommentPathFunc != nil {
		return m.CommentPathFunc(id)
	}
	return []domain.Comment{{Id: id}}, nil
}

func (m *MockStorage) SearchPosts(query string) ([]domain.Post, error) {
	if m.SearchPostsFunc != nil {
		return m.SearchPostsFunc(query)
	}
	return nil, nil
}

func (m *MockStorage) CreateUser(data domain.UserCreationData) (domain.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(data)
	}
	return domain.User{Id: 1, Username: data.Username, Email: data.Email}, nil
}

func (m *MockStorage) GetUser(id domain.UserId) (*domain.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(id)
	}
	return &domain.User{Id: id, Username: "alice"}, nil
}

type MockLimiter struct {
	CheckAndIncrementFunc func(ctx context.Context, action, identity string, maxAttempts int, window time.Duration) bool
	RemainingAndResetFunc func(ctx context.Context, action, identity string, maxAttempts int) (int, time.Duration)
}

func (m *MockLimiter) CheckAndIncrement(ctx context.Context, action, identity string, maxAttempts int, window time.Duration) bool {
	if m.CheckAndIncrementFunc != nil {
		return m.CheckAndIncrementFunc(ctx, action, identity, maxAttempts, window)
	}
	return false
}

func (m *MockLimiter) RemainingAndReset(ctx context.Context, action, identity string, maxAttempts int) (int, time.Duration) {
	if m.RemainingAndResetFunc != nil {
		return m.RemainingAndResetFunc(ctx, action, identity, maxAttempts)
	}
	return maxAttempts, 0
}

type MockVerifier struct {
	VerifyFunc func(ctx context.Context, token, action, remoteIP string) (bool, float64)
}

func (m *MockVerifier) Verify(ctx context.Context, token, action, remoteIP string) (bool, float64) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token, action, remoteIP)
	}
	return true, 1.0
}

type MockNotifier struct {
	CommentSubmittedFunc func(comment *domain.Comment, post *domain.Post) bool
	CommentApprovedFunc  func(comment *domain.Comment, post *domain.Post) bool
	ContactMessageFunc   func(ticketId, name, email, message string) bool
}

func (m *MockNotifier) CommentSubmitted(comment *domain.Comment, post *domain.Post) bool {
	if m.CommentSubmittedFunc != nil {
		return m.CommentSubmittedFunc(comment, post)
	}
	return true
}

func (m *MockNotifier) CommentApproved(comment *domain.Comment, post *domain.Post) bool {
	if m.CommentApprovedFunc != nil {
		return m.CommentApprovedFunc(comment, post)
	}
	return true
}

func (m *MockNotifier) ContactMessage(ticketId, name, email, message string) bool {
	if m.ContactMessageFunc != nil {
		return m.ContactMessageFunc(ticketId, name, email, message)
	}
	return true
}

type MockJwt struct {
	NewTokenFunc   func(user domain.User) (string, error)
	DecodeUserFunc func(jwtStr string) (*domain.User, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token", nil
}

func (m *MockJwt) DecodeUser(jwtStr string) (*domain.User, error) {
	if m.DecodeUserFunc != nil {
		return m.DecodeUserFunc(jwtStr)
	}
	return &domain.User{Id: 1}, nil
}
