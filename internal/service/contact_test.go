package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/ratelimit"
)

func contactRequest() ContactRequest {
	return ContactRequest{
		Name:         "Bob",
		Email:        "bob@example.com",
		Message:      "Hello there",
		CaptchaToken: "tok",
		Identity:     "203.0.113.9",
		RemoteIP:     "203.0.113.9",
	}
}

func TestContactSubmit(t *testing.T) {
	var gotTicket, gotName string
	notifier := &MockNotifier{
		ContactMessageFunc: func(ticketId, name, email, message string) bool {
			gotTicket, gotName = ticketId, name
			return true
		},
	}
	svc := NewContact(&MockLimiter{}, &MockVerifier{}, notifier, testPolicy)

	ticket, err := svc.Submit(context.Background(), contactRequest())
	require.NoError(t, err)
	assert.Equal(t, gotTicket, ticket)
	assert.Equal(t, "Bob", gotName)
	_, err = uuid.Parse(ticket)
	assert.NoError(t, err, "ticket id must be a uuid")
}

func TestContactRateLimited(t *testing.T) {
	limiter := &MockLimiter{
		CheckAndIncrementFunc: func(ctx context.Context, action, identity string, maxAttempts int, window time.Duration) bool {
			assert.Equal(t, ratelimit.ActionContactForm, action)
			return true
		},
	}
	svc := NewContact(limiter, &MockVerifier{}, &MockNotifier{}, testPolicy)

	_, err := svc.Submit(context.Background(), contactRequest())
	var statusErr *e.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestContactValidation(t *testing.T) {
	svc := NewContact(&MockLimiter{}, &MockVerifier{}, &MockNotifier{}, testPolicy)

	cases := []struct {
		name   string
		mutate func(*ContactRequest)
	}{
		{"empty name", func(r *ContactRequest) { r.Name = "   " }},
		{"bad email", func(r *ContactRequest) { r.Email = "not-an-email" }},
		{"empty message", func(r *ContactRequest) { r.Message = "" }},
		{"oversized name", func(r *ContactRequest) { r.Name = strings.Repeat("n", maxContactNameLength+1) }},
		{"oversized message", func(r *ContactRequest) { r.Message = strings.Repeat("a", maxContactMessageLength+1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := contactRequest()
			tc.mutate(&req)
			_, err := svc.Submit(context.Background(), req)
			var statusErr *e.ErrorWithStatusCode
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		})
	}
}

func TestContactDeliveryFailure(t *testing.T) {
	notifier := &MockNotifier{
		ContactMessageFunc: func(ticketId, name, email, message string) bool {
			return false
		},
	}
	svc := NewContact(&MockLimiter{}, &MockVerifier{}, notifier, testPolicy)

	_, err := svc.Submit(context.Background(), contactRequest())
	var statusErr *e.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestContactCaptchaRejected(t *testing.T) {
	verifier := &MockVerifier{
		VerifyFunc: func(ctx context.Context, token, action, remoteIP string) (bool, float64) {
			assert.Equal(t, ratelimit.ActionContactForm, action)
			return false, 0.1
		},
	}
	svc := NewContact(&MockLimiter{}, verifier, &MockNotifier{}, testPolicy)

	_, err := svc.Submit(context.Background(), contactRequest())
	var statusErr *e.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}
