package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oracleStub(t *testing.T, success bool, score float64, action string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.Form.Get("secret"))
		assert.NotEmpty(t, r.Form.Get("response"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": success,
			"score":   score,
			"action":  action,
		})
	}))
}

func TestVerifyTestingModeBypasses(t *testing.T) {
	c := New("", 0.5, true)
	valid, score := c.Verify(context.Background(), "", "comments", "")
	assert.True(t, valid)
	assert.Equal(t, 1.0, score)
}

func TestVerifyEmptyToken(t *testing.T) {
	c := New("secret", 0.5, false)
	valid, score := c.Verify(context.Background(), "", "comments", "")
	assert.False(t, valid)
	assert.Equal(t, 0.0, score)
}

func TestVerifyMissingSecret(t *testing.T) {
	c := New("", 0.5, false)
	valid, _ := c.Verify(context.Background(), "token", "comments", "")
	assert.False(t, valid)
}

func TestVerifyScoreAboveThreshold(t *testing.T) {
	srv := oracleStub(t, true, 0.9, "comments")
	defer srv.Close()

	c := New("secret", 0.5, false)
	c.endpoint = srv.URL

	valid, score := c.Verify(context.Background(), "token", "comments", "203.0.113.9")
	assert.True(t, valid)
	assert.Equal(t, 0.9, score)
}

func TestVerifyScoreBelowThreshold(t *testing.T) {
	srv := oracleStub(t, true, 0.2, "comments")
	defer srv.Close()

	c := New("secret", 0.5, false)
	c.endpoint = srv.URL

	valid, score := c.Verify(context.Background(), "token", "comments", "")
	assert.False(t, valid)
	assert.Equal(t, 0.2, score)
}

func TestVerifyActionMismatch(t *testing.T) {
	srv := oracleStub(t, true, 0.9, "login")
	defer srv.Close()

	c := New("secret", 0.5, false)
	c.endpoint = srv.URL

	valid, _ := c.Verify(context.Background(), "token", "comments", "")
	assert.False(t, valid)
}

func TestVerifyOracleUnreachable(t *testing.T) {
	c := New("secret", 0.5, false)
	c.endpoint = "http://127.0.0.1:1" // nothing listening

	valid, score := c.Verify(context.Background(), "token", "comments", "")
	assert.False(t, valid)
	assert.Equal(t, 0.0, score)
}
