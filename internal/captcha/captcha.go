// Package captcha wraps the reCAPTCHA v3 verification oracle. The core
// consumes it as a boolean-with-score gate; the network call itself is the
// provider's concern.
package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blogcore-dev/blogcore/internal/logger"
)

const defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"

type Verifier interface {
	// Verify checks token against the oracle and returns whether the
	// submission passes the configured score threshold, plus the raw score.
	Verify(ctx context.Context, token, action, remoteIP string) (bool, float64)
}

type Recaptcha struct {
	secret    string
	threshold float64
	testing   bool
	client    *http.Client
	endpoint  string
}

func New(secret string, threshold float64, testing bool) *Recaptcha {
	return &Recaptcha{
		secret:    secret,
		threshold: threshold,
		testing:   testing,
		client:    &http.Client{Timeout: 5 * time.Second},
		endpoint:  defaultEndpoint,
	}
}

func (c *Recaptcha) Verify(ctx context.Context, token, action, remoteIP string) (bool, float64) {
	if c.testing {
		return true, 1.0
	}
	if token == "" {
		return false, 0.0
	}
	if c.secret == "" {
		logger.Log.Error("captcha secret is not configured")
		return false, 0.0
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logger.Log.Error("captcha request build failed", "error", err)
		return false, 0.0
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Log.Error("captcha verification failed", "error", err)
		return false, 0.0
	}
	defer resp.Body.Close()

	var result struct {
		Success bool    `json:"success"`
		Score   float64 `json:"score"`
		Action  string  `json:"action"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Log.Error("captcha response decode failed", "error", err)
		return false, 0.0
	}

	valid := result.Success && result.Action == action && result.Score >= c.threshold
	return valid, result.Score
}
