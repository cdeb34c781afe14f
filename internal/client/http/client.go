// Package http is the shared REST transport: JSON requests with default
// headers, exponential-backoff retries on transient status codes, and a
// typed error for non-2xx responses.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/logger"
)

// Error is returned for any response with a 4xx/5xx status.
type Error struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s failed with status %d %s: %s", e.Method, e.URL, e.StatusCode, e.Status, e.Body)
}

// RetryConfig controls how transient failures are retried.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	RetryableCodes  []int
}

// DefaultRetryConfig retries timeouts, throttles and 5xx responses.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  30 * time.Second,
		RetryableCodes:  []int{408, 429, 500, 502, 503, 504},
	}
}

func (rc *RetryConfig) retryable(code int) bool {
	for _, c := range rc.RetryableCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Client wraps net/http with a base URL, default headers and retries.
type Client struct {
	hc      *http.Client
	baseURL string
	headers map[string]string
	retry   *RetryConfig
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL sets the base URL prefixed onto every request path.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithDefaultHeader adds a header sent on every request.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithBearerToken adds an Authorization header on every request.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.headers["Authorization"] = "Bearer " + token }
}

// WithRetryConfig replaces the retry policy. Pass nil to disable retries.
func WithRetryConfig(rc *RetryConfig) Option {
	return func(c *Client) { c.retry = rc }
}

// New builds a client. The defaults speak JSON and retry per
// DefaultRetryConfig.
func New(opts ...Option) *Client {
	c := &Client{
		hc: &http.Client{Timeout: 30 * time.Second},
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		retry: DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request against path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request against path.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do builds, sends and retries one request. Non-2xx responses come back
// as (*Error, response) so callers can still read the body if needed.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	fullURL := c.baseURL + ensureLeadingSlash(path)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	start := time.Now()
	var resp *http.Response

	attempt := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		resp, err = c.hc.Do(req)
		if err != nil {
			return err
		}
		if c.retry != nil && c.retry.retryable(resp.StatusCode) {
			drain(resp)
			return fmt.Errorf("retryable status code %d", resp.StatusCode)
		}
		return nil
	}

	var err error
	if c.retry != nil && c.retry.MaxRetries > 0 {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = c.retry.InitialInterval
		bo.MaxInterval = c.retry.MaxInterval
		bo.MaxElapsedTime = c.retry.MaxElapsedTime
		err = backoff.Retry(attempt, backoff.WithContext(
			backoff.WithMaxRetries(bo, uint64(c.retry.MaxRetries)), ctx))
	} else {
		err = attempt()
	}

	duration := time.Since(start)
	if err != nil {
		logger.Error("http request failed",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		var bodyBytes []byte
		if resp.Body != nil {
			bodyBytes, _ = io.ReadAll(resp.Body)
			resp.Body.Close()
			resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
		httpErr := &Error{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Method:     method,
			URL:        fullURL,
			Body:       string(bodyBytes),
		}
		logger.Warn("http error response",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", duration))
		return resp, httpErr
	}

	logger.Debug("http request completed",
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))
	return resp, nil
}

// DecodeJSON decodes the response body into target and closes it.
func DecodeJSON(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
