package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"monipaep/internal/domain"
	"monipaep/internal/metrics"
)

// Client is a domain.APIClient bound to one console session.
type Client struct {
	baseURL string
	http    *http.Client
	session *SessionManager
	limiter *rate.Limiter
	metrics metrics.Recorder
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRequestInterval spaces outgoing requests at least d apart. Zero disables pacing.
func WithRequestInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = newLimiter(d)
	}
}

// WithLimiter shares a limiter between clients.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r metrics.Recorder) ClientOption {
	return func(c *Client) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewLimiter returns a limiter spacing requests d apart, or nil when d is not positive.
func NewLimiter(d time.Duration) *rate.Limiter { return newLimiter(d) }

func newLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// NewClient returns a client for the API at baseURL using the tokens held by session.
func NewClient(baseURL string, session *SessionManager, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
		metrics: metrics.Nop{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session manager behind the client.
func (c *Client) Session() *SessionManager { return c.session }

// Get implements domain.APIClient.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post implements domain.APIClient.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put implements domain.APIClient.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete implements domain.APIClient.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	token := c.session.AccessToken()
	if token == "" {
		return domain.ErrSignedOut
	}
	status, data, err := c.send(ctx, method, target, payload, token)
	if err != nil {
		return err
	}
	if isSuccess(status) {
		return decode(data, out)
	}

	apiErr := parseAPIError(status, data)
	if status != http.StatusUnauthorized {
		return apiErr
	}
	switch {
	case apiErr.Code == domain.CodeTokenExpired:
		fresh, err := c.session.ReportExpired(ctx, token)
		if err != nil {
			return err
		}
		status, data, err = c.send(ctx, method, target, payload, fresh)
		if err != nil {
			return err
		}
		if isSuccess(status) {
			return decode(data, out)
		}
		// a second expiry is not refreshed again
		apiErr = parseAPIError(status, data)
		if status == http.StatusUnauthorized && domain.IsSignOutCode(apiErr.Code) {
			return c.session.ForceSignOut(ctx, apiErr)
		}
		return apiErr
	case domain.IsSignOutCode(apiErr.Code):
		return c.session.ForceSignOut(ctx, apiErr)
	}
	return apiErr
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte, token string) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to call %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	c.metrics.RecordUpstreamStatus(method, resp.StatusCode)
	c.logger.DebugContext(ctx, "api call", "method", method, "path", req.URL.Path, "status", resp.StatusCode)
	return resp.StatusCode, data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	return nil
}

// parseAPIError builds an APIError from an error body; bodies that are not
// {error, code} JSON keep their raw text as the message.
func parseAPIError(status int, data []byte) *domain.APIError {
	var apiErr domain.APIError
	if err := json.Unmarshal(data, &apiErr); err != nil {
		apiErr = domain.APIError{Message: strings.TrimSpace(string(data))}
	}
	apiErr.Status = status
	return &apiErr
}
