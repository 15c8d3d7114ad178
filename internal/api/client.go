// Package api is the HTTP transport for the Yarnly storefront. Every remote
// call goes through Client.Send: one attempt, no retries, uniform errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yarnly/internal/logging"
	"yarnly/internal/session"
)

// RequestError is the uniform failure surface for remote calls.
// Status 0 means the request never got a response (network failure).
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: request failed: %s", e.Message)
	}
	return fmt.Sprintf("api: request failed (status %d): %s", e.Status, e.Message)
}

// IsNetwork reports whether no response was received at all.
func (e *RequestError) IsNetwork() bool { return e.Status == 0 }

// IsClient reports a 4xx response.
func (e *RequestError) IsClient() bool { return e.Status >= 400 && e.Status < 500 }

// Options controls how a single request is built.
type Options struct {
	// Authenticated attaches the session token as a bearer credential.
	Authenticated bool
	// FormEncoded sends the body as application/x-www-form-urlencoded.
	// The body must be url.Values. Required by the token endpoint.
	FormEncoded bool
}

// Client issues requests against a fixed base URL.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
	logger   *zap.Logger
}

// NewClient builds a client. sessions supplies the bearer token for
// authenticated requests; it is read per request so the client always
// reflects the current session.
func NewClient(baseURL string, timeout time.Duration, sessions session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		logger:   logging.Named("api"),
	}
}

// Get issues a GET and decodes a 2xx JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts Options) error {
	return c.Send(ctx, http.MethodGet, path, nil, out, opts)
}

// Post issues a POST with a JSON or form-encoded body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts Options) error {
	return c.Send(ctx, http.MethodPost, path, body, out, opts)
}

// Send performs one request. On 2xx the JSON response body is decoded into
// out (out may be nil). Anything else comes back as a *RequestError.
func (c *Client) Send(ctx context.Context, method, path string, body, out any, opts Options) error {
	reqID := uuid.NewString()
	start := time.Now()

	reader, contentType, err := encodeBody(body, opts)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("encode body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Message: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	if opts.Authenticated {
		if token, ok := c.sessions.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return &RequestError{Message: err.Error()}
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: errorDetail(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", err),
		}
	}
	return nil
}

func encodeBody(body any, opts Options) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	if opts.FormEncoded {
		form, ok := body.(url.Values)
		if !ok {
			return nil, "", fmt.Errorf("form-encoded body must be url.Values, got %T", body)
		}
		return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

// errorDetail pulls the server's error message out of the response body.
// The API reports failures as {"detail": "..."}; anything else is passed
// through raw.
func errorDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "no response body"
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(data))
}
