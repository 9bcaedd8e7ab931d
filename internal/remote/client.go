// Package remote is the HTTP client for the CentsWise ledger service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Munazil1/centswise/internal/logger"
)

const serviceName = "ledger-api"

// TokenSource supplies the bearer token attached to every request. An empty
// token sends no Authorization header.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	userAgent  string
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithClock overrides the time source used for fallback serial numbers.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("ledger service base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid ledger service base URL: %w", err)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		userAgent:  "centswise/1.0",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do sends one request and decodes a 2xx JSON answer into out (when non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	body, err := c.send(ctx, op, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, in any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger.ExternalServiceCall(serviceName, op, "method", method, "path", path, "request_id", requestID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		logger.ExternalServiceResult(serviceName, op, err, "request_id", requestID)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read %s response body: %w", op, err)
		logger.ExternalServiceResult(serviceName, op, err, "request_id", requestID)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := errorFromBody(resp.StatusCode, body)
		logger.ExternalServiceResult(serviceName, op, rerr, "request_id", requestID, "status", resp.StatusCode)
		return nil, rerr
	}
	logger.ExternalServiceResult(serviceName, op, nil, "request_id", requestID, "status", resp.StatusCode)
	return body, nil
}

// Health returns the raw status payload of the service.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, "Health", http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
