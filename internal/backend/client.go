// Package backend is the HTTP transport for the chat endpoint.
package backend

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
	"go.uber.org/zap"
)

// DefaultPath is where the chat endpoint lives on the backend.
const DefaultPath = "/api/chat"

// DefaultMaxResponseBytes caps a reply body when Config leaves it unset.
const DefaultMaxResponseBytes = 16 << 20

// ErrRemoteCall wraps every failure of a chat round trip: transport errors,
// non-2xx statuses and malformed bodies alike.
var ErrRemoteCall = errors.New("remote call failed")

// Config describes where and how to reach the backend.
type Config struct {
	BaseURL string
	Path    string
	// Timeout bounds a whole round trip. Zero means no client-side limit.
	Timeout time.Duration
	// Headers are added to every request.
	Headers map[string]string
	// MaxResponseBytes bounds the reply body. Zero means
	// DefaultMaxResponseBytes.
	MaxResponseBytes int64
}

// Client posts user messages to the chat endpoint.
type Client struct {
	endpoint   string
	headers    map[string]string
	maxBody    int64
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

// NewClient validates cfg and builds a client. A nil logger disables logging.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	endpoint, err := resolveEndpoint(cfg.BaseURL, cfg.Path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}

	return &Client{
		endpoint: endpoint,
		headers:  headers,
		maxBody:  maxBody,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}, nil
}

func resolveEndpoint(baseURL, path string) (string, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if base.Host == "" {
		return "", fmt.Errorf("invalid base url %q: missing host", baseURL)
	}

	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base.String(), "/") + path, nil
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts message and returns the backend's reply text. Any failure is
// returned wrapped in ErrRemoteCall; there are no retries.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID))
	start := time.Now()

	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrRemoteCall, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrRemoteCall, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	log.Debug("sending chat request", zap.String("endpoint", c.endpoint), zap.Int("message_len", len(message)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("chat request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrRemoteCall, err)
	}
	if int64(len(body)) > c.maxBody {
		return "", fmt.Errorf("%w: response exceeds %d bytes", ErrRemoteCall, c.maxBody)
	}

	log.Debug("chat response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_len", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrRemoteCall, resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode body: %w", ErrRemoteCall, err)
	}
	if out.Response == nil {
		return "", fmt.Errorf("%w: response field missing", ErrRemoteCall)
	}
	return *out.Response, nil
}
