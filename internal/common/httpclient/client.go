package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	appErr "ojplay/pkg/errors"
	"ojplay/pkg/utils/logger"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id to the backend.
const RequestIDHeader = "X-Request-Id"

const maxErrorBody = 512

// ResponseInfo carries response details.
type ResponseInfo struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// OK reports a 2xx status.
func (r ResponseInfo) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client wraps JSON requests against one base URL.
type Client struct {
	mu      sync.RWMutex
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// New creates a client. Responses are transparently gunzipped.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Transport: gzhttp.Transport(http.DefaultTransport)},
	}
}

func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

func (c *Client) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

// Do performs a request. Any HTTP status is returned as-is; only transport
// failures produce an error.
func (c *Client) Do(ctx context.Context, method, path string, headers map[string]string, body []byte) (ResponseInfo, error) {
	var info ResponseInfo
	if timeout := c.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	url := c.BaseURL() + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return info, fmt.Errorf("build request failed: %w", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := logger.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	info.Duration = time.Since(start)
	if err != nil {
		return info, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	info.StatusCode = resp.StatusCode
	info.Headers = resp.Header
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return info, fmt.Errorf("read response body failed: %w", err)
	}
	info.Body = bodyBytes

	logger.Debug(logger.WithRequestID(ctx, requestID), "http request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", info.StatusCode),
		zap.Duration("duration", info.Duration),
	)
	return info, nil
}

// GetJSON issues a GET and decodes a 2xx body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON encodes in, issues a POST and decodes a 2xx body into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request body failed: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out interface{}) error {
	resp, err := c.Do(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return appErr.StatusError(method, c.BaseURL()+path, resp.StatusCode).
			WithDetail("body", truncate(resp.Body, maxErrorBody))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return appErr.Wrapf(err, appErr.InvalidResponse, "decode %s %s response failed", method, path)
	}
	return nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
