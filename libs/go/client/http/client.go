// Package http is the outbound HTTP client shared by the gateway clients.
// It posts XML documents, records metrics and never retries on its own:
// retry policy belongs to the caller.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ledgerline/filing-api/libs/go/constants"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept on HTTPError.
const maxErrorBody = 64 << 10

// RequestOption modifies a single outgoing request
type RequestOption func(*http.Request)

// ClientOption configures an HTTPClient
type ClientOption func(*HTTPClient)

// Middleware wraps the client's transport
type Middleware func(http.RoundTripper) http.RoundTripper

// MetricsCollector receives one observation per request
type MetricsCollector interface {
	RecordRequestDuration(method, path string, statusCode int, duration time.Duration)
	RecordRequestCount(method, path string, statusCode int)
	RecordRequestError(method, path string)
}

// HTTPError is returned for any non-2xx response. Body holds at most the
// first 64KiB of the response.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Method     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
}

// HTTPClient posts documents to one gateway
type HTTPClient struct {
	client      *http.Client
	baseURL     string
	headers     http.Header
	middlewares []Middleware
	metrics     MetricsCollector
}

// NewHTTPClient creates a client that sends XML by default
func NewHTTPClient(options ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		client:  &http.Client{Timeout: defaultTimeout},
		headers: http.Header{},
		metrics: noopCollector{},
	}
	c.headers.Set("Content-Type", constants.ContentTypeXML+"; charset=utf-8")
	c.headers.Set("Accept", constants.ContentTypeXML)

	for _, option := range options {
		option(c)
	}

	transport := c.client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	// the first middleware registered ends up outermost
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		transport = c.middlewares[i](transport)
	}
	c.client.Transport = transport

	return c
}

// WithBaseURL resolves relative paths against baseURL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *HTTPClient) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithDefaultHeader sets a header on every request
func WithDefaultHeader(key, value string) ClientOption {
	return func(c *HTTPClient) { c.headers.Set(key, value) }
}

// WithTimeout bounds each request including reading the body
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) { c.client.Timeout = timeout }
}

// WithTransport replaces the innermost round tripper
func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *HTTPClient) { c.client.Transport = transport }
}

// WithMiddleware appends a transport middleware
func WithMiddleware(middleware Middleware) ClientOption {
	return func(c *HTTPClient) { c.middlewares = append(c.middlewares, middleware) }
}

// WithMetricsCollector sets the metrics collector. Nil is ignored.
func WithMetricsCollector(collector MetricsCollector) ClientOption {
	return func(c *HTTPClient) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

// WithHeader sets a header on one request
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) { req.Header.Set(key, value) }
}

// BaseURL returns the configured base URL without a trailing slash
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// PostXML posts body and returns the response body. Non-2xx responses come
// back as *HTTPError together with the (truncated) body.
func (c *HTTPClient) PostXML(ctx context.Context, path string, body []byte, options ...RequestOption) ([]byte, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	for _, option := range options {
		option(req)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.metrics.RecordRequestDuration(req.Method, path, status, time.Since(start))
	c.metrics.RecordRequestCount(req.Method, path, status)

	if err != nil {
		c.metrics.RecordRequestError(req.Method, path)
		return nil, errors.Wrap(err, "http request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordRequestError(req.Method, path)
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return raw, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        redact(req.URL),
			Method:     req.Method,
			Body:       string(raw),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return data, nil
}

func (c *HTTPClient) resolve(path string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	if c.baseURL == "" {
		if _, err := url.ParseRequestURI(path); err != nil {
			return "", errors.Wrapf(err, "invalid path %q used without base URL", path)
		}
		return path, nil
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path, nil
}

// redact drops the query string and any user info from a URL before it is
// logged or placed on an error.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.User = nil
	clean.RawQuery = ""
	return clean.String()
}

type noopCollector struct{}

func (noopCollector) RecordRequestDuration(string, string, int, time.Duration) {}
func (noopCollector) RecordRequestCount(string, string, int)                   {}
func (noopCollector) RecordRequestError(string, string)                        {}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// LoggingMiddleware logs each round trip. Bodies and headers are never
// logged since envelopes carry credentials.
func LoggingMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("url", redact(req.URL)),
				zap.Duration("duration", time.Since(start)),
			}
			switch {
			case err != nil:
				logger.Error("Gateway request failed", append(fields, zap.Error(err))...)
			case resp.StatusCode >= 400:
				logger.Warn("Gateway returned error status", append(fields, zap.Int("status", resp.StatusCode))...)
			default:
				logger.Debug("Gateway response received", append(fields, zap.Int("status", resp.StatusCode))...)
			}
			return resp, err
		})
	}
}
