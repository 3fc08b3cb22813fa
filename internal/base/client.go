// Package base provides the HTTP transport shared by the Feedly client:
// bounded retries, an optional circuit breaker, tracing spans and API metrics.
package base

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/olgasafonova/feedly-go/internal/infra"
	"github.com/olgasafonova/feedly-go/metrics"
	"github.com/olgasafonova/feedly-go/tracing"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps how much of a response body is read (10 MiB)
	MaxResponseSize = 10 << 20

	// DefaultInitialInterval is the first retry delay
	DefaultInitialInterval = 500 * time.Millisecond

	// DefaultMaxInterval caps the delay between retries
	DefaultMaxInterval = 10 * time.Second
)

// RetryPolicy bounds how often a failed request is re-sent.
// MaxRetries of zero sends every request exactly once.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Client provides common HTTP client infrastructure with retries and circuit breaking.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	Breaker    *infra.CircuitBreaker // nil disables circuit breaking
	Retry      RetryPolicy
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		if c != nil {
			client.HTTPClient = c
		}
	}
}

// WithTimeout replaces the HTTP client with a pooled one using the given timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient = newHTTPClient(d)
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		if l != nil {
			client.Logger = l
		}
	}
}

// WithCircuitBreaker enables circuit breaking with the given breaker
func WithCircuitBreaker(cb *infra.CircuitBreaker) ClientOption {
	return func(client *Client) {
		client.Breaker = cb
	}
}

// WithRetry sets the retry policy
func WithRetry(p RetryPolicy) ClientOption {
	return func(client *Client) {
		client.Retry = p
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(DefaultTimeout),
		Logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.Retry.InitialInterval <= 0 {
		c.Retry.InitialInterval = DefaultInitialInterval
	}
	if c.Retry.MaxInterval <= 0 {
		c.Retry.MaxInterval = DefaultMaxInterval
	}

	return c
}

// CircuitBreakerStats returns the current circuit breaker state.
// It reports "disabled" when no breaker is configured.
func (c *Client) CircuitBreakerStats() infra.CircuitBreakerStats {
	if c.Breaker == nil {
		return infra.CircuitBreakerStats{State: "disabled"}
	}
	return c.Breaker.Stats()
}

// Request describes a single Feedly API call
type Request struct {
	Operation string // metric and span label, e.g. "get_entry_ids"
	Method    string
	URL       string
	Header    http.Header
	Body      []byte
}

// Response is the raw outcome of a request that reached the server
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// statusError marks a response whose status is worth retrying.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("server returned %d", e.status)
	}
	return fmt.Sprintf("server returned %d: %s", e.status, truncate(e.body, 200))
}

// Do sends the request and returns whatever response the server gave, whatever its status.
// An error means no usable response: a transport failure, an open circuit or a canceled context.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, span := tracing.StartSpan(ctx, "feedly."+req.Operation)
	defer span.End()
	tracing.AddAPIAttributes(span, req.Operation, req.Method, urlPath(req.URL))

	if c.Breaker != nil {
		if err := c.Breaker.Allow(); err != nil {
			metrics.CircuitRejections.WithLabelValues(req.Operation).Inc()
			span.SetStatus(codes.Error, "circuit open")
			tracing.RecordError(span, err)
			return nil, err
		}
	}

	start := time.Now()
	resp, err := c.send(ctx, req)
	duration := time.Since(start).Seconds()

	if err != nil {
		errorCode := "transport"
		if ctxErr := ctx.Err(); ctxErr != nil {
			// The caller gave up; Feedly's health is unknown.
			errorCode = "canceled"
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				errorCode = "deadline_exceeded"
			}
			if c.Breaker != nil {
				c.Breaker.RecordAbort()
			}
		} else {
			c.recordBreaker(false)
		}
		metrics.RecordAPICall(req.Operation, duration, false, errorCode)
		span.SetStatus(codes.Error, err.Error())
		tracing.RecordError(span, err)
		c.Logger.Warn("Feedly request failed",
			"operation", req.Operation,
			"method", req.Method,
			"error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.recordBreaker(resp.StatusCode < 500)

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	errorCode := ""
	if !success {
		errorCode = strconv.Itoa(resp.StatusCode)
		span.SetStatus(codes.Error, "HTTP "+errorCode)
	}
	metrics.RecordAPICall(req.Operation, duration, success, errorCode)

	c.Logger.Debug("Feedly request completed",
		"operation", req.Operation,
		"method", req.Method,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	return resp, nil
}

func (c *Client) recordBreaker(ok bool) {
	if c.Breaker == nil {
		return
	}
	if ok {
		c.Breaker.RecordSuccess()
	} else {
		c.Breaker.RecordFailure()
	}
}

// send runs one attempt, or up to MaxRetries+1 attempts with exponential backoff.
// Transport errors, 5xx and 429 are retried; 429 honors a numeric Retry-After.
func (c *Client) send(ctx context.Context, req Request) (*Response, error) {
	if c.Retry.MaxRetries <= 0 {
		return c.attempt(ctx, req)
	}

	var last *Response
	op := func() (*Response, error) {
		resp, err := c.attempt(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if !retryable(resp.StatusCode) {
			return resp, nil
		}
		last = resp
		if resp.StatusCode == http.StatusTooManyRequests {
			if secs, perr := strconv.Atoi(resp.Header.Get("Retry-After")); perr == nil && secs >= 0 {
				return nil, backoff.RetryAfter(secs)
			}
		}
		return nil, &statusError{status: resp.StatusCode, body: string(resp.Body)}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.Retry.InitialInterval
	b.MaxInterval = c.Retry.MaxInterval

	resp, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(c.Retry.MaxRetries+1)),
		backoff.WithNotify(func(err error, next time.Duration) {
			metrics.APIRetries.WithLabelValues(req.Operation).Inc()
			c.Logger.Warn("Feedly request failed, retrying",
				"operation", req.Operation,
				"backoff", next,
				"error", err)
		}),
	)
	if err == nil {
		return resp, nil
	}

	// Retries exhausted on a status: hand back the last response so the caller sees it.
	var se *statusError
	var ra *backoff.RetryAfterError
	if last != nil && (errors.As(err, &se) || errors.As(err, &ra)) {
		return last, nil
	}
	return nil, err
}

func (c *Client) attempt(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	data, err := readAndClose(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// urlPath returns the path of rawURL, leaving out the query string
func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeds %d bytes", MaxResponseSize)
	}
	return body, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
