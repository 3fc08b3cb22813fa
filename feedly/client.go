// Package feedly is a client for the Feedly Cloud v3 REST API.
//
// Each operation sends one HTTP request (more only when retries are enabled),
// authenticates with "Authorization: OAuth <token>" and decodes the JSON reply
// into a Response envelope. Marker calls keep the reply body as raw bytes.
// Non-2xx replies come back as *APIError.
package feedly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/olgasafonova/feedly-go/internal/base"
	apierrors "github.com/olgasafonova/feedly-go/internal/errors"
	"github.com/olgasafonova/feedly-go/internal/infra"
	"github.com/olgasafonova/feedly-go/metrics"
)

// Endpoint paths, joined with Config.BaseURL at call time
const (
	pathPreferences    = "/v3/preferences"
	pathCategories     = "/v3/categories"
	pathMarkers        = "/v3/markers"
	pathTags           = "/v3/tags"
	pathSubscriptions  = "/v3/subscriptions"
	pathStreamIDs      = "/v3/streams/ids"
	pathStreamContents = "/v3/streams/contents"
	pathEntries        = "/v3/entries"
	pathEntriesMget    = "/v3/entries/.mget"
	pathFeeds          = "/v3/feeds"
)

// Client talks to the Feedly API. It is safe for concurrent use.
type Client struct {
	http *base.Client
	cfg  Config
}

// ClientOption configures the Client (re-export base.ClientOption)
type ClientOption = base.ClientOption

// RetryPolicy bounds retries of transport errors, 5xx and 429 responses
type RetryPolicy = base.RetryPolicy

// BreakerConfig tunes the optional circuit breaker
type BreakerConfig = infra.BreakerConfig

// CircuitBreakerStats reports the circuit breaker state
type CircuitBreakerStats = infra.CircuitBreakerStats

// DefaultBreakerConfig opens after 5 consecutive failures and probes again after 30s
func DefaultBreakerConfig() BreakerConfig {
	return infra.DefaultBreakerConfig()
}

// WithHTTPClient sets a custom HTTP client. It replaces the client built from Config.Timeout.
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithRetryPolicy overrides Config.MaxRetries and the backoff intervals
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return base.WithRetry(p)
}

// WithCircuitBreaker enables a circuit breaker that fails fast after repeated
// transport errors or 5xx responses.
func WithCircuitBreaker(cfg BreakerConfig) ClientOption {
	return func(c *base.Client) {
		cb := infra.NewCircuitBreaker(cfg)
		cb.OnStateChange(func(from, to infra.CircuitState) {
			metrics.SetCircuitState(int(to))
			c.Logger.Warn("Circuit breaker state changed",
				"from", from.String(),
				"to", to.String())
		})
		base.WithCircuitBreaker(cb)(c)
	}
}

// NewClient validates cfg, fills in defaults and returns a ready Client.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	baseOpts := []ClientOption{
		base.WithTimeout(cfg.Timeout),
		base.WithRetry(RetryPolicy{MaxRetries: cfg.MaxRetries}),
	}

	return &Client{
		http: base.NewClient(append(baseOpts, opts...)...),
		cfg:  cfg,
	}, nil
}

// AccessToken returns the configured token
func (c *Client) AccessToken() string {
	return c.cfg.AccessToken
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// CircuitBreakerStats returns the breaker state, "disabled" when none is configured
func (c *Client) CircuitBreakerStats() CircuitBreakerStats {
	return c.http.CircuitBreakerStats()
}

// Response is the envelope every operation returns
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Body       T
}

// headers builds the headers sent on every call
func (c *Client) headers() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.AccessToken != "" {
		h.Set("Authorization", "OAuth "+c.cfg.AccessToken)
	}
	return h
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// send issues one request and returns the raw 2xx reply.
// payload, when non-nil, is marshaled as the JSON request body.
func send(ctx context.Context, c *Client, op, method, path string, query url.Values, payload any) (*base.Response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("feedly %s: encode request: %w", op, err)
		}
	}

	resp, err := c.http.Do(ctx, base.Request{
		Operation: op,
		Method:    method,
		URL:       c.endpoint(path, query),
		Header:    c.headers(),
		Body:      body,
	})
	if err != nil {
		return nil, fmt.Errorf("feedly %s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIError(op, resp.StatusCode, resp.Body)
	}
	return resp, nil
}

// call issues one request and decodes a 2xx body into T.
func call[T any](ctx context.Context, c *Client, op, method, path string, query url.Values, payload any) (*Response[T], error) {
	resp, err := send(ctx, c, op, method, path, query, payload)
	if err != nil {
		return nil, err
	}

	out := &Response[T]{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out.Body); err != nil {
		return nil, fmt.Errorf("feedly %s: decode response: %w", op, err)
	}
	return out, nil
}

// callRaw issues one request and returns the 2xx body undecoded
func callRaw(ctx context.Context, c *Client, op, method, path string, query url.Values, payload any) (*Response[[]byte], error) {
	resp, err := send(ctx, c, op, method, path, query, payload)
	if err != nil {
		return nil, err
	}
	return &Response[[]byte]{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}
