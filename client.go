// Package pixeldojo is a client for the PixelDojo image generation API.
// It validates requests against the documented model and aspect ratio sets,
// retries transient failures with exponential backoff, and surfaces typed
// errors for every failure category.
package pixeldojo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/randomguy2443/pixeldojo-go/internal/backoff"
	"github.com/randomguy2443/pixeldojo-go/internal/cache"
	"github.com/randomguy2443/pixeldojo-go/internal/metrics"
	"github.com/randomguy2443/pixeldojo-go/internal/ratelimit"
)

const Version = "1.0.0"

const userAgent = "pixeldojo-go/" + Version

// NoRetries disables retrying when set as Config.MaxRetries.
const NoRetries = -1

// Config holds client settings. It is read once by New and never mutated
// during a request's lifecycle.
type Config struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	MaxRetries        int // retries after the initial try; 0 means the default of 3, negative disables retries
	RetryDelay        time.Duration
	MaxConnections    int
	RequestsPerMinute int // 0 disables the client-side limiter
}

// Client talks to the PixelDojo API. It is safe for concurrent use; the
// underlying connection pool is shared across calls.
type Client struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
	policy   backoff.Policy
	limiter  *ratelimit.Limiter
	metrics  *metrics.Metrics
	cache    *cache.Cache
	cacheTTL time.Duration
}

type Option func(*Client)

// WithMetrics registers prometheus collectors for request counts, retries
// and durations on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = metrics.New(reg)
	}
}

const defaultCacheTTL = 15 * time.Minute

// WithDownloadCache keeps downloaded image bytes in memory for ttl,
// keyed by URL. A non-positive ttl gets a 15 minute default.
func WithDownloadCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		c.cache = cache.New()
		c.cacheTTL = ttl
	}
}

// WithHTTPClient replaces the pooled HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func New(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://pixeldojo.ai/api/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxConnections == 0 {
		cfg.MaxConnections = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxConnsPerHost:     cfg.MaxConnections,
				MaxIdleConnsPerHost: cfg.MaxConnections / 2,
			},
		},
		logger: logger,
		policy: backoff.Policy{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   cfg.RetryDelay,
			MaxDelay:    30 * time.Second,
		},
	}

	if cfg.RequestsPerMinute > 0 {
		c.limiter = ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.RequestsPerMinute})
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases pooled connections and stops the download cache janitor.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Stop()
	}
	c.client.CloseIdleConnections()
}

// Generate performs one image generation call. Inputs are validated before
// any network I/O; transient failures are retried per the configured policy.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if c.apiKey == "" {
		return nil, &AuthenticationError{Message: "API key not configured"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	c.logger.Debug("generating images",
		zap.String("model", req.Model.String()),
		zap.String("aspect_ratio", req.AspectRatio.String()),
		zap.Int("num_outputs", req.NumOutputs),
	)

	start := time.Now()
	c.metrics.IncRequestsInFlight()
	defer c.metrics.DecRequestsInFlight()

	respBody, err := c.doWithRetry(ctx, http.MethodPost, "/generate", body)
	if err != nil {
		c.metrics.RecordRequest("generate", "error", time.Since(start))
		return nil, err
	}

	var resp GenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		c.metrics.RecordRequest("generate", "error", time.Since(start))
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	c.metrics.RecordRequest("generate", "ok", time.Since(start))
	c.metrics.RecordGeneration(len(resp.Images), resp.CreditsUsed)

	c.logger.Info("images generated",
		zap.Int("count", len(resp.Images)),
		zap.Float64("credits_used", resp.CreditsUsed),
		zap.Float64("credits_remaining", resp.CreditsRemaining),
	)

	return &resp, nil
}

// doWithRetry drives the backoff policy: transport failures, 5xx and 429
// responses are retried; auth, payment and validation errors surface
// immediately. A Retry-After hint on 429 overrides the computed delay.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			c.metrics.RecordRetry(retryReason(lastErr))
			c.logger.Warn("request failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.policy.MaxAttempts),
				zap.Error(lastErr),
			)

			var waitErr error
			var rateErr *RateLimitError
			if errors.As(lastErr, &rateErr) && rateErr.RetryAfter > 0 {
				waitErr = c.policy.WaitFor(ctx, rateErr.RetryAfter)
			} else {
				waitErr = c.policy.Wait(ctx, attempt-1)
			}
			if waitErr != nil {
				return nil, waitErr
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		respBody, err := c.do(ctx, method, path, body)
		if err == nil {
			return respBody, nil
		}

		// The caller gave up; its error wins over the attempt's.
		if ctx.Err() != nil {
			return nil, err
		}

		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.handleHTTPError(resp.StatusCode, respBody, resp.Header)
	}

	return respBody, nil
}

// errorBody is the API's error payload shape. Either "error" or "message"
// carries the description.
type errorBody struct {
	Error            string  `json:"error"`
	Message          string  `json:"message"`
	CreditsRemaining float64 `json:"credits_remaining"`
}

func (c *Client) handleHTTPError(statusCode int, body []byte, header http.Header) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Error
	if msg == "" {
		msg = parsed.Message
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return &AuthenticationError{Message: msg}
	case http.StatusPaymentRequired:
		return &InsufficientCreditsError{
			Message:          msg,
			CreditsRemaining: parsed.CreditsRemaining,
		}
	case http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    msg,
			RetryAfter: parseRetryAfter(header.Get("Retry-After")),
		}
	default:
		c.logger.Debug("api request failed",
			zap.Int("status", statusCode),
			zap.String("body", string(body)),
		)
		return &APIError{StatusCode: statusCode, Message: msg, Body: body}
	}
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	if errors.Is(err, ErrAuthFailed) ||
		errors.Is(err, ErrInsufficientCredits) ||
		errors.Is(err, ErrInvalidRequest) {
		return false
	}
	// Anything left is transport-level (timeout, connection reset).
	return true
}

func retryReason(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limit"
	case errors.Is(err, ErrRequestFailed):
		return "server_error"
	default:
		return "transport"
	}
}
