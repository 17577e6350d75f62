package pixeldojo

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAuthFailed          = errors.New("authentication failed")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrRequestFailed       = errors.New("request failed")
)

// APIError is a non-2xx response that does not map to a more specific error.
// It satisfies errors.Is(err, ErrRequestFailed).
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return ErrRequestFailed }

// Retryable reports whether the status is worth another attempt.
// Only server-side failures are; 4xx responses will not heal on retry.
func (e *APIError) Retryable() bool { return e.StatusCode >= 500 }

// AuthenticationError is a 401 response. Never retried.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return "authentication failed: " + e.Message
	}
	return "authentication failed: invalid or missing API key"
}

func (e *AuthenticationError) Unwrap() error { return ErrAuthFailed }

// InsufficientCreditsError is a 402 response. Never retried.
type InsufficientCreditsError struct {
	Message          string
	CreditsRemaining float64
}

func (e *InsufficientCreditsError) Error() string {
	msg := "insufficient credits"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.CreditsRemaining > 0 {
		msg += fmt.Sprintf(" (remaining: %.2f)", e.CreditsRemaining)
	}
	return msg
}

func (e *InsufficientCreditsError) Unwrap() error { return ErrInsufficientCredits }

// RateLimitError is a 429 response, surfaced after retries are exhausted.
// RetryAfter carries the server hint when the header was present.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	msg := "rate limit exceeded"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	return msg
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
