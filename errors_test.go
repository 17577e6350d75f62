package pixeldojo

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"auth", &AuthenticationError{}, ErrAuthFailed},
		{"credits", &InsufficientCreditsError{}, ErrInsufficientCredits},
		{"rate limit", &RateLimitError{}, ErrRateLimited},
		{"api", &APIError{StatusCode: 500}, ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%T, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestErrorSentinels_Wrapped(t *testing.T) {
	err := fmt.Errorf("calling generate: %w", &RateLimitError{RetryAfter: time.Second})

	if !errors.Is(err, ErrRateLimited) {
		t.Error("wrapped RateLimitError should still match ErrRateLimited")
	}

	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatal("errors.As should find *RateLimitError through wrapping")
	}
	if rateErr.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %v, want 1s", rateErr.RetryAfter)
	}
}

func TestAPIError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{500, true},
		{502, true},
		{503, true},
		{400, false},
		{404, false},
		{422, false},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		if got := err.Retryable(); got != tt.want {
			t.Errorf("APIError{%d}.Retryable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "auth default",
			err:  &AuthenticationError{},
			want: "invalid or missing API key",
		},
		{
			name: "credits with remaining",
			err:  &InsufficientCreditsError{CreditsRemaining: 1.5},
			want: "remaining: 1.50",
		},
		{
			name: "rate limit with hint",
			err:  &RateLimitError{RetryAfter: 2 * time.Second},
			want: "retry after 2s",
		},
		{
			name: "api with status",
			err:  &APIError{StatusCode: 503, Message: "upstream down"},
			want: "status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := tt.err.Error(); !strings.Contains(msg, tt.want) {
				t.Errorf("Error() = %q, want substring %q", msg, tt.want)
			}
		})
	}
}
