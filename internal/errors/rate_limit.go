package errors

import (
	stdErrors "errors"
	"fmt"
	"time"
)

// RateLimitError represents a rate limit error from any API
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration // Zero when the server did not say
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", e.Message, e.RetryAfter)
	}
	return e.Message
}

// NewRateLimitErrorWithRetry creates a RateLimitError carrying the server's Retry-After hint
func NewRateLimitErrorWithRetry(message string, retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{Message: message, RetryAfter: retryAfter}
}

// RetryAfterOf returns the Retry-After hint of the RateLimitError in err's
// chain. The second result is false when err carries no RateLimitError.
func RetryAfterOf(err error) (time.Duration, bool) {
	var rateErr *RateLimitError
	if !stdErrors.As(err, &rateErr) {
		return 0, false
	}
	return rateErr.RetryAfter, true
}
