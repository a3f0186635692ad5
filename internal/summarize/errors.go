package summarize

import (
	"errors"
	"fmt"
)

// RetryableError marks a transient provider failure (rate limit or server
// error). Summaries are not retried; the type lets callers log the cause.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// IsRetryable reports whether err is a transient provider failure.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
