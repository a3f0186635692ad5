package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var (
	ErrTimeout    = errors.New("timeout")
	ErrNetwork    = errors.New("network error")
	ErrDisallowed = errors.New("disallowed by robots.txt")
	ErrTooLarge   = errors.New("document too large")
)

// StatusError is a non-2xx response from the document host.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s for url %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// classifyTransport wraps a client error in ErrTimeout or ErrNetwork.
func classifyTransport(err error) error {
	var ue *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ue) && ue.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
