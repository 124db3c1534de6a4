package ai

import (
	"context"
	"errors"
	"fmt"
	"net"

	openai "github.com/openai/openai-go/v3"
)

var (
	// ErrEmptyInput is returned when Send is called with blank text.
	ErrEmptyInput = errors.New("ai: empty input")
	// ErrNoChoices is returned for a completion body without choices.
	ErrNoChoices = errors.New("response contains no choices")
)

// NetworkError is the single failure kind of a send: HTTP error statuses,
// transport failures, timeouts and unparseable response bodies.
type NetworkError struct {
	Message    string
	StatusCode int // 0 when no HTTP response was received
	Timeout    bool
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("network error [%d]: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err carries a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func newNetworkError(err error) *NetworkError {
	netErr := &NetworkError{Message: err.Error(), Err: err}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		netErr.StatusCode = apiErr.StatusCode
	}

	var timeoutErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeoutErr) && timeoutErr.Timeout()) {
		netErr.Timeout = true
		netErr.Message = "request timed out"
	}

	return netErr
}
