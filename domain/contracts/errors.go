package contracts

import (
	"errors"
	"fmt"
)

// Common errors for domain contracts
var (
	// ErrMalformedResponse occurs when the backend answers with a body that cannot be parsed
	ErrMalformedResponse = errors.New("malformed backend response")
)

// BackendError is a failure reported by the photo backend with a non-success status.
type BackendError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.StatusCode, e.Message)
}

// ServerMessage extracts the user-facing error text reported by the backend, if any.
func ServerMessage(err error) (string, bool) {
	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message, true
	}
	return "", false
}
