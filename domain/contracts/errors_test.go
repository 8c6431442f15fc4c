package contracts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerMessage(t *testing.T) {
	wrapped := fmt.Errorf("delete x.jpg: %w", &BackendError{Op: "delete", StatusCode: 404, Message: "not found"})

	msg, ok := ServerMessage(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "not found", msg)

	_, ok = ServerMessage(&BackendError{Op: "delete", StatusCode: 500})
	assert.False(t, ok)

	_, ok = ServerMessage(errors.New("connection refused"))
	assert.False(t, ok)
}

func TestBackendError_Error(t *testing.T) {
	assert.Equal(t, "upload: backend returned status 400: Invalid file type",
		(&BackendError{Op: "upload", StatusCode: 400, Message: "Invalid file type"}).Error())
	assert.Equal(t, "list: backend returned status 502",
		(&BackendError{Op: "list", StatusCode: 502}).Error())
}
