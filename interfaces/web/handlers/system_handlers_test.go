package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDatabaseHealth struct{ err error }

func (s stubDatabaseHealth) Health() (map[string]interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]interface{}{"read_open_connections": 1}, nil
}

type stubBackendProbe struct{ err error }

func (s stubBackendProbe) Ping(ctx context.Context) error { return s.err }

func TestSystemHandlers_Health(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		backendErr error
		wantCode   int
		wantStatus string
	}{
		{"all healthy", nil, nil, http.StatusOK, "ok"},
		{"backend down", nil, errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
		{"database down", errors.New("closed"), nil, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := NewSystemHandlers(stubDatabaseHealth{err: tt.dbErr}, stubBackendProbe{err: tt.backendErr})

			w := httptest.NewRecorder()
			handlers.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Contains(t, body, "database")
			assert.Contains(t, body, "backend")
		})
	}
}
