package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoframe/domain/contracts"
)

type stubDiagnosticSource struct {
	items     []*contracts.Diagnostic
	err       error
	lastLimit int
}

func (s *stubDiagnosticSource) Recent(ctx context.Context, limit int) ([]*contracts.Diagnostic, error) {
	s.lastLimit = limit
	return s.items, s.err
}

func TestDiagnosticHandlers_Recent(t *testing.T) {
	source := &stubDiagnosticSource{items: []*contracts.Diagnostic{{
		ID:         "d1",
		Operation:  "delete",
		Subject:    "x.jpg",
		Message:    "delete: backend returned status 404: not found",
		OccurredAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}}}
	handlers := NewDiagnosticHandlers(source)

	w := httptest.NewRecorder()
	handlers.Recent(w, httptest.NewRequest(http.MethodGet, "/diagnostics?limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, source.lastLimit)

	var response struct {
		Count       int                     `json:"count"`
		Diagnostics []*contracts.Diagnostic `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "x.jpg", response.Diagnostics[0].Subject)
}

func TestDiagnosticHandlers_DefaultLimitAndEmptyList(t *testing.T) {
	source := &stubDiagnosticSource{}
	handlers := NewDiagnosticHandlers(source)

	w := httptest.NewRecorder()
	handlers.Recent(w, httptest.NewRequest(http.MethodGet, "/diagnostics?limit=abc", nil))

	assert.Equal(t, defaultDiagnosticLimit, source.lastLimit)
	assert.JSONEq(t, `{"count":0,"diagnostics":[]}`, w.Body.String())
}

func TestDiagnosticHandlers_SourceError(t *testing.T) {
	handlers := NewDiagnosticHandlers(&stubDiagnosticSource{err: errors.New("db locked")})

	w := httptest.NewRecorder()
	handlers.Recent(w, httptest.NewRequest(http.MethodGet, "/diagnostics", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
