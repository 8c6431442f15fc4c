package handlers

import (
	"context"
	"net/http"

	"photoframe/domain/contracts"
	"photoframe/logging"
)

const defaultDiagnosticLimit = 50

// DiagnosticSource lists recently reported failures.
type DiagnosticSource interface {
	Recent(ctx context.Context, limit int) ([]*contracts.Diagnostic, error)
}

// DiagnosticHandlers exposes the developer diagnostic channel.
type DiagnosticHandlers struct {
	source DiagnosticSource
	logger *logging.Logger
}

// NewDiagnosticHandlers creates diagnostic handlers.
func NewDiagnosticHandlers(source DiagnosticSource) *DiagnosticHandlers {
	return &DiagnosticHandlers{
		source: source,
		logger: logging.Default().WithComponent("diagnostic_handlers"),
	}
}

// Recent returns the latest diagnostics as JSON, newest first. ?limit=N caps the count.
func (h *DiagnosticHandlers) Recent(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultDiagnosticLimit)

	diagnostics, err := h.source.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list diagnostics", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to list diagnostics")
		return
	}
	if diagnostics == nil {
		diagnostics = []*contracts.Diagnostic{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":       len(diagnostics),
		"diagnostics": diagnostics,
	})
}
