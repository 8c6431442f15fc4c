package handlers

import (
	"context"
	"net/http"
	"time"
)

const backendProbeTimeout = 3 * time.Second

// DatabaseHealth reports connection pool statistics.
type DatabaseHealth interface {
	Health() (map[string]interface{}, error)
}

// BackendProbe checks the photo backend is reachable.
type BackendProbe interface {
	Ping(ctx context.Context) error
}

// SystemHandlers serves operational endpoints.
type SystemHandlers struct {
	db      DatabaseHealth
	backend BackendProbe
}

// NewSystemHandlers creates system handlers.
func NewSystemHandlers(db DatabaseHealth, backend BackendProbe) *SystemHandlers {
	return &SystemHandlers{db: db, backend: backend}
}

// Health reports database and backend status. Any failing dependency yields 503.
func (h *SystemHandlers) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	response := map[string]any{"status": "ok"}

	stats, err := h.db.Health()
	if err != nil {
		status = http.StatusServiceUnavailable
		response["database"] = map[string]string{"error": err.Error()}
	} else {
		response["database"] = stats
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendProbeTimeout)
	defer cancel()
	if err := h.backend.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		response["backend"] = map[string]string{"status": "unreachable", "error": err.Error()}
	} else {
		response["backend"] = map[string]string{"status": "ok"}
	}

	if status != http.StatusOK {
		response["status"] = "degraded"
	}
	writeJSON(w, status, response)
}
