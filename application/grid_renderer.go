package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"photoframe/domain/contracts"
	"photoframe/domain/photos"
	"photoframe/domain/toasts"
	"photoframe/logging"
)

// LoadFailedMessage is shown when the grid cannot be refreshed.
const LoadFailedMessage = "Failed to load photos"

// GridRefresher rebuilds the photo grid from the backend.
type GridRefresher interface {
	Refresh(ctx context.Context) error
}

// GridRenderer fetches the listing (and status, when enabled) and replaces the
// grid on its surface as a whole. A failed fetch leaves the previous grid in place.
type GridRenderer struct {
	backend       contracts.PhotoBackend
	surface       contracts.GridSurface
	notifier      contracts.Notifier
	diagnostics   contracts.DiagnosticSink
	statusEnabled bool
	logger        *logging.Logger

	// serialises refreshes so replacements land in the order they were fetched
	mu sync.Mutex
}

// NewGridRenderer creates a grid renderer. statusEnabled selects the status-aware variant.
func NewGridRenderer(
	backend contracts.PhotoBackend,
	surface contracts.GridSurface,
	notifier contracts.Notifier,
	diagnostics contracts.DiagnosticSink,
	statusEnabled bool,
) *GridRenderer {
	return &GridRenderer{
		backend:       backend,
		surface:       surface,
		notifier:      notifier,
		diagnostics:   diagnostics,
		statusEnabled: statusEnabled,
		logger:        logging.Default().WithComponent("grid_renderer"),
	}
}

// Refresh rebuilds the grid, notifying the user when it fails.
func (r *GridRenderer) Refresh(ctx context.Context) error {
	err := r.refresh(ctx)
	if err != nil {
		r.notifier.Notify(LoadFailedMessage, toasts.KindError)
	}
	return err
}

// RefreshQuietly rebuilds the grid without notifying the user on failure.
// Used by background refreshes the user did not ask for.
func (r *GridRenderer) RefreshQuietly(ctx context.Context) error {
	return r.refresh(ctx)
}

func (r *GridRenderer) refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()

	var (
		wg        sync.WaitGroup
		listing   []photos.PhotoInfo
		status    *photos.PhotoStatus
		listErr   error
		statusErr error
	)

	wg.Go(func() {
		listing, listErr = r.backend.ListPhotos(ctx)
	})
	if r.statusEnabled {
		wg.Go(func() {
			status, statusErr = r.backend.GetStatus(ctx)
		})
	}
	wg.Wait()

	if listErr != nil {
		err := fmt.Errorf("load photo listing: %w", listErr)
		r.diagnostics.Report(ctx, "refresh", "photos", err)
		return err
	}
	if statusErr != nil {
		err := fmt.Errorf("load photo status: %w", statusErr)
		r.diagnostics.Report(ctx, "refresh", "photos", err)
		return err
	}

	grid := photos.BuildGrid(listing, status)
	r.surface.ReplaceGrid(grid)

	r.logger.Performance("grid_refresh", time.Since(start))
	r.logger.Debug("Grid replaced", "photos", len(grid.Cells), "status_aware", grid.StatusAware)
	return nil
}
