package handlers

import (
	"net/http"

	"photoframe/domain/photos"
	"photoframe/domain/toasts"
	"photoframe/interfaces/web/presenters"
	"photoframe/interfaces/web/templates/components/ui"
)

const pageTitle = "Photo Frame"

// GridSource provides the most recently rendered grid.
type GridSource interface {
	CurrentGrid() (photos.Grid, bool)
}

// ToastSource provides the toasts currently on screen.
type ToastSource interface {
	Snapshot() []toasts.Toast
}

// PageHandlers serves the console page and the grid fragment.
type PageHandlers struct {
	grids          GridSource
	toasts         ToastSource
	gridPresenter  *presenters.GridPresenter
	toastPresenter *presenters.ToastPresenter
}

// NewPageHandlers creates page handlers.
func NewPageHandlers(
	grids GridSource,
	toasts ToastSource,
	gridPresenter *presenters.GridPresenter,
	toastPresenter *presenters.ToastPresenter,
) *PageHandlers {
	return &PageHandlers{
		grids:          grids,
		toasts:         toasts,
		gridPresenter:  gridPresenter,
		toastPresenter: toastPresenter,
	}
}

// Home renders the full console page.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	view := ui.PageView{
		Title:  pageTitle,
		Toasts: h.toastPresenter.ToViews(h.toasts.Snapshot()),
	}
	if grid, ok := h.grids.CurrentGrid(); ok {
		gridView := h.gridPresenter.ToGridView(grid)
		view.Grid = &gridView
	}

	RenderResponse(r.Context(), w, ui.Page(view))
}

// Grid renders only the grid fragment.
func (h *PageHandlers) Grid(w http.ResponseWriter, r *http.Request) {
	grid, ok := h.grids.CurrentGrid()
	if !ok {
		RenderResponse(r.Context(), w, ui.GridPlaceholder())
		return
	}
	RenderResponse(r.Context(), w, ui.PhotoGrid(h.gridPresenter.ToGridView(grid)))
}
