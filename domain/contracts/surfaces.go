package contracts

import (
	"photoframe/domain/photos"
	"photoframe/domain/toasts"
)

// ToastSurface receives toast lifecycle changes and shows them to users.
// Calls arrive in lifecycle order while the notifier holds its lock, so
// implementations must hand off any I/O rather than block on it.
type ToastSurface interface {
	ShowToast(toast toasts.Toast)
	UpdateToast(toast toasts.Toast)
	RemoveToast(id string)
}

// GridSurface owns the rendered photo grid. ReplaceGrid discards the previous grid.
type GridSurface interface {
	ReplaceGrid(grid photos.Grid)
}

// Notifier is the single entry point for user-facing messages.
type Notifier interface {
	Notify(message string, kind toasts.Kind)
}
