// Package notifier implements the bounded, self-expiring toast queue.
package notifier

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"photoframe/domain/contracts"
	"photoframe/domain/toasts"
	"photoframe/logging"
	"photoframe/platform/clock"
)

// Config holds toast queue settings
type Config struct {
	MaxVisible int           `env:"TOAST_MAX_VISIBLE" default:"3"`
	Dwell      time.Duration `env:"TOAST_DWELL" default:"3s"`
	Linger     time.Duration `env:"TOAST_LINGER" default:"300ms"`
}

// DefaultConfig returns the default toast queue configuration
func DefaultConfig() Config {
	return Config{
		MaxVisible: 3,
		Dwell:      3 * time.Second,
		Linger:     300 * time.Millisecond,
	}
}

// ToastNotifier keeps at most MaxVisible toasts showing at once. Each toast
// dwells, then hides, then lingers before it is removed. An arrival at the
// cap hides the oldest showing toast early.
//
// All state changes and surface calls happen under one lock, so the surface
// sees every toast's transitions in order.
type ToastNotifier struct {
	mu      sync.Mutex
	cfg     Config
	clock   clock.Clock
	surface contracts.ToastSurface
	logger  *logging.Logger

	// toasts not yet removed, in insertion order
	queue  []*toasts.Toast
	active int
}

var _ contracts.Notifier = (*ToastNotifier)(nil)

// NewToastNotifier creates a notifier drawing on the given surface.
func NewToastNotifier(cfg Config, surface contracts.ToastSurface, clk clock.Clock) *ToastNotifier {
	defaults := DefaultConfig()
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = defaults.MaxVisible
	}
	if cfg.Dwell <= 0 {
		cfg.Dwell = defaults.Dwell
	}
	if cfg.Linger <= 0 {
		cfg.Linger = defaults.Linger
	}
	if clk == nil {
		clk = clock.Real()
	}

	return &ToastNotifier{
		cfg:     cfg,
		clock:   clk,
		surface: surface,
		logger:  logging.Default().WithComponent("toast_notifier"),
	}
}

// Notify shows a new toast.
func (n *ToastNotifier) Notify(message string, kind toasts.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	toast := &toasts.Toast{
		ID:        uuid.NewString(),
		Text:      message,
		Kind:      kind,
		State:     toasts.StatePending,
		CreatedAt: n.clock.Now(),
	}

	if n.showingLocked() >= n.cfg.MaxVisible {
		if oldest := n.oldestShowingLocked(); oldest != nil {
			n.logger.Debug("Evicting oldest toast", "toast_id", oldest.ID)
			n.hideLocked(oldest)
		}
	}

	n.queue = append(n.queue, toast)
	n.surface.ShowToast(*toast)

	// the pending state only exists for the surface's entry transition
	toast.State = toasts.StateVisible
	n.surface.UpdateToast(*toast)
	n.active++

	n.clock.AfterFunc(n.cfg.Dwell, func() { n.expire(toast) })
}

// VisibleCount returns the number of toasts counting against the cap.
func (n *ToastNotifier) VisibleCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.showingLocked()
}

// ActiveCount returns the number of toasts inserted and not yet removed.
func (n *ToastNotifier) ActiveCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// Snapshot returns copies of all toasts not yet removed, oldest first.
func (n *ToastNotifier) Snapshot() []toasts.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]toasts.Toast, 0, len(n.queue))
	for _, t := range n.queue {
		out = append(out, *t)
	}
	return out
}

func (n *ToastNotifier) expire(toast *toasts.Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hideLocked(toast)
}

// hideLocked starts the linger window; a toast already hiding is left alone.
func (n *ToastNotifier) hideLocked(toast *toasts.Toast) {
	if !toast.CanTransitionTo(toasts.StateHiding) {
		return
	}
	toast.State = toasts.StateHiding
	n.surface.UpdateToast(*toast)

	n.clock.AfterFunc(n.cfg.Linger, func() { n.remove(toast) })
}

// remove is idempotent: eviction and natural expiry may both reach it.
func (n *ToastNotifier) remove(toast *toasts.Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if toast.State == toasts.StateRemoved {
		return
	}
	toast.State = toasts.StateRemoved

	for i, t := range n.queue {
		if t == toast {
			n.queue = append(n.queue[:i], n.queue[i+1:]...)
			break
		}
	}
	n.surface.RemoveToast(toast.ID)

	if n.active > 0 {
		n.active--
	}
}

func (n *ToastNotifier) showingLocked() int {
	count := 0
	for _, t := range n.queue {
		if t.IsShowing() {
			count++
		}
	}
	return count
}

func (n *ToastNotifier) oldestShowingLocked() *toasts.Toast {
	for _, t := range n.queue {
		if t.IsShowing() {
			return t
		}
	}
	return nil
}
