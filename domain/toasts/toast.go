// Package toasts defines transient user notifications and their lifecycle.
package toasts

import "time"

// Kind is the visual category of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// State is a toast lifecycle state. Transitions only move forward:
// pending -> visible -> hiding -> removed.
type State string

const (
	StatePending State = "pending"
	StateVisible State = "visible"
	StateHiding  State = "hiding"
	StateRemoved State = "removed"
)

var stateOrder = map[State]int{
	StatePending: 0,
	StateVisible: 1,
	StateHiding:  2,
	StateRemoved: 3,
}

// Toast is a single notification owned by the notifier.
type Toast struct {
	ID        string
	Text      string
	Kind      Kind
	State     State
	CreatedAt time.Time
}

// CanTransitionTo reports whether moving to next keeps the lifecycle forward-only.
func (t *Toast) CanTransitionTo(next State) bool {
	return stateOrder[next] > stateOrder[t.State]
}

// IsShowing reports whether the toast counts against the visible cap.
func (t *Toast) IsShowing() bool {
	return t.State == StatePending || t.State == StateVisible
}
