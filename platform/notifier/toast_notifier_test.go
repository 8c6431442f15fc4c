package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoframe/domain/toasts"
	"photoframe/platform/clock"
	"photoframe/test/helpers"
)

func newTestNotifier() (*ToastNotifier, *helpers.RecordingToastSurface, *clock.Manual) {
	surface := helpers.NewRecordingToastSurface()
	clk := clock.NewManual(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return NewToastNotifier(DefaultConfig(), surface, clk), surface, clk
}

func TestToastNotifier_Lifecycle(t *testing.T) {
	// Arrange
	n, surface, clk := newTestNotifier()
	before := n.ActiveCount()

	// Act
	n.Notify("Uploaded a.jpg successfully", toasts.KindSuccess)

	// Assert: pending then visible straight away
	events := surface.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "show", events[0].Op)
	assert.Equal(t, toasts.StatePending, events[0].State)
	assert.Equal(t, toasts.StateVisible, events[1].State)
	assert.Equal(t, 1, n.VisibleCount())
	assert.Equal(t, before+1, n.ActiveCount())

	clk.Advance(2999 * time.Millisecond)
	assert.Equal(t, toasts.StateVisible, n.Snapshot()[0].State)

	clk.Advance(time.Millisecond)
	snapshot := n.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, toasts.StateHiding, snapshot[0].State)
	assert.Equal(t, 0, n.VisibleCount())
	assert.Equal(t, before+1, n.ActiveCount())

	clk.Advance(300 * time.Millisecond)
	assert.Empty(t, n.Snapshot())
	assert.Equal(t, before, n.ActiveCount())
	assert.Equal(t, 0, surface.OnPage())

	events = surface.Events()
	assert.Equal(t, "remove", events[len(events)-1].Op)
}

func TestToastNotifier_CapEvictsOldest(t *testing.T) {
	n, surface, clk := newTestNotifier()

	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		n.Notify(msg, toasts.KindSuccess)
	}

	assert.Equal(t, 3, n.VisibleCount())

	snapshot := n.Snapshot()
	require.Len(t, snapshot, 5)
	assert.Equal(t, "one", snapshot[0].Text)
	assert.Equal(t, toasts.StateHiding, snapshot[0].State)
	assert.Equal(t, "two", snapshot[1].Text)
	assert.Equal(t, toasts.StateHiding, snapshot[1].State)
	for _, toast := range snapshot[2:] {
		assert.Equal(t, toasts.StateVisible, toast.State, toast.Text)
	}

	// evicted toasts leave after the linger window
	clk.Advance(300 * time.Millisecond)
	snapshot = n.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "three", snapshot[0].Text)
	assert.Equal(t, 3, surface.OnPage())
	assert.Equal(t, 3, n.ActiveCount())
}

func TestToastNotifier_NeverMoreThanCapVisible(t *testing.T) {
	n, _, clk := newTestNotifier()

	for i := 0; i < 20; i++ {
		n.Notify("burst", toasts.KindError)
		assert.LessOrEqual(t, n.VisibleCount(), 3)
		clk.Advance(50 * time.Millisecond)
	}

	clk.Advance(10 * time.Second)
	assert.Equal(t, 0, n.ActiveCount())
	assert.Equal(t, 0, clk.Pending())
}

func TestToastNotifier_EvictionAndExpiryRaceRemovesOnce(t *testing.T) {
	n, surface, clk := newTestNotifier()

	n.Notify("oldest", toasts.KindSuccess)
	oldest := n.Snapshot()[0].ID

	// eviction at 2900ms schedules removal at 3200ms; natural expiry fires at 3000ms
	clk.Advance(2900 * time.Millisecond)
	n.Notify("b", toasts.KindSuccess)
	n.Notify("c", toasts.KindSuccess)
	n.Notify("d", toasts.KindSuccess)

	clk.Advance(time.Second)

	assert.Equal(t, 1, surface.RemoveCount(oldest))
	assert.Equal(t, 3, n.ActiveCount())
}

func TestToastNotifier_DoubleRemovalIsIdempotent(t *testing.T) {
	n, surface, _ := newTestNotifier()

	n.Notify("only", toasts.KindError)
	n.mu.Lock()
	toast := n.queue[0]
	n.mu.Unlock()

	n.remove(toast)
	n.remove(toast)

	assert.Equal(t, 0, n.ActiveCount())
	assert.Equal(t, 1, surface.RemoveCount(toast.ID))
	assert.NotPanics(t, func() { n.expire(toast) })
	assert.Equal(t, 0, n.ActiveCount())
}

func TestToastNotifier_ConfigDefaults(t *testing.T) {
	n := NewToastNotifier(Config{}, helpers.NewRecordingToastSurface(), nil)

	assert.Equal(t, DefaultConfig(), n.cfg)
}
