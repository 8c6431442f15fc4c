package toasts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToast_CanTransitionTo(t *testing.T) {
	toast := &Toast{State: StatePending}

	assert.True(t, toast.CanTransitionTo(StateVisible))
	assert.True(t, toast.CanTransitionTo(StateHiding))

	toast.State = StateHiding
	assert.False(t, toast.CanTransitionTo(StateVisible))
	assert.False(t, toast.CanTransitionTo(StateHiding))
	assert.True(t, toast.CanTransitionTo(StateRemoved))

	toast.State = StateRemoved
	assert.False(t, toast.CanTransitionTo(StateRemoved))
}

func TestToast_IsShowing(t *testing.T) {
	assert.True(t, (&Toast{State: StatePending}).IsShowing())
	assert.True(t, (&Toast{State: StateVisible}).IsShowing())
	assert.False(t, (&Toast{State: StateHiding}).IsShowing())
	assert.False(t, (&Toast{State: StateRemoved}).IsShowing())
}
