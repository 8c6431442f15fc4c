package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_FiresInDueOrder(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "b") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "c") })

	c.Advance(500 * time.Millisecond)

	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, c.Pending())
	assert.Equal(t, time.Unix(0, 0).Add(500*time.Millisecond), c.Now())
}

func TestManual_RunsCallbacksScheduledDuringAdvance(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	var fired []time.Duration
	start := c.Now()

	c.AfterFunc(100*time.Millisecond, func() {
		fired = append(fired, c.Now().Sub(start))
		c.AfterFunc(100*time.Millisecond, func() {
			fired = append(fired, c.Now().Sub(start))
		})
	})

	c.Advance(time.Second)

	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, fired)
}

func TestManual_StoppedTimerDoesNotFire(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	called := false

	timer := c.AfterFunc(time.Second, func() { called = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(2 * time.Second)

	assert.False(t, called)
}
