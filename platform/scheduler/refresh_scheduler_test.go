package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshQuietly(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

type countingKeepAlive struct{ calls atomic.Int32 }

func (k *countingKeepAlive) KeepAlive() { k.calls.Add(1) }

type recordingPruner struct {
	calls  atomic.Int32
	maxAge atomic.Int64
}

func (p *recordingPruner) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	p.calls.Add(1)
	p.maxAge.Store(int64(maxAge))
	return 2, nil
}

func TestRefreshScheduler_RunsEnabledJobs(t *testing.T) {
	// Arrange
	refresher := &countingRefresher{err: errors.New("backend down")}
	keepAlive := &countingKeepAlive{}
	pruner := &recordingPruner{}
	s := NewRefreshScheduler(Config{
		RefreshInterval:     20 * time.Millisecond,
		KeepAliveInterval:   20 * time.Millisecond,
		PruneInterval:       20 * time.Millisecond,
		DiagnosticRetention: time.Hour,
	}, refresher, keepAlive, pruner)

	// Act
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	// Assert
	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 2 && keepAlive.calls.Load() >= 1 && pruner.calls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(time.Hour), pruner.maxAge.Load())
}

func TestRefreshScheduler_ZeroIntervalDisablesJob(t *testing.T) {
	refresher := &countingRefresher{}
	keepAlive := &countingKeepAlive{}
	s := NewRefreshScheduler(Config{KeepAliveInterval: 20 * time.Millisecond}, refresher, keepAlive, nil)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return keepAlive.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(0), refresher.calls.Load())
}

func TestRefreshScheduler_StartTwiceFails(t *testing.T) {
	s := NewRefreshScheduler(DefaultConfig(), nil, nil, nil)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Error(t, s.Start(context.Background()))
}

func TestRefreshScheduler_StopsWhenContextDone(t *testing.T) {
	keepAlive := &countingKeepAlive{}
	s := NewRefreshScheduler(Config{KeepAliveInterval: 10 * time.Millisecond}, nil, keepAlive, nil)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.running
	}, time.Second, 5*time.Millisecond)
	s.Stop()
}
