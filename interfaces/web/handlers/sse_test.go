package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoframe/domain/photos"
	"photoframe/domain/toasts"
	"photoframe/interfaces/web/presenters"
	"photoframe/test/helpers"
)

// syncRecorder guards an httptest.ResponseRecorder for concurrent reads.
type syncRecorder struct {
	mu  sync.Mutex
	rec *httptest.ResponseRecorder
}

func newSyncRecorder() *syncRecorder {
	return &syncRecorder{rec: httptest.NewRecorder()}
}

func (s *syncRecorder) Header() http.Header { return s.rec.Header() }

func (s *syncRecorder) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Write(b)
}

func (s *syncRecorder) WriteHeader(code int) { s.rec.WriteHeader(code) }

func (s *syncRecorder) Flush() {}

func (s *syncRecorder) Body() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Body.String()
}

func newTestSSEManager(t *testing.T) *SSEManager {
	t.Helper()
	manager := NewSSEManager(presenters.NewToastPresenter(), presenters.NewGridPresenter("http://backend"))
	t.Cleanup(manager.CloseAll)
	return manager
}

// blockingWriter stalls every write until released, like a client whose
// connection has stopped draining.
type blockingWriter struct {
	header  http.Header
	release chan struct{}
}

func newBlockingWriter(t *testing.T) *blockingWriter {
	t.Helper()
	w := &blockingWriter{header: make(http.Header), release: make(chan struct{})}
	t.Cleanup(func() { close(w.release) })
	return w
}

func (b *blockingWriter) Header() http.Header { return b.header }

func (b *blockingWriter) Write(p []byte) (int, error) {
	<-b.release
	return len(p), nil
}

func (b *blockingWriter) WriteHeader(int) {}

func (b *blockingWriter) Flush() {}

func TestFormatEvent(t *testing.T) {
	assert.Equal(t, "event: toast-remove\ndata: abc\n\n", formatEvent("toast-remove", "abc"))
	assert.Equal(t, "event: grid\ndata: <div>\ndata: </div>\n\n", formatEvent("grid", "<div>\n</div>"))
	assert.Equal(t, ": ping\n\n", formatEvent("keepalive", "ping"))
}

func TestSSEManager_PushesToastLifecycle(t *testing.T) {
	// Arrange
	manager := newTestSSEManager(t)
	w := newSyncRecorder()
	require.NotNil(t, manager.AddClient("c1", w))
	toast := toasts.Toast{ID: "t1", Text: "Deleted a.jpg successfully", Kind: toasts.KindSuccess, State: toasts.StatePending}

	// Act
	manager.ShowToast(toast)
	toast.State = toasts.StateVisible
	manager.UpdateToast(toast)
	manager.RemoveToast("t1")

	// Assert
	assert.Eventually(t, func() bool {
		return strings.Contains(w.Body(), "event: toast-remove\ndata: t1")
	}, time.Second, 5*time.Millisecond)
	body := w.Body()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	showAt := strings.Index(body, "event: toast\n")
	stateAt := strings.Index(body, "event: toast-state\ndata: {\"id\":\"t1\",\"state\":\"visible\"}")
	removeAt := strings.Index(body, "event: toast-remove\ndata: t1")
	require.True(t, showAt >= 0 && stateAt >= 0 && removeAt >= 0, body)
	assert.Less(t, showAt, stateAt)
	assert.Less(t, stateAt, removeAt)
	assert.Contains(t, body, "Deleted a.jpg successfully")
}

func TestSSEManager_ReplaceGridKeepsLatest(t *testing.T) {
	manager := newTestSSEManager(t)
	w := newSyncRecorder()
	require.NotNil(t, manager.AddClient("c1", w))
	td := helpers.NewTestData()

	_, ok := manager.CurrentGrid()
	assert.False(t, ok)

	manager.ReplaceGrid(photos.BuildGrid(td.Listing("a.jpg"), nil))
	manager.ReplaceGrid(photos.BuildGrid(td.Listing("b.jpg"), nil))

	grid, ok := manager.CurrentGrid()
	require.True(t, ok)
	require.Len(t, grid.Cells, 1)
	assert.Equal(t, "b.jpg", grid.Cells[0].Photo.Filename)
	assert.Eventually(t, func() bool {
		return strings.Count(w.Body(), "event: grid\n") == 2
	}, time.Second, 5*time.Millisecond)
}

func TestSSEManager_RemovedClientReceivesNothing(t *testing.T) {
	manager := newTestSSEManager(t)
	w := newSyncRecorder()
	require.NotNil(t, manager.AddClient("c1", w))

	manager.RemoveClient("c1")
	manager.RemoveClient("c1")
	manager.RemoveToast("t1")

	assert.Equal(t, 0, manager.ClientCount())
	assert.NotContains(t, w.Body(), "toast-remove")
}

func TestSSEManager_KeepAliveDropsStaleClients(t *testing.T) {
	manager := newTestSSEManager(t)
	w := newSyncRecorder()
	client := manager.AddClient("c1", w)
	require.NotNil(t, client)

	manager.KeepAlive()
	assert.Equal(t, 1, manager.ClientCount())
	// Connect notice plus one keep-alive comment.
	assert.Eventually(t, func() bool {
		return strings.Count(w.Body(), "\n\n") == 2
	}, time.Second, 5*time.Millisecond)

	// Simulate a client that has not been written to for a long time.
	client.markSent(time.Now().Add(-2 * staleClientAfter))

	manager.removeStaleClients(time.Now().Add(-staleClientAfter))
	assert.Equal(t, 0, manager.ClientCount())
}

func TestSSEManager_BackloggedClientDoesNotBlockBroadcast(t *testing.T) {
	manager := newTestSSEManager(t)
	require.NotNil(t, manager.AddClient("slow", newBlockingWriter(t)))

	// The slow client's writer is stuck, so its queue fills and it is dropped
	// instead of stalling the caller.
	finished := make(chan struct{})
	go func() {
		for i := 0; i <= clientSendBuffer; i++ {
			manager.RemoveToast("t1")
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a client that stopped reading")
	}
	assert.Equal(t, 0, manager.ClientCount())

	w := newSyncRecorder()
	require.NotNil(t, manager.AddClient("fast", w))
	manager.RemoveToast("t2")
	assert.Eventually(t, func() bool {
		return strings.Contains(w.Body(), "event: toast-remove\ndata: t2")
	}, time.Second, 5*time.Millisecond)
}

func TestSSEManager_HandleSSEConnection_SendsCurrentGrid(t *testing.T) {
	manager := newTestSSEManager(t)
	manager.ReplaceGrid(photos.BuildGrid(helpers.NewTestData().Listing("a.jpg"), nil))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	w := newSyncRecorder()

	done := make(chan struct{})
	go func() {
		manager.HandleSSEConnection(w, req)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return strings.Contains(w.Body(), "event: grid\n")
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, manager.ClientCount())

	cancel()
	<-done
	assert.Equal(t, 0, manager.ClientCount())
}
