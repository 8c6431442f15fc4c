package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"photoframe/domain/photos"
	"photoframe/domain/toasts"
	"photoframe/interfaces/web/presenters"
	"photoframe/logging"
)

const (
	staleClientAfter = 2 * time.Minute
	// clientSendBuffer bounds the frames queued for one client. A client
	// that falls this far behind is disconnected.
	clientSendBuffer = 64
)

var (
	errClientClosed     = errors.New("client connection closed")
	errClientBacklogged = errors.New("client send buffer full")
)

// SSEClient represents a connected Server-Sent Events client. Frames are
// queued on send and written by a single writer goroutine, so broadcasting
// never waits on a client's connection.
type SSEClient struct {
	id       string
	writer   http.ResponseWriter
	flusher  http.Flusher
	send     chan string
	done     chan struct{}
	stopped  chan struct{}
	mu       sync.Mutex
	lastSent time.Time
}

// SSEManager manages Server-Sent Events connections and pushes grid and toast
// updates to every open console. It is the production toast and grid surface.
type SSEManager struct {
	clients        map[string]*SSEClient
	mu             sync.RWMutex
	logger         *logging.Logger
	toastPresenter *presenters.ToastPresenter
	gridPresenter  *presenters.GridPresenter

	gridMu   sync.RWMutex
	lastGrid *photos.Grid
}

// NewSSEManager creates a new SSE connection manager. Keep-alives are driven
// externally through KeepAlive.
func NewSSEManager(toastPresenter *presenters.ToastPresenter, gridPresenter *presenters.GridPresenter) *SSEManager {
	return &SSEManager{
		clients:        make(map[string]*SSEClient),
		logger:         logging.Default().WithComponent("sse_manager"),
		toastPresenter: toastPresenter,
		gridPresenter:  gridPresenter,
	}
}

// AddClient adds a new SSE client connection
func (s *SSEManager) AddClient(clientID string, w http.ResponseWriter) *SSEClient {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("Response writer does not support flushing")
		return nil
	}

	client := &SSEClient{
		id:       clientID,
		writer:   w,
		flusher:  flusher,
		send:     make(chan string, clientSendBuffer),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		lastSent: time.Now(),
	}
	go s.writeLoop(client)

	s.mu.Lock()
	s.clients[clientID] = client
	total := len(s.clients)
	s.mu.Unlock()

	s.logger.Info("SSE client connected", "client_id", clientID, "total_clients", total)

	// Comment line, ignored by EventSource listeners.
	if err := s.sendToClient(client, "connected", fmt.Sprintf("Connected client %s", clientID)); err != nil {
		s.RemoveClient(clientID)
		return nil
	}

	return client
}

// RemoveClient removes an SSE client connection
func (s *SSEManager) RemoveClient(clientID string) {
	s.mu.Lock()
	client, exists := s.clients[clientID]
	if exists {
		delete(s.clients, clientID)
	}
	s.mu.Unlock()

	if exists {
		client.close()
		s.logger.Info("SSE client disconnected", "client_id", clientID)
	}
}

// ClientCount returns the number of connected clients.
func (s *SSEManager) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// CloseAll disconnects every client, used during shutdown.
func (s *SSEManager) CloseAll() {
	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[string]*SSEClient)
	s.mu.Unlock()

	for _, client := range clients {
		client.close()
	}
	s.logger.Info("Closed all SSE connections", "count", len(clients))
}

// ShowToast pushes a newly created toast.
func (s *SSEManager) ShowToast(toast toasts.Toast) {
	html, err := s.toastPresenter.FormatToastNotification(toast)
	if err != nil {
		s.logger.Error("Failed to format toast notification", "error", err, "toast_id", toast.ID)
		return
	}
	s.broadcast("toast", html)
}

// UpdateToast pushes a toast state change.
func (s *SSEManager) UpdateToast(toast toasts.Toast) {
	payload, err := json.MarshalToString(toastStateMessage{ID: toast.ID, State: string(toast.State)})
	if err != nil {
		s.logger.Error("Failed to encode toast state", "error", err, "toast_id", toast.ID)
		return
	}
	s.broadcast("toast-state", payload)
}

// RemoveToast tells clients to drop a toast element.
func (s *SSEManager) RemoveToast(id string) {
	s.broadcast("toast-remove", id)
}

// ReplaceGrid stores the grid for late joiners and pushes it to all clients.
func (s *SSEManager) ReplaceGrid(grid photos.Grid) {
	s.gridMu.Lock()
	s.lastGrid = &grid
	s.gridMu.Unlock()

	html, err := s.gridPresenter.FormatGrid(grid)
	if err != nil {
		s.logger.Error("Failed to format photo grid", "error", err)
		return
	}
	s.broadcast("grid", html)
}

// CurrentGrid returns the most recently rendered grid, if any.
func (s *SSEManager) CurrentGrid() (photos.Grid, bool) {
	s.gridMu.RLock()
	defer s.gridMu.RUnlock()
	if s.lastGrid == nil {
		return photos.Grid{}, false
	}
	return *s.lastGrid, true
}

// KeepAlive drops clients that have gone quiet, then sends a keep-alive
// comment to the rest. Clients whose write fails are dropped as well.
func (s *SSEManager) KeepAlive() {
	s.removeStaleClients(time.Now().Add(-staleClientAfter))
	s.broadcast("keepalive", time.Now().UTC().Format(time.RFC3339))
}

// removeStaleClients removes clients not written to since threshold.
func (s *SSEManager) removeStaleClients(threshold time.Time) {
	stale := []string{}
	s.mu.RLock()
	for clientID, client := range s.clients {
		if client.sentBefore(threshold) {
			stale = append(stale, clientID)
		}
	}
	s.mu.RUnlock()

	for _, clientID := range stale {
		s.logger.Info("Removing stale SSE client", "client_id", clientID)
		s.RemoveClient(clientID)
	}
}

// broadcast sends an event to every client, removing those that fail.
func (s *SSEManager) broadcast(event, data string) {
	// Copy clients list to avoid holding lock during I/O
	s.mu.RLock()
	if len(s.clients) == 0 {
		s.mu.RUnlock()
		s.logger.Debug("No SSE clients connected, skipping broadcast", "event", event)
		return
	}
	clientList := make(map[string]*SSEClient, len(s.clients))
	for id, client := range s.clients {
		clientList[id] = client
	}
	s.mu.RUnlock()

	failedClients := []string{}
	for clientID, client := range clientList {
		if err := s.sendToClient(client, event, data); err != nil {
			s.logger.Warn("Failed to send event to client",
				"client_id", clientID,
				"event", event,
				"error", err)
			failedClients = append(failedClients, clientID)
		}
	}

	for _, clientID := range failedClients {
		s.RemoveClient(clientID)
	}

	s.logger.Debug("Broadcasted event",
		"event", event,
		"total_clients", len(clientList),
		"failed", len(failedClients))
}

// sendToClient queues an SSE message for a specific client without blocking.
func (s *SSEManager) sendToClient(client *SSEClient, event, data string) error {
	select {
	case <-client.done:
		return errClientClosed
	default:
	}

	select {
	case client.send <- formatEvent(event, data):
		return nil
	default:
		return errClientBacklogged
	}
}

// writeLoop writes queued frames to the client's connection until the
// client is closed. A failed write disconnects the client.
func (s *SSEManager) writeLoop(client *SSEClient) {
	defer close(client.stopped)
	for {
		select {
		case <-client.done:
			return
		case frame := <-client.send:
			if _, err := client.writer.Write([]byte(frame)); err != nil {
				s.logger.Warn("SSE write failed", "client_id", client.id, "error", err)
				s.RemoveClient(client.id)
				return
			}
			client.flusher.Flush()
			client.markSent(time.Now())
		}
	}
}

// HandleSSEConnection handles the SSE endpoint
func (s *SSEManager) HandleSSEConnection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	client := s.AddClient(clientID, w)
	if client == nil {
		s.logger.Error("Failed to establish SSE connection", "client_id", clientID)
		http.Error(w, "Failed to establish SSE connection", http.StatusInternalServerError)
		return
	}

	// Catch up on any grid rendered between page load and connect.
	if grid, ok := s.CurrentGrid(); ok {
		if html, err := s.gridPresenter.FormatGrid(grid); err == nil {
			if err := s.sendToClient(client, "grid", html); err != nil {
				s.RemoveClient(clientID)
				<-client.stopped
				return
			}
		}
	}

	select {
	case <-r.Context().Done():
		s.logger.Debug("SSE client context cancelled", "client_id", clientID)
	case <-client.done:
		s.logger.Debug("SSE client connection closed", "client_id", clientID)
	}
	s.RemoveClient(clientID)
	// The response writer must not be touched once the handler returns.
	<-client.stopped
}

type toastStateMessage struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// formatEvent encodes one SSE frame. Keep-alive and connect notices are sent
// as comments; multi-line data gets one data field per line.
func formatEvent(event, data string) string {
	if event == "keepalive" || event == "connected" {
		return fmt.Sprintf(": %s\n\n", strings.ReplaceAll(data, "\n", " "))
	}

	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteByte('\n')
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func (c *SSEClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

func (c *SSEClient) markSent(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSent = t
}

func (c *SSEClient) sentBefore(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSent.Before(t)
}
