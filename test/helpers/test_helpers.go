package helpers

import (
	"context"
	"io"
	"strings"
	"sync"

	"photoframe/domain/commands"
	"photoframe/domain/photos"
	"photoframe/domain/toasts"
)

// Message is a notification captured by RecordingNotifier.
type Message struct {
	Text string
	Kind toasts.Kind
}

// RecordingNotifier captures notifications in call order.
type RecordingNotifier struct {
	mu       sync.Mutex
	messages []Message
}

func (n *RecordingNotifier) Notify(message string, kind toasts.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, Message{Text: message, Kind: kind})
}

// Messages returns the captured notifications.
func (n *RecordingNotifier) Messages() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Message(nil), n.messages...)
}

// Texts returns only the captured notification texts.
func (n *RecordingNotifier) Texts() []string {
	var out []string
	for _, m := range n.Messages() {
		out = append(out, m.Text)
	}
	return out
}

// ToastEvent is one call received by RecordingToastSurface.
type ToastEvent struct {
	Op    string // show, update or remove
	ID    string
	State toasts.State
}

// RecordingToastSurface captures toast surface calls and tracks what is on screen.
type RecordingToastSurface struct {
	mu      sync.Mutex
	events  []ToastEvent
	onPage  map[string]toasts.State
	removes map[string]int
}

// NewRecordingToastSurface creates an empty surface recorder.
func NewRecordingToastSurface() *RecordingToastSurface {
	return &RecordingToastSurface{
		onPage:  make(map[string]toasts.State),
		removes: make(map[string]int),
	}
}

func (s *RecordingToastSurface) ShowToast(t toasts.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ToastEvent{Op: "show", ID: t.ID, State: t.State})
	s.onPage[t.ID] = t.State
}

func (s *RecordingToastSurface) UpdateToast(t toasts.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ToastEvent{Op: "update", ID: t.ID, State: t.State})
	s.onPage[t.ID] = t.State
}

func (s *RecordingToastSurface) RemoveToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ToastEvent{Op: "remove", ID: id, State: toasts.StateRemoved})
	delete(s.onPage, id)
	s.removes[id]++
}

// Events returns all recorded calls in order.
func (s *RecordingToastSurface) Events() []ToastEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ToastEvent(nil), s.events...)
}

// OnPage returns the number of toasts currently on the surface.
func (s *RecordingToastSurface) OnPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.onPage)
}

// RemoveCount returns how many times a toast was removed.
func (s *RecordingToastSurface) RemoveCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removes[id]
}

// RecordingGridSurface captures every grid replacement.
type RecordingGridSurface struct {
	mu    sync.Mutex
	grids []photos.Grid
}

func (s *RecordingGridSurface) ReplaceGrid(grid photos.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids = append(s.grids, grid)
}

// Replacements returns how many times the grid was replaced.
func (s *RecordingGridSurface) Replacements() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grids)
}

// Last returns the latest grid and whether any was rendered.
func (s *RecordingGridSurface) Last() (photos.Grid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.grids) == 0 {
		return photos.Grid{}, false
	}
	return s.grids[len(s.grids)-1], true
}

// TestData provides simple builders for test data
type TestData struct{}

// NewTestData creates a test data builder
func NewTestData() *TestData {
	return &TestData{}
}

// Photo creates a listing entry served from the originals folder
func (td *TestData) Photo(filename string) photos.PhotoInfo {
	return photos.PhotoInfo{Filename: filename, Path: "/photos/originals/" + filename}
}

// Listing creates a listing for the given filenames
func (td *TestData) Listing(filenames ...string) []photos.PhotoInfo {
	listing := make([]photos.PhotoInfo, 0, len(filenames))
	for _, f := range filenames {
		listing = append(listing, td.Photo(f))
	}
	return listing
}

// Status creates a status report marking the given filenames as converted
func (td *TestData) Status(total int, converted ...string) *photos.PhotoStatus {
	status := &photos.PhotoStatus{TotalPhotos: total, ConvertedPhotos: len(converted)}
	for _, f := range converted {
		status.Photos = append(status.Photos, photos.PhotoConversion{Filename: f, Converted: true})
	}
	return status
}

// File creates an upload file with in-memory content
func (td *TestData) File(name, contentType, content string) commands.UploadFile {
	return commands.UploadFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// Helper for common test context
func TestContext() context.Context {
	return context.Background()
}
