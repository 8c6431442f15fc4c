package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"photoframe/application"
	"photoframe/domain/commands"
	"photoframe/logging"
)

const maxUploadMemory = 32 << 20

// CommandDispatcher executes user commands.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, cmd commands.Command) error
}

// ActionHandlers turns browser gestures into commands. Responses carry no
// content: results reach the page through the event stream.
type ActionHandlers struct {
	dispatcher CommandDispatcher
	logger     *logging.Logger
}

// NewActionHandlers creates action handlers.
func NewActionHandlers(dispatcher CommandDispatcher) *ActionHandlers {
	return &ActionHandlers{
		dispatcher: dispatcher,
		logger:     logging.Default().WithComponent("action_handlers"),
	}
}

// Upload accepts a multipart form with one or more "file" parts.
func (h *ActionHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "expected multipart form with file fields")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeJSONError(w, http.StatusBadRequest, "no files provided")
		return
	}

	files := make([]commands.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFileFromHeader(fh))
	}

	h.dispatch(w, r, commands.Upload{Files: files})
}

// Convert requests conversion of one photo.
func (h *ActionHandlers) Convert(w http.ResponseWriter, r *http.Request) {
	filename, ok := filenameParam(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, commands.Convert{Filename: filename})
}

// Display sends one photo to the e-ink display.
func (h *ActionHandlers) Display(w http.ResponseWriter, r *http.Request) {
	filename, ok := filenameParam(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, commands.Display{Filename: filename})
}

// Delete removes one photo.
func (h *ActionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	filename, ok := filenameParam(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, commands.Delete{Filename: filename})
}

// Refresh rebuilds the grid.
func (h *ActionHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, commands.Refresh{})
}

// dispatch runs the command to completion even if the browser goes away.
func (h *ActionHandlers) dispatch(w http.ResponseWriter, r *http.Request, cmd commands.Command) {
	start := time.Now()
	err := h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), cmd)
	h.logger.Performance("action_"+string(cmd.Type()), time.Since(start))

	if errors.Is(err, application.ErrUnknownCommand) {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Other failures were already shown as toasts and reported.
	w.WriteHeader(http.StatusNoContent)
}

// filenameParam returns the decoded filename segment. chi routes on
// RawPath when the URL has one, and the segment is then still escaped;
// otherwise it is already decoded and must not be unescaped again.
func filenameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	filename := chi.URLParam(r, "filename")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(filename)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid filename")
			return "", false
		}
		filename = unescaped
	}
	if filename == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid filename")
		return "", false
	}
	return filename, true
}

func uploadFileFromHeader(fh *multipart.FileHeader) commands.UploadFile {
	return commands.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
