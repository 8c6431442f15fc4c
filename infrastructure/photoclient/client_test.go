package photoclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoframe/domain/contracts"
	"photoframe/domain/photos"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 2 * time.Second}, server.Client())
	require.NoError(t, err)
	return client
}

func TestNewClient_RejectsInvalidURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "localhost:5000"}, nil)
	assert.Error(t, err)
}

func TestClient_ListPhotos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/photos/list", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"filename":"a.jpg","path":"/photos/originals/a.jpg"},{"filename":"b.jpg","path":"/photos/originals/b.jpg"}]`))
	})

	listing, err := client.ListPhotos(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []photos.PhotoInfo{
		{Filename: "a.jpg", Path: "/photos/originals/a.jpg"},
		{Filename: "b.jpg", Path: "/photos/originals/b.jpg"},
	}, listing)
}

func TestClient_ListPhotos_NonSuccessIsBackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Error listing files"}`))
	})

	_, err := client.ListPhotos(context.Background())

	var backendErr *contracts.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Equal(t, "Error listing files", backendErr.Message)
}

func TestClient_GetStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/status", r.URL.Path)
		w.Write([]byte(`{"total_photos":2,"converted_photos":1,"photos":[{"filename":"a.jpg","converted":true},{"filename":"b.jpg","converted":false}]}`))
	})

	status, err := client.GetStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalPhotos)
	assert.Equal(t, 1, status.ConvertedPhotos)
	require.Len(t, status.Photos, 2)
	assert.True(t, status.Photos[0].Converted)
}

func TestClient_GetStatus_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.GetStatus(context.Background())

	assert.ErrorIs(t, err, contracts.ErrMalformedResponse)
}

func TestClient_Upload_SendsMultipartFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)

		assert.Equal(t, "holiday.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		assert.Equal(t, "jpeg-bytes", string(content))

		w.Write([]byte(`{"message":"File uploaded successfully"}`))
	})

	msg, err := client.Upload(context.Background(), "holiday.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "File uploaded successfully", msg)
}

func TestClient_Upload_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid file type"}`))
	})

	_, err := client.Upload(context.Background(), "x.gif", "image/gif", strings.NewReader("gif"))

	msg, ok := contracts.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid file type", msg)
}

func TestClient_Mutations_UseEscapedFilenames(t *testing.T) {
	tests := []struct {
		name       string
		call       func(*Client) (string, error)
		wantMethod string
		wantPath   string
	}{
		{
			name:       "convert",
			call:       func(c *Client) (string, error) { return c.Convert(context.Background(), "my photo.jpg") },
			wantMethod: http.MethodPost,
			wantPath:   "/photos/convert/my%20photo.jpg",
		},
		{
			name:       "display",
			call:       func(c *Client) (string, error) { return c.Display(context.Background(), "a.jpg") },
			wantMethod: http.MethodPost,
			wantPath:   "/photos/display/a.jpg",
		},
		{
			name:       "delete",
			call:       func(c *Client) (string, error) { return c.Delete(context.Background(), "a.jpg") },
			wantMethod: http.MethodDelete,
			wantPath:   "/photos/delete/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantMethod, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.EscapedPath())
				w.Write([]byte(`{"message":"ok"}`))
			})

			msg, err := tt.call(client)

			require.NoError(t, err)
			assert.Equal(t, "ok", msg)
		})
	}
}

func TestClient_Delete_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	_, err := client.Delete(context.Background(), "x.jpg")

	var backendErr *contracts.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusNotFound, backendErr.StatusCode)
	assert.Equal(t, "not found", backendErr.Message)
}

func TestClient_EmptySuccessBodyIsAccepted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	msg, err := client.Delete(context.Background(), "a.jpg")

	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestClient_Delete_PlainTextSuccessIsAccepted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Deleted"))
	})

	msg, err := client.Delete(context.Background(), "a.jpg")

	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestClient_NonJSONErrorBodyIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Convert(context.Background(), "a.jpg")

	assert.ErrorIs(t, err, contracts.ErrMalformedResponse)
	_, ok := contracts.ServerMessage(err)
	assert.False(t, ok)
}

func TestClient_TimeoutBoundsHangingBackend(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, server.Client())
	require.NoError(t, err)

	_, err = client.ListPhotos(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_Ping(t *testing.T) {
	healthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/list", r.URL.Path)
		w.Write([]byte(`[]`))
	})
	assert.NoError(t, healthy.Ping(context.Background()))

	broken := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Error(t, broken.Ping(context.Background()))
}
