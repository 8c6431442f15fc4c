package photoclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"photoframe/domain/contracts"
	"photoframe/domain/photos"
	"photoframe/logging"
)

// Config holds photo backend connection settings.
type Config struct {
	BaseURL string        `env:"BACKEND_URL" default:"http://localhost:5000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT" default:"30s"`
}

// Client talks to the photo backend over its REST-like JSON API.
// Every call is bounded by the configured timeout; nothing is retried.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logging.Logger
}

var _ contracts.PhotoBackend = (*Client)(nil)

// NewClient creates a backend client. A nil httpClient uses a fresh default client.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", cfg.BaseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    strings.TrimRight(base.String(), "/"),
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		logger:     logging.Default().WithComponent("photo_client"),
	}, nil
}

// Upload sends one file as the multipart field "file".
func (c *Client) Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, uploadField, escapeQuotes(filename)))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()
	defer pr.Close()

	return c.mutate(ctx, "upload", http.MethodPost, uploadPath, pr, mw.FormDataContentType())
}

// ListPhotos fetches the photo listing.
func (c *Client) ListPhotos(ctx context.Context) ([]photos.PhotoInfo, error) {
	body, err := c.do(ctx, "list", http.MethodGet, listPath, nil, "")
	if err != nil {
		return nil, err
	}

	var listing []photos.PhotoInfo
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("list: %w: %v", contracts.ErrMalformedResponse, err)
	}
	return listing, nil
}

// GetStatus fetches the conversion status report.
func (c *Client) GetStatus(ctx context.Context) (*photos.PhotoStatus, error) {
	body, err := c.do(ctx, "status", http.MethodGet, statusPath, nil, "")
	if err != nil {
		return nil, err
	}

	var status photos.PhotoStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("status: %w: %v", contracts.ErrMalformedResponse, err)
	}
	return &status, nil
}

// Convert asks the backend to convert a photo for the e-ink display.
func (c *Client) Convert(ctx context.Context, filename string) (string, error) {
	return c.mutate(ctx, "convert", http.MethodPost, convertPath+url.PathEscape(filename), nil, "")
}

// Display asks the backend to push a photo to the display.
func (c *Client) Display(ctx context.Context, filename string) (string, error) {
	return c.mutate(ctx, "display", http.MethodPost, displayPath+url.PathEscape(filename), nil, "")
}

// Delete removes a photo from the backend. Any 2xx answer is a success,
// whatever its body; a JSON message is passed through when present.
func (c *Client) Delete(ctx context.Context, filename string) (string, error) {
	respBody, err := c.do(ctx, "delete", http.MethodDelete, deletePath+url.PathEscape(filename), nil, "")
	if err != nil {
		return "", err
	}

	var payload messageJSON
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", nil
	}
	return payload.Message, nil
}

// Ping checks the backend answers the listing endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "ping", http.MethodGet, listPath, nil, "")
	return err
}

// mutate performs a call whose success body is an optional {message}.
func (c *Client) mutate(ctx context.Context, op, method, path string, body io.Reader, contentType string) (string, error) {
	respBody, err := c.do(ctx, op, method, path, body, contentType)
	if err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return "", nil
	}

	var payload messageJSON
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, contracts.ErrMalformedResponse, err)
	}
	return payload.Message, nil
}

// do executes a request and returns the body of a 2xx response.
// Non-2xx responses become *contracts.BackendError when the body carries JSON.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}

	c.logger.Backend("Backend call finished",
		"operation", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload messageJSON
		if err := json.Unmarshal(respBody, &payload); err != nil {
			return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, contracts.ErrMalformedResponse)
		}
		return nil, &contracts.BackendError{Op: op, StatusCode: resp.StatusCode, Message: payload.Error}
	}

	return respBody, nil
}
