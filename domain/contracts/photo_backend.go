package contracts

import (
	"context"
	"io"

	"photoframe/domain/photos"
)

// PhotoBackend defines the operations of the external photo service.
type PhotoBackend interface {
	Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error)
	ListPhotos(ctx context.Context) ([]photos.PhotoInfo, error)
	GetStatus(ctx context.Context) (*photos.PhotoStatus, error)
	Convert(ctx context.Context, filename string) (string, error)
	Display(ctx context.Context, filename string) (string, error)
	Delete(ctx context.Context, filename string) (string, error)
}
