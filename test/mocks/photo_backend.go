package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"photoframe/domain/photos"
)

// MockPhotoBackend implements PhotoBackend for testing
type MockPhotoBackend struct {
	mock.Mock
}

func (m *MockPhotoBackend) Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, content)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoBackend) ListPhotos(ctx context.Context) ([]photos.PhotoInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]photos.PhotoInfo), args.Error(1)
}

func (m *MockPhotoBackend) GetStatus(ctx context.Context) (*photos.PhotoStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*photos.PhotoStatus), args.Error(1)
}

func (m *MockPhotoBackend) Convert(ctx context.Context, filename string) (string, error) {
	args := m.Called(ctx, filename)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoBackend) Display(ctx context.Context, filename string) (string, error) {
	args := m.Called(ctx, filename)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoBackend) Delete(ctx context.Context, filename string) (string, error) {
	args := m.Called(ctx, filename)
	return args.String(0), args.Error(1)
}
