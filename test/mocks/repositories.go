package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"photoframe/domain/contracts"
)

// MockDiagnosticRepository implements DiagnosticRepository for testing
type MockDiagnosticRepository struct {
	mock.Mock
}

func (m *MockDiagnosticRepository) Save(ctx context.Context, diagnostic *contracts.Diagnostic) error {
	args := m.Called(ctx, diagnostic)
	return args.Error(0)
}

func (m *MockDiagnosticRepository) ListRecent(ctx context.Context, limit int) ([]*contracts.Diagnostic, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contracts.Diagnostic), args.Error(1)
}

func (m *MockDiagnosticRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockDiagnosticSink implements DiagnosticSink for testing
type MockDiagnosticSink struct {
	mock.Mock
}

func (m *MockDiagnosticSink) Report(ctx context.Context, operation, subject string, err error) {
	m.Called(ctx, operation, subject, err)
}
