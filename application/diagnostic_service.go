package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"photoframe/domain/contracts"
	"photoframe/logging"
)

// DiagnosticService is the developer-facing channel for errors that users only
// see as a generic notification. Every report is logged and, when a repository
// is configured, stored for later inspection.
type DiagnosticService struct {
	repo   contracts.DiagnosticRepository
	logger *logging.Logger
	now    func() time.Time
}

var _ contracts.DiagnosticSink = (*DiagnosticService)(nil)

// NewDiagnosticService creates a diagnostic channel. repo may be nil.
func NewDiagnosticService(repo contracts.DiagnosticRepository) *DiagnosticService {
	return &DiagnosticService{
		repo:   repo,
		logger: logging.Default().WithComponent("diagnostics"),
		now:    time.Now,
	}
}

// Report records the underlying error of a failed operation. It never fails.
func (s *DiagnosticService) Report(ctx context.Context, operation, subject string, err error) {
	if err == nil {
		return
	}
	s.logger.ActionError("Operation failed", err, operation, subject)

	if s.repo == nil {
		return
	}

	diagnostic := &contracts.Diagnostic{
		ID:         uuid.NewString(),
		Operation:  operation,
		Subject:    subject,
		Message:    err.Error(),
		OccurredAt: s.now().UTC(),
	}
	if saveErr := s.repo.Save(context.WithoutCancel(ctx), diagnostic); saveErr != nil {
		s.logger.Warn("Failed to store diagnostic",
			"operation", operation,
			"subject", subject,
			"error", saveErr)
	}
}

// Recent returns the latest diagnostics, newest first.
func (s *DiagnosticService) Recent(ctx context.Context, limit int) ([]*contracts.Diagnostic, error) {
	if s.repo == nil {
		return []*contracts.Diagnostic{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}

// Prune deletes diagnostics older than maxAge.
func (s *DiagnosticService) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	removed, err := s.repo.DeleteOlderThan(ctx, s.now().UTC().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("Pruned diagnostics", "removed", removed, "max_age", maxAge.String())
	}
	return removed, nil
}
