package contracts

import (
	"context"
	"time"
)

// Diagnostic is a developer-facing record of an error hidden behind a user notification.
type Diagnostic struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DiagnosticSink receives underlying errors of user-facing failures.
type DiagnosticSink interface {
	Report(ctx context.Context, operation, subject string, err error)
}

// DiagnosticRepository stores diagnostics.
type DiagnosticRepository interface {
	Save(ctx context.Context, diagnostic *Diagnostic) error
	ListRecent(ctx context.Context, limit int) ([]*Diagnostic, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
