package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"photoframe/database"
	"photoframe/domain/contracts"
)

// SqliteDiagnosticRepository implements contracts.DiagnosticRepository with read/write separation.
type SqliteDiagnosticRepository struct {
	*BaseRepository
}

// NewSqliteDiagnosticRepository creates a new diagnostic repository.
func NewSqliteDiagnosticRepository(database *database.Database) contracts.DiagnosticRepository {
	return &SqliteDiagnosticRepository{
		BaseRepository: NewBaseRepository(database),
	}
}

// Save stores a diagnostic. Saving the same ID twice keeps the first record.
func (r *SqliteDiagnosticRepository) Save(ctx context.Context, diagnostic *contracts.Diagnostic) error {
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO diagnostics (id, operation, subject, message, occurred_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING`,
			diagnostic.ID,
			diagnostic.Operation,
			diagnostic.Subject,
			diagnostic.Message,
			diagnostic.OccurredAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert diagnostic %s: %w", diagnostic.ID, err)
		}
		return nil
	})
}

// ListRecent returns up to limit diagnostics, newest first.
func (r *SqliteDiagnosticRepository) ListRecent(ctx context.Context, limit int) ([]*contracts.Diagnostic, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit{Limit: limit}
	}

	rows, err := r.ReadDB().QueryContext(ctx, `
		SELECT id, operation, subject, message, occurred_at
		FROM diagnostics
		ORDER BY occurred_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	diagnostics := make([]*contracts.Diagnostic, 0)
	for rows.Next() {
		var (
			d          contracts.Diagnostic
			subject    sql.NullString
			occurredAt time.Time
		)
		if err := rows.Scan(&d.ID, &d.Operation, &subject, &d.Message, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.Subject = r.FromNullString(subject)
		d.OccurredAt = occurredAt.UTC()
		diagnostics = append(diagnostics, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}

	return diagnostics, nil
}

// DeleteOlderThan removes diagnostics recorded before cutoff.
func (r *SqliteDiagnosticRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.WriteDB().ExecContext(ctx,
		"DELETE FROM diagnostics WHERE occurred_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete diagnostics: %w", err)
	}
	return result.RowsAffected()
}
