package store

import (
	"context"
	"fmt"
	"time"
)

// Session is one recorded search.
type Session struct {
	ID        string
	CreatedAt time.Time
	Query     string
	Size      int
	Truncated bool
}

// Result is one derivation recorded for a session, ordered by position.
type Result struct {
	Position   int
	Source     string
	Complexity int
}

// WriteSession records a session together with its results in a single
// transaction. Re-writing an existing session ID is silently ignored.
func (s *Store) WriteSession(ctx context.Context, session Session, results []Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at, query, size, truncated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		session.ID,
		session.CreatedAt.UTC().Format(time.RFC3339Nano),
		session.Query,
		session.Size,
		session.Truncated,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil // duplicate session, keep the original
	}

	for _, r := range results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO results (session_id, position, source, complexity)
			VALUES (?, ?, ?, ?)
		`, session.ID, r.Position, r.Source, r.Complexity)
		if err != nil {
			return fmt.Errorf("write result %d: %w", r.Position, err)
		}
	}
	return tx.Commit()
}
