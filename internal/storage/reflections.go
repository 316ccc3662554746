package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/coachplan/internal/feedback"
)

// SaveReflections stores the week's reflection entries. Re-submitting an
// entry for the same session replaces the earlier one.
func (db *DB) SaveReflections(ctx context.Context, planID string, entries []feedback.Entry) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reflection save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO reflections (plan_id, session_id, completed, rpe, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			planID, e.SessionID, boolToInt(e.Completed), e.RPE, now,
		); err != nil {
			return fmt.Errorf("inserting reflection for %s: %w", e.SessionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reflection save: %w", err)
	}
	return nil
}

// QueryReflections returns the stored entries for a plan, ordered by the
// plan's session order.
func (db *DB) QueryReflections(ctx context.Context, planID string) ([]feedback.Entry, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT r.session_id, r.completed, r.rpe
		 FROM reflections r
		 JOIN plan_sessions s ON s.id = r.session_id AND s.plan_id = r.plan_id
		 WHERE r.plan_id = ?
		 ORDER BY s.position ASC`,
		planID)
	if err != nil {
		return nil, fmt.Errorf("querying reflections: %w", err)
	}
	defer rows.Close()

	var entries []feedback.Entry
	for rows.Next() {
		var e feedback.Entry
		var completed int
		if err := rows.Scan(&e.SessionID, &completed, &e.RPE); err != nil {
			return nil, fmt.Errorf("scanning reflection: %w", err)
		}
		e.Completed = completed != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
