package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/rules"
)

// SavePlan appends p as the session's next week. Weeks are numbered from 1
// within a session; the stored plan is never modified afterwards.
func (db *DB) SavePlan(ctx context.Context, sessionKey string, p *plan.WeeklyPlan) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	var weekIndex int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(week_index), 0) + 1 FROM weekly_plans WHERE session_key = ?`,
		sessionKey,
	).Scan(&weekIndex); err != nil {
		return fmt.Errorf("computing week index: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO weekly_plans
			(id, session_key, week_index, sport, level, total_unit_load, prior_load, progression_ratio, notice, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, sessionKey, weekIndex, p.Sport, p.Level,
		p.TotalUnitLoad, p.PriorLoad, p.ProgressionRatio, p.Notice,
		p.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for i, s := range p.Sessions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO plan_sessions
				(id, plan_id, position, day, focus, intensity, duration_min, unit_load, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, p.ID, i, s.Day, s.Focus, string(s.Intensity), s.DurationMin, s.UnitLoad, s.Notes,
		); err != nil {
			return fmt.Errorf("inserting session %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

// CurrentPlan returns the session's most recent week, or ErrNotFound.
func (db *DB) CurrentPlan(ctx context.Context, sessionKey string) (*plan.WeeklyPlan, error) {
	row := db.db.QueryRowContext(ctx,
		`SELECT id, sport, level, total_unit_load, prior_load, progression_ratio, notice, created_at
		 FROM weekly_plans
		 WHERE session_key = ?
		 ORDER BY week_index DESC
		 LIMIT 1`,
		sessionKey)

	p, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	if err := db.loadSessions(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PlanHistory returns all of the session's weeks in chronological order.
func (db *DB) PlanHistory(ctx context.Context, sessionKey string) ([]plan.WeeklyPlan, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT id, sport, level, total_unit_load, prior_load, progression_ratio, notice, created_at
		 FROM weekly_plans
		 WHERE session_key = ?
		 ORDER BY week_index ASC`,
		sessionKey)
	if err != nil {
		return nil, fmt.Errorf("querying plan history: %w", err)
	}
	defer rows.Close()

	var history []plan.WeeklyPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range history {
		if err := db.loadSessions(ctx, &history[i]); err != nil {
			return nil, err
		}
	}
	return history, nil
}

// LatestTotalLoad returns the most recent week's total unit load, or 0 when
// the session has no prior week.
func (db *DB) LatestTotalLoad(ctx context.Context, sessionKey string) (float64, error) {
	var total float64
	err := db.db.QueryRowContext(ctx,
		`SELECT total_unit_load FROM weekly_plans
		 WHERE session_key = ?
		 ORDER BY week_index DESC
		 LIMIT 1`,
		sessionKey,
	).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying latest load: %w", err)
	}
	return total, nil
}

// DeleteSession discards everything stored for a session key.
func (db *DB) DeleteSession(ctx context.Context, sessionKey string) error {
	if _, err := db.db.ExecContext(ctx,
		`DELETE FROM weekly_plans WHERE session_key = ?`, sessionKey,
	); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*plan.WeeklyPlan, error) {
	var p plan.WeeklyPlan
	var createdAt string
	err := row.Scan(&p.ID, &p.Sport, &p.Level, &p.TotalUnitLoad, &p.PriorLoad,
		&p.ProgressionRatio, &p.Notice, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = t
	}
	return &p, nil
}

func (db *DB) loadSessions(ctx context.Context, p *plan.WeeklyPlan) error {
	rows, err := db.db.QueryContext(ctx,
		`SELECT id, day, focus, intensity, duration_min, unit_load, notes
		 FROM plan_sessions
		 WHERE plan_id = ?
		 ORDER BY position ASC`,
		p.ID)
	if err != nil {
		return fmt.Errorf("querying plan sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s plan.Session
		var intensity string
		if err := rows.Scan(&s.ID, &s.Day, &s.Focus, &intensity, &s.DurationMin, &s.UnitLoad, &s.Notes); err != nil {
			return fmt.Errorf("scanning plan session: %w", err)
		}
		s.Intensity = rules.Intensity(intensity)
		p.Sessions = append(p.Sessions, s)
	}
	return rows.Err()
}
