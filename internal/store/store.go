// internal/store/store.go
// Package: store

// Package store keeps every attempted trial of every run in SQLite or
// Postgres, so timings can be compared across runs and machines.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mwiater/searchbench/internal/harness"
)

// DefaultHistoryLimit caps History when no positive limit is given.
const DefaultHistoryLimit = 10

// Run is one recorded experiment.
type Run struct {
	ID        int64     `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Algorithm string    `json:"algorithm"`
	Target    string    `json:"target"`
	Seed      uint64    `json:"seed"`
	Trials    int       `json:"trials"`
}

// RunSummary is a Run with its trial counts and the mean duration of its
// successful trials.
type RunSummary struct {
	Run
	Attempted  int     `json:"attempted"`
	Succeeded  int     `json:"succeeded"`
	MeanMillis float64 `json:"mean_ms"`
}

// Store persists runs and their trials.
type Store interface {
	Close() error
	SaveRun(ctx context.Context, run *Run) error
	SaveTrial(ctx context.Context, runID int64, tr harness.TrialResult) error
	History(ctx context.Context, limit int) ([]RunSummary, error)
}

// dialect carries what differs between the SQL backends.
type dialect struct {
	schema []string
	// numbered placeholders ($1, $2...) instead of ?
	numbered bool
	// INSERT ... RETURNING id instead of LastInsertId
	returning bool
}

// sqlStore implements Store on database/sql for any dialect.
type sqlStore struct {
	db *sql.DB
	d  dialect
}

func (s *sqlStore) migrate() error {
	for _, q := range s.d.schema {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders for dialects that number them.
func (s *sqlStore) rebind(q string) string {
	if !s.d.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts run and sets its ID. A zero StartedAt is set to now.
func (s *sqlStore) SaveRun(ctx context.Context, run *Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	query := `INSERT INTO runs (started_at, algorithm, target, seed, trials) VALUES (?, ?, ?, ?, ?)`
	// uint64 seeds are stored as their int64 bit pattern.
	args := []any{run.StartedAt.UTC(), run.Algorithm, run.Target, int64(run.Seed), run.Trials}

	if s.d.returning {
		if err := s.db.QueryRowContext(ctx, s.rebind(query+` RETURNING id`), args...).Scan(&run.ID); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	if run.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// SaveTrial records one attempted trial of run runID.
func (s *sqlStore) SaveTrial(ctx context.Context, runID int64, tr harness.TrialResult) error {
	query := `INSERT INTO trials (run_id, size, trial_id, length, target, idx, millis, ok, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, s.rebind(query),
		runID, tr.Size, tr.TrialID, tr.Length, tr.Target, tr.Index, tr.Millis, tr.OK(), tr.Err)
	if err != nil {
		return fmt.Errorf("save trial n=%d id=%d: %w", tr.Size, tr.TrialID, err)
	}
	return nil
}

// History returns the most recent runs, newest first.
func (s *sqlStore) History(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	query := `SELECT r.id, r.started_at, r.algorithm, r.target, r.seed, r.trials,
		COUNT(t.run_id),
		COALESCE(SUM(CASE WHEN t.ok THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(CASE WHEN t.ok THEN t.millis END), 0)
	FROM runs r LEFT JOIN trials t ON t.run_id = r.id
	GROUP BY r.id, r.started_at, r.algorithm, r.target, r.seed, r.trials
	ORDER BY r.started_at DESC, r.id DESC
	LIMIT ?`
	rows, err := s.db.QueryContext(ctx, s.rebind(query), limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var seed int64
		if err := rows.Scan(&rs.ID, &rs.StartedAt, &rs.Algorithm, &rs.Target, &seed, &rs.Trials,
			&rs.Attempted, &rs.Succeeded, &rs.MeanMillis); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rs.Seed = uint64(seed)
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Recorder saves every trial of one run. It implements
// harness.TrialObserver.
type Recorder struct {
	Store Store
	RunID int64
}

// ObserveTrial implements harness.TrialObserver.
func (r Recorder) ObserveTrial(ctx context.Context, tr harness.TrialResult) error {
	return r.Store.SaveTrial(ctx, r.RunID, tr)
}
