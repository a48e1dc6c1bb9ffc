package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lumeq/lumeq/internal/events"
)

// ErrRunNotFound is returned when a run id is absent from the store.
var ErrRunNotFound = errors.New("run not found")

// GetRun returns the provenance record of a run.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	var run Run
	var expand int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, program, hash, event_count, max_events, expand_loops, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Program, &run.Hash, &run.EventCount, &run.MaxEvents, &expand, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	run.ExpandLoops = expand != 0
	return run, nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, program, hash, event_count, max_events, expand_loops, created_at
		FROM runs ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var expand int
		if err := rows.Scan(&run.ID, &run.Program, &run.Hash, &run.EventCount, &run.MaxEvents, &expand, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		run.ExpandLoops = expand != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadEvents returns a run's events in emission order.
func (s *Store) LoadEvents(ctx context.Context, id string) (events.List, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM run_events WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("load events for %s: %w", id, err)
	}
	defer rows.Close()

	var list events.List
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("load events for %s: %w", id, err)
		}
		var e events.Event
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("load events for %s: %w", id, err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
