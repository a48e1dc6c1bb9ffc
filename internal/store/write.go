package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumeq/lumeq/internal/events"
)

// Run is the provenance record of one stored generation run.
type Run struct {
	ID          string `json:"id"`
	Program     string `json:"program"`
	Hash        string `json:"hash"`
	EventCount  int    `json:"event_count"`
	MaxEvents   int    `json:"max_events"`
	ExpandLoops bool   `json:"expand_loops"`
	CreatedAt   string `json:"created_at"`
}

// NewRunID generates a time-sortable UUIDv7 run id.
//
// UUIDv7 embeds a timestamp in the most significant bits, so listing runs
// by id orders them by creation time.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SaveRun persists a run and its events in one transaction. The run's Hash
// and EventCount are filled in from the list; a missing ID gets a fresh
// UUIDv7 and a missing CreatedAt the current UTC time.
func (s *Store) SaveRun(ctx context.Context, run Run, list events.List) (Run, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.CreatedAt == "" {
		run.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	hash, err := events.HashList(list)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	run.Hash = hash
	run.EventCount = len(list)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	defer tx.Rollback()

	expand := 0
	if run.ExpandLoops {
		expand = 1
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, program, hash, event_count, max_events, expand_loops, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Program, run.Hash, run.EventCount, run.MaxEvents, expand, run.CreatedAt); err != nil {
		return Run{}, fmt.Errorf("save run %s: %w", run.ID, err)
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO run_events (run_id, position, event_type, time, payload)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Run{}, fmt.Errorf("save run %s: %w", run.ID, err)
	}
	defer insert.Close()

	for i, e := range list {
		payload, err := json.Marshal(e)
		if err != nil {
			return Run{}, fmt.Errorf("save run %s: event %d: %w", run.ID, i, err)
		}
		if _, err := insert.ExecContext(ctx, run.ID, i, string(e.Type), e.Time, string(payload)); err != nil {
			return Run{}, fmt.Errorf("save run %s: event %d: %w", run.ID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return run, nil
}
