package store

import (
	"context"
	"fmt"
	"time"
)

// Event names for audit rows. One row is appended per handled engine
// request that reaches a decision.
const (
	EventRegistered     = "registered"
	EventUpdated        = "updated"
	EventDeleted        = "deleted"
	EventSolved         = "solved"
	EventSelfSolve      = "self_solve"
	EventGuessNoMatch   = "guess_no_match"
	EventGuessAmbiguous = "guess_ambiguous"
	EventRejected       = "rejected"
)

// AuditEvent is one audit log row.
type AuditEvent struct {
	ID         int64
	OccurredAt time.Time
	Event      string
	ActorID    string
	PuzzleRef  string
	Detail     string
}

// Append writes one audit row. Rows are never updated or deleted.
func (s *Store) Append(ctx context.Context, ev AuditEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (occurred_at, event, actor_id, puzzle_ref, detail)
		VALUES (?, ?, ?, ?, ?)
	`,
		ev.OccurredAt.UTC().Format(time.RFC3339),
		ev.Event,
		ev.ActorID,
		ev.PuzzleRef,
		ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]AuditEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, occurred_at, event, actor_id, puzzle_ref, detail
		FROM audit_events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("read audit events: %w", err)
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		var (
			ev   AuditEvent
			when string
		)
		if err := rows.Scan(&ev.ID, &when, &ev.Event, &ev.ActorID, &ev.PuzzleRef, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		ev.OccurredAt, err = time.Parse(time.RFC3339, when)
		if err != nil {
			return nil, fmt.Errorf("parse audit timestamp %q: %w", when, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit events: %w", err)
	}
	return events, nil
}

// CountByEvent returns the number of rows recorded for one event name.
func (s *Store) CountByEvent(ctx context.Context, event string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_events WHERE event = ?`, event,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return n, nil
}
