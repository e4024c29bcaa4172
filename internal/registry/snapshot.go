package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mombot/mom/internal/puzzle"
	"github.com/mombot/mom/internal/vault"
)

// snapshotVersion is the current snapshot schema version.
//
// Version history:
//
//	1 - initial explicit schema (obscured name, two fingerprint slots,
//	    two secrets, nullable solve record, optional thread meta)
//
// Snapshots without a version tag predate this codec and must be imported
// with the migrate command; the loader rejects them deliberately instead of
// guessing field-by-field.
const snapshotVersion = 1

// snapshotEnvelope is the top-level persisted record: the schema version
// and the two ordered partitions. No other top-level fields exist.
type snapshotEnvelope struct {
	SchemaVersion int              `json:"schema_version"`
	Active        []snapshotPuzzle `json:"active"`
	Solved        []snapshotPuzzle `json:"solved"`
}

// snapshotPuzzle is the explicit persisted schema for one puzzle. Every
// field is listed here; the decoder rejects unknown fields rather than
// silently ignoring them.
type snapshotPuzzle struct {
	Name              string          `json:"name"` // obscured
	AuthorID          string          `json:"author_id"`
	AuthorName        string          `json:"author_name"`
	AnswerFingerprint string          `json:"answer_fingerprint"`
	ItemFingerprint   string          `json:"item_fingerprint"`
	SecretForAnswer   string          `json:"secret_for_answer"`
	SecretForItems    string          `json:"secret_for_items"`
	Solve             *snapshotSolve  `json:"solve_record"`
	Thread            *snapshotThread `json:"thread_meta,omitempty"`
}

type snapshotSolve struct {
	SolverName string    `json:"solver_name"`
	SolverID   string    `json:"solver_id"`
	SolvedAt   time.Time `json:"solved_at"`
}

type snapshotThread struct {
	ChannelID string `json:"channel_id"`
	ThreadID  string `json:"thread_id"`
}

// writeSnapshot persists both partitions atomically: the encoded snapshot
// is written to a temporary file in the target directory and renamed into
// place, so an interrupted write can never leave a truncated snapshot.
func writeSnapshot(path string, obscurer *vault.NameObscurer, active, solved []*puzzle.Puzzle) error {
	envelope := snapshotEnvelope{
		SchemaVersion: snapshotVersion,
		Active:        make([]snapshotPuzzle, 0, len(active)),
		Solved:        make([]snapshotPuzzle, 0, len(solved)),
	}

	for _, p := range active {
		record, err := encodePuzzle(p, obscurer)
		if err != nil {
			return err
		}
		envelope.Active = append(envelope.Active, record)
	}
	for _, p := range solved {
		record, err := encodePuzzle(p, obscurer)
		if err != nil {
			return err
		}
		envelope.Solved = append(envelope.Solved, record)
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("install snapshot: %w", err)
	}
	return nil
}

// loadSnapshot reads both partitions from the snapshot at path. A missing
// file yields two empty partitions; the registry starts fresh.
func loadSnapshot(path string, obscurer *vault.NameObscurer) (active, solved []*puzzle.Puzzle, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	var envelope snapshotEnvelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&envelope); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	if envelope.SchemaVersion != snapshotVersion {
		return nil, nil, fmt.Errorf(
			"snapshot %s has schema version %d, want %d (legacy stores must be imported with the migrate command)",
			path, envelope.SchemaVersion, snapshotVersion)
	}

	active = make([]*puzzle.Puzzle, 0, len(envelope.Active))
	for i, record := range envelope.Active {
		p, err := decodePuzzle(record, obscurer)
		if err != nil {
			return nil, nil, fmt.Errorf("decode snapshot %s: active[%d]: %w", path, i, err)
		}
		active = append(active, p)
	}

	solved = make([]*puzzle.Puzzle, 0, len(envelope.Solved))
	for i, record := range envelope.Solved {
		p, err := decodePuzzle(record, obscurer)
		if err != nil {
			return nil, nil, fmt.Errorf("decode snapshot %s: solved[%d]: %w", path, i, err)
		}
		solved = append(solved, p)
	}

	return active, solved, nil
}

func encodePuzzle(p *puzzle.Puzzle, obscurer *vault.NameObscurer) (snapshotPuzzle, error) {
	obscuredName, err := obscurer.Obscure(p.Name)
	if err != nil {
		return snapshotPuzzle{}, fmt.Errorf("encode puzzle %q: %w", p.Name, err)
	}

	record := snapshotPuzzle{
		Name:              obscuredName,
		AuthorID:          p.AuthorID,
		AuthorName:        p.AuthorName,
		AnswerFingerprint: p.AnswerFingerprint,
		ItemFingerprint:   p.ItemFingerprint,
		SecretForAnswer:   p.SecretForAnswer,
		SecretForItems:    p.SecretForItems,
	}
	if p.Solve != nil {
		record.Solve = &snapshotSolve{
			SolverName: p.Solve.SolverName,
			SolverID:   p.Solve.SolverID,
			SolvedAt:   p.Solve.SolvedAt,
		}
	}
	if p.Thread != nil {
		record.Thread = &snapshotThread{
			ChannelID: p.Thread.ChannelID,
			ThreadID:  p.Thread.ThreadID,
		}
	}
	return record, nil
}

func decodePuzzle(record snapshotPuzzle, obscurer *vault.NameObscurer) (*puzzle.Puzzle, error) {
	if err := validateRecord(record); err != nil {
		return nil, err
	}

	name, err := obscurer.Unobscure(record.Name)
	if err != nil {
		return nil, err
	}

	p := &puzzle.Puzzle{
		Name:              name,
		AuthorID:          record.AuthorID,
		AuthorName:        record.AuthorName,
		AnswerFingerprint: record.AnswerFingerprint,
		ItemFingerprint:   record.ItemFingerprint,
		SecretForAnswer:   record.SecretForAnswer,
		SecretForItems:    record.SecretForItems,
	}
	if record.Solve != nil {
		p.Solve = &puzzle.SolveRecord{
			SolverName: record.Solve.SolverName,
			SolverID:   record.Solve.SolverID,
			SolvedAt:   record.Solve.SolvedAt,
		}
	}
	if record.Thread != nil {
		p.Thread = &puzzle.ThreadMeta{
			ChannelID: record.Thread.ChannelID,
			ThreadID:  record.Thread.ThreadID,
		}
	}
	return p, nil
}

// validateRecord checks the per-puzzle schema invariants the type system
// cannot: mandatory fields present, solve record and thread meta each
// all-or-none.
func validateRecord(record snapshotPuzzle) error {
	switch {
	case record.Name == "":
		return fmt.Errorf("missing name")
	case record.AuthorID == "":
		return fmt.Errorf("missing author_id")
	case record.AnswerFingerprint == "" || record.ItemFingerprint == "":
		return fmt.Errorf("fingerprint slot unpopulated")
	case record.SecretForAnswer == "" || record.SecretForItems == "":
		return fmt.Errorf("secret slot unpopulated")
	}

	if s := record.Solve; s != nil {
		if s.SolverName == "" || s.SolverID == "" || s.SolvedAt.IsZero() {
			return fmt.Errorf("partial solve record")
		}
	}
	if m := record.Thread; m != nil {
		if m.ChannelID == "" || m.ThreadID == "" {
			return fmt.Errorf("partial thread meta")
		}
	}
	return nil
}
