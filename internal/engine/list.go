package engine

import (
	"context"
	"log/slog"

	"github.com/mombot/mom/internal/store"
)

// ListEntry is one row of an author's puzzle listing.
type ListEntry struct {
	Name        string
	SolveStatus string
}

// HandleList returns the requesting author's puzzles, active and solved,
// with their solve status. Only names and statuses leave the engine;
// fingerprints and secrets stay inside.
func (e *Engine) HandleList(ctx context.Context, authorID string) ([]ListEntry, error) {
	if authorID == "" {
		return nil, validationError("author id is required")
	}

	owned := e.registry.AuthorPuzzles(authorID, "")
	entries := make([]ListEntry, 0, len(owned))
	for _, p := range owned {
		entries = append(entries, ListEntry{
			Name:        p.Name,
			SolveStatus: p.SolveStatus(),
		})
	}
	return entries, nil
}

// HandleDelete removes the author's active puzzle with the given name.
//
// A name that exists only as solved history is NOT_FOUND: solved puzzles
// are immutable, so from the author's point of view there is nothing left
// to delete.
func (e *Engine) HandleDelete(ctx context.Context, authorID, name string) error {
	if authorID == "" || name == "" {
		return validationError("author id and puzzle name are required")
	}

	target := e.findOwn(authorID, name)
	if target == nil {
		return notFoundError("no puzzle named %q for this author", name)
	}

	deleted, err := e.registry.Delete(target)
	if err != nil {
		return persistenceError("delete not durably saved", err)
	}
	if !deleted {
		return notFoundError("puzzle %q has been solved and cannot be deleted", name)
	}

	slog.Info("puzzle deleted", "author", authorID, "name", name)
	e.recordAudit(ctx, store.EventDeleted, authorID, name, "")
	return nil
}
