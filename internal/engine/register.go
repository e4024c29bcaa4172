package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mombot/mom/internal/items"
	"github.com/mombot/mom/internal/puzzle"
	"github.com/mombot/mom/internal/store"
)

// RegisterRequest carries a puzzle registration from the chat front end.
// Exactly one of AnswerText and ItemListText must be set.
type RegisterRequest struct {
	AuthorID   string `validate:"required"`
	AuthorName string `validate:"required"`
	Name       string `validate:"required,max=100"`
	RewardText string `validate:"required"`

	AnswerText   string
	ItemListText string

	// Thread optionally links the puzzle to a discussion thread.
	Thread *puzzle.ThreadMeta
}

// RegisterOutcome distinguishes a fresh registration from an authorized
// update of the author's existing puzzle of the same name.
type RegisterOutcome string

const (
	OutcomeRegistered RegisterOutcome = "registered"
	OutcomeUpdated    RegisterOutcome = "updated"
)

// RegisterResult reports a successful registration. Failures are returned
// as typed *Error values (validation, duplicate solution, unknown items,
// persistence).
type RegisterResult struct {
	Outcome  RegisterOutcome
	Position int // slot in the active partition; meaningful for Registered
}

// HandleRegister validates, canonicalizes, and registers a puzzle.
//
// Re-registering under the same author+name replaces the active puzzle and
// carries its solve record forward. A fingerprint collision with any other
// active puzzle is rejected as a duplicate solution: two puzzles must never
// be ambiguous under one guess.
func (e *Engine) HandleRegister(ctx context.Context, req RegisterRequest) (RegisterResult, error) {
	if err := e.validateRegister(req); err != nil {
		e.recordAudit(ctx, store.EventRejected, req.AuthorID, req.Name, "validation")
		return RegisterResult{}, err
	}

	// Canonicalize the item list up front; at registration time anything
	// short of a full resolution is a hard failure.
	var itemCanonical string
	if req.ItemListText != "" {
		res := e.dict.Canonicalize(req.ItemListText, e.delimiter)
		switch res.Status {
		case items.StatusOK:
			itemCanonical = res.Canonical
		case items.StatusAmbiguous:
			e.recordAudit(ctx, store.EventRejected, req.AuthorID, req.Name, "unknown items")
			return RegisterResult{}, unknownItemsError(res.Unknown)
		default:
			e.recordAudit(ctx, store.EventRejected, req.AuthorID, req.Name, "no items resolved")
			return RegisterResult{}, unknownItemsError(res.Unknown)
		}
	}

	candidate, err := puzzle.New(req.Name, req.AuthorID, req.AuthorName, req.AnswerText, itemCanonical, req.RewardText)
	if err != nil {
		return RegisterResult{}, validationError("build puzzle: %v", err)
	}
	candidate.Thread = req.Thread

	// An existing active puzzle under the same author+name makes this an
	// authorized update rather than a duplicate.
	existing := e.findOwn(req.AuthorID, req.Name)
	if existing != nil && !e.registry.IsActive(existing) {
		return RegisterResult{}, validationError("puzzle %q has been solved; solved puzzles are immutable history", req.Name)
	}

	collision, err := e.registry.FindCollision(candidate)
	if err != nil {
		return RegisterResult{}, typeInvariantError(err)
	}
	if collision != nil && collision != existing {
		e.recordAudit(ctx, store.EventRejected, req.AuthorID, req.Name, "duplicate solution")
		return RegisterResult{}, duplicateSolutionError(collision.Name)
	}

	if existing != nil {
		if err := e.registry.Update(existing, candidate); err != nil {
			return RegisterResult{}, persistenceError("update not durably saved", err)
		}
		slog.Info("puzzle updated", "author", req.AuthorID, "name", req.Name)
		e.recordAudit(ctx, store.EventUpdated, req.AuthorID, req.Name, "")
		return RegisterResult{Outcome: OutcomeUpdated}, nil
	}

	pos, err := e.registry.Register(candidate)
	if err != nil {
		return RegisterResult{}, persistenceError("registration not durably saved", err)
	}
	slog.Info("puzzle registered", "author", req.AuthorID, "name", req.Name, "position", pos)
	e.recordAudit(ctx, store.EventRegistered, req.AuthorID, req.Name, "")
	return RegisterResult{Outcome: OutcomeRegistered, Position: pos}, nil
}

// validateRegister applies the struct tags plus the rules tags cannot
// express: answer-form exclusivity and the reward line cap.
func (e *Engine) validateRegister(req RegisterRequest) error {
	if err := e.validate.Struct(req); err != nil {
		return validationError("invalid registration: %v", err)
	}

	if (req.AnswerText == "") == (req.ItemListText == "") {
		return validationError("supply exactly one of an answer text or an item list")
	}

	if lines := strings.Count(req.RewardText, "\n") + 1; lines > e.rewardLineLimit {
		return validationError("reward text spans %d lines, limit is %d", lines, e.rewardLineLimit)
	}

	return nil
}

// findOwn returns the author's puzzle with the given name, or nil.
func (e *Engine) findOwn(authorID, name string) *puzzle.Puzzle {
	owned := e.registry.AuthorPuzzles(authorID, name)
	if len(owned) == 0 {
		return nil
	}
	// AuthorPuzzles lists solved puzzles first; with per-author name
	// uniqueness there is at most one match either way.
	return owned[0]
}
