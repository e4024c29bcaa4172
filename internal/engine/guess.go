package engine

import (
	"context"
	"log/slog"

	"github.com/mombot/mom/internal/items"
	"github.com/mombot/mom/internal/puzzle"
	"github.com/mombot/mom/internal/store"
)

// GuessRequest carries one free-text guess from the chat front end.
type GuessRequest struct {
	AuthorID   string `validate:"required"`
	AuthorName string `validate:"required"`
	Text       string `validate:"required"`
}

// GuessOutcome classifies what a guess achieved.
type GuessOutcome string

const (
	// OutcomeNoMatch means the guess fingerprints against no puzzle.
	OutcomeNoMatch GuessOutcome = "no_match"

	// OutcomeAmbiguous means the guess partially resolved as an item
	// list; the submitter should clarify. Not a failure, and nothing
	// about recognized items is ever shown to anyone but the submitter.
	OutcomeAmbiguous GuessOutcome = "ambiguous"

	// OutcomeSelfSolve means the guess matched the guesser's own puzzle;
	// no solve record is stamped.
	OutcomeSelfSolve GuessOutcome = "self_solve"

	// OutcomeSolved means the guess matched and the reward is revealed.
	OutcomeSolved GuessOutcome = "solved"
)

// GuessResult reports the outcome of a guess.
type GuessResult struct {
	Outcome GuessOutcome

	// PuzzleName and RewardLines are set for OutcomeSolved.
	PuzzleName  string
	RewardLines []string

	// FirstSolver is true when this guess stamped the solve record.
	// A solved puzzle stays matchable; later solvers still see the
	// reward but the record keeps its first solver.
	FirstSolver bool

	// Unknown lists unresolved item names for OutcomeAmbiguous, for the
	// clarifying prompt to the submitter only.
	Unknown []string
}

// HandleGuess matches a guess against the registry, first as an ordered
// string answer and then, if the text parses as an item list, in
// canonical item-list form.
func (e *Engine) HandleGuess(ctx context.Context, req GuessRequest) (GuessResult, error) {
	if err := e.validate.Struct(req); err != nil {
		return GuessResult{}, validationError("invalid guess: %v", err)
	}

	if p := e.registry.SolutionMatch(req.Text, puzzle.FormAnswer); p != nil {
		return e.completeMatch(ctx, req, p, req.Text, puzzle.FormAnswer)
	}

	res := e.dict.Canonicalize(req.Text, e.delimiter)
	switch res.Status {
	case items.StatusOK:
		if p := e.registry.SolutionMatch(res.Canonical, puzzle.FormItems); p != nil {
			return e.completeMatch(ctx, req, p, res.Canonical, puzzle.FormItems)
		}
	case items.StatusAmbiguous:
		e.recordAudit(ctx, store.EventGuessAmbiguous, req.AuthorID, "", "")
		return GuessResult{Outcome: OutcomeAmbiguous, Unknown: res.Unknown}, nil
	}

	e.recordAudit(ctx, store.EventGuessNoMatch, req.AuthorID, "", "")
	return GuessResult{Outcome: OutcomeNoMatch}, nil
}

// completeMatch turns a fingerprint hit into the final guess outcome:
// self-solve rejection, reward reveal, and first-solver stamping.
func (e *Engine) completeMatch(ctx context.Context, req GuessRequest, p *puzzle.Puzzle, key string, form puzzle.Form) (GuessResult, error) {
	// Self-solve is rejected here, above the registry, and never recorded
	// as a solve.
	if p.AuthorID == req.AuthorID {
		slog.Debug("self solve rejected", "author", req.AuthorID, "puzzle", p.Name)
		e.recordAudit(ctx, store.EventSelfSolve, req.AuthorID, p.Name, "")
		return GuessResult{Outcome: OutcomeSelfSolve}, nil
	}

	reward, err := p.RevealReward(key, form)
	if err != nil {
		// Unreachable when the store is consistent: the fingerprint match
		// proved the key.
		return GuessResult{}, typeInvariantError(err)
	}

	result := GuessResult{
		Outcome:     OutcomeSolved,
		PuzzleName:  p.Name,
		RewardLines: reward,
	}

	if !p.Solved() {
		if err := e.registry.MarkSolved(p, req.AuthorName, req.AuthorID, e.clock.Now()); err != nil {
			return GuessResult{}, persistenceError("solve not durably saved", err)
		}
		result.FirstSolver = true
		slog.Info("puzzle solved", "puzzle", p.Name, "solver", req.AuthorID, "form", form)
		e.recordAudit(ctx, store.EventSolved, req.AuthorID, p.Name, string(form))
	} else {
		slog.Debug("repeat solve", "puzzle", p.Name, "guesser", req.AuthorID)
	}

	return result, nil
}
