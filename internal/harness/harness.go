package harness

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/mombot/mom/internal/engine"
	"github.com/mombot/mom/internal/items"
	"github.com/mombot/mom/internal/registry"
	"github.com/mombot/mom/internal/vault"
)

// harnessSystemKey obscures names in the throwaway snapshot. Fixed so a
// scenario's on-disk artifacts are reproducible.
const harnessSystemKey = "harness-system-key"

var harnessEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Harness executes scenario steps against a real engine.
type Harness struct {
	engine   *engine.Engine
	registry *registry.Registry
}

// fixtureItems is the dictionary scenarios canonicalize against.
var fixtureItems = map[string]int64{
	"Lobster":       379,
	"Coal":          453,
	"Bones":         526,
	"Blue partyhat": 742,
	"Rope":          954,
	"Bucket":        1925,
	"Cabbage":       1965,
}

// Run executes a scenario in dir and returns the result. The snapshot
// file lives under dir, so callers pass a fresh temp directory for
// isolation.
func Run(scenario *Scenario, dir string) (*Result, error) {
	obscurer, err := vault.NewNameObscurer(harnessSystemKey)
	if err != nil {
		return nil, fmt.Errorf("initializing obscurer: %w", err)
	}

	reg, err := registry.Open(filepath.Join(dir, "snapshot.json"), obscurer)
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}

	dict, err := items.NewDictionary(fixtureItems)
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	h := &Harness{
		engine: engine.New(reg, dict,
			engine.WithClock(fixedClock{}),
		),
		registry: reg,
	}

	result := NewResult()
	ctx := context.Background()
	for i, step := range scenario.Steps {
		event, err := h.executeStep(ctx, i, step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
		result.Trace = append(result.Trace, event)
		checkExpect(result, i, step.Expect, event)
	}

	h.evaluateAssertions(ctx, scenario.Assertions, result)
	return result, nil
}

// fixedClock stamps every solve with the harness epoch. Timestamps never
// reach the transcript, but a fixed value keeps snapshot bytes stable.
type fixedClock struct{}

func (fixedClock) Now() time.Time { return harnessEpoch }

// executeStep dispatches one step to the engine. Engine errors are part
// of the transcript, not execution failures.
func (h *Harness) executeStep(ctx context.Context, index int, step Step) (TraceEvent, error) {
	event := TraceEvent{
		Step:  index,
		Op:    step.Op,
		Actor: step.AuthorName,
	}

	switch step.Op {
	case OpRegister:
		res, err := h.engine.HandleRegister(ctx, engine.RegisterRequest{
			AuthorID:     step.AuthorID,
			AuthorName:   step.AuthorName,
			Name:         step.Puzzle,
			RewardText:   step.Reward,
			AnswerText:   step.Answer,
			ItemListText: step.Items,
		})
		event.Puzzle = step.Puzzle
		if err != nil {
			return recordError(event, err)
		}
		event.Outcome = string(res.Outcome)

	case OpGuess:
		res, err := h.engine.HandleGuess(ctx, engine.GuessRequest{
			AuthorID:   step.AuthorID,
			AuthorName: step.AuthorName,
			Text:       step.Text,
		})
		if err != nil {
			return recordError(event, err)
		}
		event.Outcome = string(res.Outcome)
		event.Puzzle = res.PuzzleName
		event.Reward = res.RewardLines
		event.FirstSolver = res.FirstSolver
		event.Unknown = res.Unknown

	case OpList:
		entries, err := h.engine.HandleList(ctx, step.AuthorID)
		if err != nil {
			return recordError(event, err)
		}
		event.Outcome = "listed"
		for _, e := range entries {
			event.Entries = append(event.Entries, e.Name+": "+e.SolveStatus)
		}

	case OpDelete:
		event.Puzzle = step.Puzzle
		if err := h.engine.HandleDelete(ctx, step.AuthorID, step.Puzzle); err != nil {
			return recordError(event, err)
		}
		event.Outcome = "deleted"

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}

	return event, nil
}

// recordError folds a typed engine error into the trace. Anything else
// is a real harness failure.
func recordError(event TraceEvent, err error) (TraceEvent, error) {
	code := engine.CodeOf(err)
	if code == "" {
		return event, err
	}
	event.Error = string(code)
	return event, nil
}

// checkExpect compares an executed step against its expect clause.
func checkExpect(result *Result, index int, expect *Expect, event TraceEvent) {
	if expect == nil {
		return
	}

	if expect.Error != "" {
		if event.Error != expect.Error {
			result.AddError("steps[%d]: expected error %s, got outcome=%q error=%q",
				index, expect.Error, event.Outcome, event.Error)
		}
		return
	}

	if event.Outcome != expect.Outcome {
		result.AddError("steps[%d]: expected outcome %s, got outcome=%q error=%q",
			index, expect.Outcome, event.Outcome, event.Error)
		return
	}
	if len(expect.Reward) > 0 && !slices.Equal(event.Reward, expect.Reward) {
		result.AddError("steps[%d]: expected reward %v, got %v", index, expect.Reward, event.Reward)
	}
	if len(expect.Unknown) > 0 && !slices.Equal(event.Unknown, expect.Unknown) {
		result.AddError("steps[%d]: expected unknown items %v, got %v", index, expect.Unknown, event.Unknown)
	}
}

// evaluateAssertions checks final registry state.
func (h *Harness) evaluateAssertions(ctx context.Context, assertions []Assertion, result *Result) {
	for i, a := range assertions {
		switch a.Type {
		case AssertSolveStatus:
			entries, err := h.engine.HandleList(ctx, a.AuthorID)
			if err != nil {
				result.AddError("assertions[%d]: listing author %s: %v", i, a.AuthorID, err)
				continue
			}
			found := false
			for _, e := range entries {
				if e.Name == a.Puzzle {
					found = true
					if e.SolveStatus != a.Status {
						result.AddError("assertions[%d]: puzzle %s has status %q, want %q",
							i, a.Puzzle, e.SolveStatus, a.Status)
					}
					break
				}
			}
			if !found {
				result.AddError("assertions[%d]: author %s has no puzzle %s", i, a.AuthorID, a.Puzzle)
			}

		case AssertCounts:
			active, solved := h.registry.Counts()
			if active != a.Active || solved != a.Solved {
				result.AddError("assertions[%d]: partitions are %d active / %d solved, want %d / %d",
					i, active, solved, a.Active, a.Solved)
			}
		}
	}
}
