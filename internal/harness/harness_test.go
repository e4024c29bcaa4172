package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PassingScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline",
		Description: "register and solve",
		Steps: []Step{
			{Op: OpRegister, AuthorID: "a1", AuthorName: "Alice", Puzzle: "Onion", Answer: "onion man", Reward: "GZ",
				Expect: &Expect{Outcome: "registered"}},
			{Op: OpGuess, AuthorID: "b1", AuthorName: "Bob", Text: "ONIONMAN",
				Expect: &Expect{Outcome: "solved", Reward: []string{"GZ"}}},
		},
		Assertions: []Assertion{
			{Type: AssertCounts, Active: 0, Solved: 1},
			{Type: AssertSolveStatus, AuthorID: "a1", Puzzle: "Onion", Status: "First solved by: Bob"},
		},
	}

	result, err := Run(scenario, t.TempDir())
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Trace, 2)
	assert.True(t, result.Trace[1].FirstSolver)
}

func TestRun_ExpectationMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "a wrong expectation is reported, not fatal",
		Steps: []Step{
			{Op: OpGuess, AuthorID: "b1", AuthorName: "Bob", Text: "anything",
				Expect: &Expect{Outcome: "solved"}},
		},
	}

	result, err := Run(scenario, t.TempDir())
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected outcome solved")
}

func TestRun_EngineErrorsAreTraced(t *testing.T) {
	scenario := &Scenario{
		Name:        "traced-error",
		Description: "a domain rejection lands in the trace",
		Steps: []Step{
			{Op: OpDelete, AuthorID: "a1", AuthorName: "Alice", Puzzle: "Ghost",
				Expect: &Expect{Error: "NOT_FOUND"}},
		},
	}

	result, err := Run(scenario, t.TempDir())
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "NOT_FOUND", result.Trace[0].Error)
}

func TestRun_FailedAssertion(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad-assertion",
		Description: "a counts mismatch fails the run",
		Steps: []Step{
			{Op: OpRegister, AuthorID: "a1", AuthorName: "Alice", Puzzle: "Onion", Answer: "onion man", Reward: "GZ"},
		},
		Assertions: []Assertion{
			{Type: AssertCounts, Active: 0, Solved: 1},
		},
	}

	result, err := Run(scenario, t.TempDir())
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "partitions")
}
