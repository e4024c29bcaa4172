package harness

import "fmt"

// TraceEvent records one executed step for the transcript.
type TraceEvent struct {
	Step    int      `json:"step"`
	Op      string   `json:"op"`
	Actor   string   `json:"actor"`
	Outcome string   `json:"outcome,omitempty"`
	Error   string   `json:"error,omitempty"`
	Puzzle  string   `json:"puzzle,omitempty"`
	Reward  []string `json:"reward,omitempty"`

	// FirstSolver is true for the guess that stamped the solve record.
	FirstSolver bool `json:"first_solver,omitempty"`

	Unknown []string `json:"unknown,omitempty"`
	Entries []string `json:"entries,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace records every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists expectation and assertion failures. Empty when Pass.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}
