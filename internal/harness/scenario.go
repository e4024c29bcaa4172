package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one end-to-end test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Steps is the ordered sequence of operations to execute.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final registry state after all steps ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operation of a scenario.
type Step struct {
	// Op is one of "register", "guess", "list", "delete".
	Op string `yaml:"op"`

	// AuthorID and AuthorName identify the acting user.
	AuthorID   string `yaml:"author_id"`
	AuthorName string `yaml:"author_name"`

	// Puzzle names the target for register and delete.
	Puzzle string `yaml:"puzzle,omitempty"`

	// Answer, Items, and Reward feed register.
	Answer string `yaml:"answer,omitempty"`
	Items  string `yaml:"items,omitempty"`
	Reward string `yaml:"reward,omitempty"`

	// Text is the guess text.
	Text string `yaml:"text,omitempty"`

	// Expect validates the step's outcome. Optional; without it the step
	// only has to not fail structurally.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected result of one step.
type Expect struct {
	// Outcome is the expected success outcome: registered, updated,
	// solved, no_match, ambiguous, self_solve, or deleted.
	Outcome string `yaml:"outcome,omitempty"`

	// Error is the expected engine error code (VALIDATION,
	// DUPLICATE_SOLUTION, ...). Mutually exclusive with Outcome.
	Error string `yaml:"error,omitempty"`

	// Reward is the expected revealed reward lines, checked exactly when
	// non-empty.
	Reward []string `yaml:"reward,omitempty"`

	// Unknown is the expected unresolved item names for an ambiguous
	// guess, checked exactly when non-empty.
	Unknown []string `yaml:"unknown,omitempty"`
}

// Assertion validates the final state after the scenario ran.
type Assertion struct {
	// Type is "solve_status" or "counts".
	Type string `yaml:"type"`

	// AuthorID, Puzzle, and Status feed solve_status: the author's
	// listing must show the puzzle with exactly this status.
	AuthorID string `yaml:"author_id,omitempty"`
	Puzzle   string `yaml:"puzzle,omitempty"`
	Status   string `yaml:"status,omitempty"`

	// Active and Solved feed counts: the registry partition sizes.
	Active int `yaml:"active,omitempty"`
	Solved int `yaml:"solved,omitempty"`
}

// Assertion type constants.
const (
	AssertSolveStatus = "solve_status"
	AssertCounts      = "counts"
)

// Step op constants.
const (
	OpRegister = "register"
	OpGuess    = "guess"
	OpList     = "list"
	OpDelete   = "delete"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertSolveStatus:
			if a.AuthorID == "" || a.Puzzle == "" || a.Status == "" {
				return fmt.Errorf("assertions[%d]: solve_status needs author_id, puzzle, and status", i)
			}
		case AssertCounts:
			if a.Active < 0 || a.Solved < 0 {
				return fmt.Errorf("assertions[%d]: counts must be non-negative", i)
			}
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
		}
	}
	return nil
}

func validateStep(index int, step *Step) error {
	if step.AuthorID == "" || step.AuthorName == "" {
		return fmt.Errorf("steps[%d]: author_id and author_name are required", index)
	}

	switch step.Op {
	case OpRegister:
		if step.Puzzle == "" {
			return fmt.Errorf("steps[%d]: register needs a puzzle name", index)
		}
	case OpGuess:
		if step.Text == "" {
			return fmt.Errorf("steps[%d]: guess needs text", index)
		}
	case OpDelete:
		if step.Puzzle == "" {
			return fmt.Errorf("steps[%d]: delete needs a puzzle name", index)
		}
	case OpList:
		// author fields already checked
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	if step.Expect != nil {
		if (step.Expect.Outcome == "") == (step.Expect.Error == "") {
			return fmt.Errorf("steps[%d].expect: exactly one of outcome and error is required", index)
		}
	}
	return nil
}
