package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mombot/mom/internal/engine"
)

// GuessOptions holds flags for the guess command.
type GuessOptions struct {
	*RootOptions
	AuthorID   string
	AuthorName string
}

// NewGuessCommand creates the guess command.
func NewGuessCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GuessOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "guess <text>",
		Short: "Submit a guess against all active puzzles",
		Long: `Submit a guess. The text is matched as a free-text answer first; if it
parses as an item list it is also matched in canonical item-list form.

Example:
  mom guess "onion man" --author-id 7 --author-name Bob
  mom guess "rope, 2 coal, diango" --author-id 7 --author-name Bob`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuess(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuthorID, "author-id", "", "guesser's chat user id (required)")
	cmd.Flags().StringVar(&opts.AuthorName, "author-name", "", "guesser's display name (required)")
	_ = cmd.MarkFlagRequired("author-id")
	_ = cmd.MarkFlagRequired("author-name")

	return cmd
}

func runGuess(opts *GuessOptions, text string, cmd *cobra.Command) error {
	env, err := openEnvironment(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	f := opts.formatter(cmd)
	res, err := env.Engine.HandleGuess(cmd.Context(), engine.GuessRequest{
		AuthorID:   opts.AuthorID,
		AuthorName: opts.AuthorName,
		Text:       text,
	})
	if err != nil {
		return reportEngineError(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{
			"outcome":      string(res.Outcome),
			"puzzle":       res.PuzzleName,
			"reward":       res.RewardLines,
			"first_solver": res.FirstSolver,
			"unknown":      res.Unknown,
		})
	}

	switch res.Outcome {
	case engine.OutcomeSolved:
		header := fmt.Sprintf("Puzzle %q solved!", res.PuzzleName)
		if !res.FirstSolver {
			header = fmt.Sprintf("Puzzle %q already had a first solver, but your guess matches!", res.PuzzleName)
		}
		return f.Success(header + "\n" + strings.Join(res.RewardLines, "\n"))
	case engine.OutcomeSelfSolve:
		return f.Success("That matches one of your own puzzles. Authors cannot solve their own puzzles.")
	case engine.OutcomeAmbiguous:
		return f.Success("Some item names were not recognized: " + strings.Join(res.Unknown, ", "))
	default:
		return f.Success("No puzzle matches that guess.")
	}
}
