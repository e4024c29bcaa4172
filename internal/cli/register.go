package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mombot/mom/internal/engine"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	AuthorID   string
	AuthorName string
	Reward     string
	Answer     string
	Items      string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register <puzzle-name>",
		Short: "Register or update a puzzle",
		Long: `Register a new puzzle, or update your existing puzzle of the same name.

Exactly one of --answer and --items must be given. The reward text may
span multiple lines; use \n in the flag value.

Example:
  mom register Onion --author-id 42 --author-name Alice --answer "onion man" --reward GZ
  mom register Hunt --author-id 42 --author-name Alice --items "2 coal, rope, diango" --reward "well done"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuthorID, "author-id", "", "author's chat user id (required)")
	cmd.Flags().StringVar(&opts.AuthorName, "author-name", "", "author's display name (required)")
	cmd.Flags().StringVar(&opts.Reward, "reward", "", "reward text revealed on solve (required)")
	cmd.Flags().StringVar(&opts.Answer, "answer", "", "free-text answer")
	cmd.Flags().StringVar(&opts.Items, "items", "", "item list answer, e.g. \"2 coal, rope, diango\"")
	_ = cmd.MarkFlagRequired("author-id")
	_ = cmd.MarkFlagRequired("author-name")
	_ = cmd.MarkFlagRequired("reward")

	return cmd
}

func runRegister(opts *RegisterOptions, name string, cmd *cobra.Command) error {
	env, err := openEnvironment(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	f := opts.formatter(cmd)
	res, err := env.Engine.HandleRegister(cmd.Context(), engine.RegisterRequest{
		AuthorID:     opts.AuthorID,
		AuthorName:   opts.AuthorName,
		Name:         name,
		RewardText:   opts.Reward,
		AnswerText:   opts.Answer,
		ItemListText: opts.Items,
	})
	if err != nil {
		return reportEngineError(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{
			"outcome":  string(res.Outcome),
			"position": res.Position,
		})
	}
	switch res.Outcome {
	case engine.OutcomeUpdated:
		return f.Success(fmt.Sprintf("Puzzle %q updated.", name))
	default:
		return f.Success(fmt.Sprintf("Puzzle %q registered at position %d.", name, res.Position))
	}
}
