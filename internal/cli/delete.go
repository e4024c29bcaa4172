package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	AuthorID string
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <puzzle-name>",
		Short: "Delete one of your active puzzles",
		Long: `Delete your active puzzle with the given name. Solved puzzles are
immutable history and cannot be deleted.

Example:
  mom delete Onion --author-id 42`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuthorID, "author-id", "", "author's chat user id (required)")
	_ = cmd.MarkFlagRequired("author-id")

	return cmd
}

func runDelete(opts *DeleteOptions, name string, cmd *cobra.Command) error {
	env, err := openEnvironment(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	f := opts.formatter(cmd)
	if err := env.Engine.HandleDelete(cmd.Context(), opts.AuthorID, name); err != nil {
		return reportEngineError(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{"deleted": name})
	}
	return f.Success(fmt.Sprintf("Puzzle %q deleted.", name))
}
