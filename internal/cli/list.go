package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	AuthorID string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your puzzles and their solve status",
		Long: `List the puzzles you registered, active and solved, with their solve
status. Fingerprints and rewards are never shown.

Example:
  mom list --author-id 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AuthorID, "author-id", "", "author's chat user id (required)")
	_ = cmd.MarkFlagRequired("author-id")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	env, err := openEnvironment(opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	f := opts.formatter(cmd)
	entries, err := env.Engine.HandleList(cmd.Context(), opts.AuthorID)
	if err != nil {
		return reportEngineError(f, err)
	}

	if opts.Format == "json" {
		return f.Success(entries)
	}

	if len(entries) == 0 {
		return f.Success("You have no registered puzzles.")
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s\n", e.Name, e.SolveStatus)
	}
	return f.Success(strings.TrimRight(b.String(), "\n"))
}
