package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mombot/mom/internal/items"
)

// ImportItemsOptions holds flags for the import-items command.
type ImportItemsOptions struct {
	*RootOptions
	Output string
}

// NewImportItemsCommand creates the import-items command.
func NewImportItemsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportItemsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import-items <mapping.json>",
		Short: "Build an item dictionary from a wiki item dump",
		Long: `Convert the OSRS wiki item mapping dump into the items.json dictionary
used to canonicalize item-list answers. Duplicate names keep the last id
in the dump.

Example:
  mom import-items mapping.json -o items.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportItems(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "items.json", "path of the dictionary file to write")

	return cmd
}

func runImportItems(opts *ImportItemsOptions, mappingPath string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	src, err := os.Open(mappingPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening mapping file", err)
	}
	defer src.Close()

	ids, err := items.ParseWikiMapping(src)
	if err != nil {
		return WrapExitError(ExitCommandError, "parsing mapping file", err)
	}

	if err := items.WriteItemsFile(opts.Output, ids); err != nil {
		return WrapExitError(ExitCommandError, "writing dictionary", err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{"items": len(ids), "output": opts.Output})
	}
	return f.Success(fmt.Sprintf("Wrote %d items to %s.", len(ids), opts.Output))
}
