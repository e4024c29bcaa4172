package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mombot/mom/internal/config"
	"github.com/mombot/mom/internal/items"
)

// testEnvironment writes a config file, a small item dictionary, and the
// system key env var, returning the config path. Commands built against it
// share one snapshot file, so state carries across invocations like it
// does for a real installation.
func testEnvironment(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	itemsPath := filepath.Join(dir, "items.json")
	require.NoError(t, items.WriteItemsFile(itemsPath, map[string]int64{
		"Lobster":       379,
		"Coal":          453,
		"Blue partyhat": 742,
		"Rope":          954,
	}))

	cfgPath := filepath.Join(dir, "mom.yaml")
	content := fmt.Sprintf("snapshot_path: %s\nitems_path: %s\naudit_db_path: %s\n",
		filepath.Join(dir, "snapshot.json"),
		itemsPath,
		filepath.Join(dir, "audit.db"),
	)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	t.Setenv(config.EnvSystemKey, "test-system-key")
	return cfgPath
}

// execute runs a freshly built subcommand with the given args and returns
// its combined output.
func execute(t *testing.T, build func(*RootOptions) *cobra.Command, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := build(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// registerOnion registers the standard fixture puzzle.
func registerOnion(t *testing.T, opts *RootOptions) {
	t.Helper()
	_, err := execute(t, NewRegisterCommand, opts, "Onion",
		"--author-id", "42", "--author-name", "Alice",
		"--answer", "onion man", "--reward", "GZ")
	require.NoError(t, err)
}
