package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mombot/mom/internal/config"
	"github.com/mombot/mom/internal/puzzle"
	"github.com/mombot/mom/internal/registry"
	"github.com/mombot/mom/internal/vault"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	Input string
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Import a legacy solutions store into a fresh snapshot",
		Long: `Import a legacy TinyDB-style old_solutions.json into the configured
snapshot path. The target registry must be empty. Records with a first
solver land in the solved partition, the rest stay active.

Example:
  mom migrate --input old_solutions.json --config mom.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "old_solutions.json", "path of the legacy store to import")

	return cmd
}

// legacyRecord mirrors one table row of the old store. Author and solver
// ids were numeric there; they become opaque strings here.
type legacyRecord struct {
	Name                 string      `json:"name"`
	AuthorID             json.Number `json:"author_id"`
	AuthorName           string      `json:"author_name"`
	HashedSolutionString string      `json:"hashed_solution_string"`
	HashedSolutionItems  string      `json:"hashed_solution_items"`
	SecretString         string      `json:"secret_string"`
	SecretItems          string      `json:"secret_items"`
	FirstSolver          *string     `json:"first_solver"`
	FirstSolverID        json.Number `json:"first_solver_id"`
	FirstSolveTime       *string     `json:"first_solve_time"`
}

type legacyStore struct {
	Default map[string]legacyRecord `json:"_default"`
}

func runMigrate(opts *MigrateOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading config", err)
	}
	secrets, err := config.LoadSecrets(opts.EnvFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading secrets", err)
	}
	obscurer, err := vault.NewNameObscurer(secrets.SystemKey)
	if err != nil {
		return WrapExitError(ExitCommandError, "initializing name obscurer", err)
	}

	active, solved, err := loadLegacyStore(opts.Input, obscurer)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading legacy store", err)
	}

	reg, err := registry.Open(cfg.SnapshotPath, obscurer)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening target registry", err)
	}
	if err := reg.Import(active, solved); err != nil {
		return WrapExitError(ExitCommandError, "importing into registry", err)
	}

	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(map[string]any{
			"active":   len(active),
			"solved":   len(solved),
			"snapshot": cfg.SnapshotPath,
		})
	}
	return f.Success(fmt.Sprintf("Imported %d active and %d solved puzzles into %s.", len(active), len(solved), cfg.SnapshotPath))
}

// loadLegacyStore parses the old store and partitions its records by the
// presence of a first solver.
func loadLegacyStore(path string, obscurer *vault.NameObscurer) (active, solved []*puzzle.Puzzle, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var store legacyStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(store.Default) == 0 {
		return nil, nil, fmt.Errorf("%s holds no records", path)
	}

	// TinyDB keys are stringified insertion counters; replay in order.
	keys := make([]string, 0, len(store.Default))
	for k := range store.Default {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		rec := store.Default[k]
		p, err := convertLegacyRecord(rec, obscurer)
		if err != nil {
			return nil, nil, fmt.Errorf("record %s: %w", k, err)
		}
		if p.Solve != nil {
			solved = append(solved, p)
		} else {
			active = append(active, p)
		}
	}
	return active, solved, nil
}

func convertLegacyRecord(rec legacyRecord, obscurer *vault.NameObscurer) (*puzzle.Puzzle, error) {
	name, err := obscurer.Unobscure(rec.Name)
	if err != nil {
		return nil, fmt.Errorf("unobscuring name: %w", err)
	}
	if rec.HashedSolutionString == "" || rec.HashedSolutionItems == "" {
		return nil, fmt.Errorf("puzzle %q: missing fingerprint", name)
	}

	p := &puzzle.Puzzle{
		Name:              name,
		AuthorID:          rec.AuthorID.String(),
		AuthorName:        rec.AuthorName,
		AnswerFingerprint: rec.HashedSolutionString,
		ItemFingerprint:   rec.HashedSolutionItems,
		SecretForAnswer:   rec.SecretString,
		SecretForItems:    rec.SecretItems,
	}

	if rec.FirstSolver != nil && *rec.FirstSolver != "" {
		if rec.FirstSolveTime == nil {
			return nil, fmt.Errorf("puzzle %q: solver without solve time", name)
		}
		at, err := parseLegacyTime(*rec.FirstSolveTime)
		if err != nil {
			return nil, fmt.Errorf("puzzle %q: %w", name, err)
		}
		p.Solve = &puzzle.SolveRecord{
			SolverName: *rec.FirstSolver,
			SolverID:   rec.FirstSolverID.String(),
			SolvedAt:   at,
		}
	}
	return p, nil
}

// parseLegacyTime accepts RFC 3339 or the zone-less isoformat the old
// store wrote; zone-less times are taken as UTC.
func parseLegacyTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing solve time %q: %w", s, err)
	}
	return t.UTC(), nil
}
