package cli

import (
	"log/slog"

	"github.com/mombot/mom/internal/config"
	"github.com/mombot/mom/internal/engine"
	"github.com/mombot/mom/internal/items"
	"github.com/mombot/mom/internal/registry"
	"github.com/mombot/mom/internal/store"
	"github.com/mombot/mom/internal/vault"
)

// environment bundles everything a command needs to run the engine.
type environment struct {
	Config config.Config
	Engine *engine.Engine

	audit *store.Store
}

// Close releases the environment's resources.
func (env *environment) Close() {
	if env.audit != nil {
		if err := env.audit.Close(); err != nil {
			slog.Error("closing audit store", "error", err)
		}
	}
}

// openEnvironment loads config and secrets, then wires dictionary,
// registry, audit store, and engine. Every failure is a command error:
// nothing domain-level has happened yet.
func openEnvironment(opts *RootOptions) (*environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}

	secrets, err := config.LoadSecrets(opts.EnvFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading secrets", err)
	}

	obscurer, err := vault.NewNameObscurer(secrets.SystemKey)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "initializing name obscurer", err)
	}

	dict, err := items.LoadDictionary(cfg.ItemsPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading item dictionary", err)
	}
	slog.Debug("dictionary loaded", "path", cfg.ItemsPath, "items", dict.Len())

	reg, err := registry.Open(cfg.SnapshotPath, obscurer)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening puzzle registry", err)
	}
	active, solved := reg.Counts()
	slog.Debug("registry opened", "path", cfg.SnapshotPath, "active", active, "solved", solved)

	env := &environment{Config: cfg}

	engineOpts := []engine.Option{
		engine.WithDelimiter(cfg.Delimiter),
		engine.WithRewardLineLimit(cfg.RewardLineLimit),
	}
	if cfg.AuditDBPath != "" {
		audit, err := store.Open(cfg.AuditDBPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "opening audit store", err)
		}
		env.audit = audit
		engineOpts = append(engineOpts, engine.WithAudit(audit))
	}

	env.Engine = engine.New(reg, dict, engineOpts...)
	return env, nil
}
