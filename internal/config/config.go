// Package config loads the bot's YAML configuration file and its
// environment-held secrets.
//
// The file carries paths and tunables only. Secrets (the name-obscuring
// system key, the chat token) never appear in the file; they come from
// the process environment, optionally seeded from a .env file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the file omits a field.
const (
	DefaultSnapshotPath    = "saved_data.json"
	DefaultItemsPath       = "items.json"
	DefaultAuditDBPath     = "audit.db"
	DefaultRewardLineLimit = 10
	DefaultDelimiter       = ","
)

// Environment variable names for secrets.
const (
	EnvSystemKey = "MOM_SYSTEM_KEY"
	EnvChatToken = "MOM_CHAT_TOKEN"
)

// Config is the on-disk configuration.
type Config struct {
	SnapshotPath    string `yaml:"snapshot_path" validate:"required"`
	ItemsPath       string `yaml:"items_path" validate:"required"`
	AuditDBPath     string `yaml:"audit_db_path"`
	RewardLineLimit int    `yaml:"reward_line_limit" validate:"min=1,max=100"`
	Delimiter       string `yaml:"delimiter" validate:"required,max=8"`
}

// Secrets holds the environment-provided credentials.
type Secrets struct {
	// SystemKey obscures puzzle names at rest. Mandatory.
	SystemKey string

	// ChatToken authenticates the chat front end. Optional here; the
	// CLI works without one.
	ChatToken string
}

// Default returns a Config with every field at its default.
func Default() Config {
	return Config{
		SnapshotPath:    DefaultSnapshotPath,
		ItemsPath:       DefaultItemsPath,
		AuditDBPath:     DefaultAuditDBPath,
		RewardLineLimit: DefaultRewardLineLimit,
		Delimiter:       DefaultDelimiter,
	}
}

// Load reads a YAML config file, fills omitted fields with defaults, and
// validates the result. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate applies the struct-tag rules.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// LoadSecrets loads secrets from the environment. When envFile is non-empty
// it is read first (godotenv never overrides variables already set). The
// system key is mandatory.
func LoadSecrets(envFile string) (Secrets, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Secrets{}, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	s := Secrets{
		SystemKey: os.Getenv(EnvSystemKey),
		ChatToken: os.Getenv(EnvChatToken),
	}
	if s.SystemKey == "" {
		return Secrets{}, fmt.Errorf("%s is not set", EnvSystemKey)
	}
	return s, nil
}
