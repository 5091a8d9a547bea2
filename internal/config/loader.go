package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if WORKLOG_CONFIG is set
//  3. env (prefix WORKLOG_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("WORKLOG_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: WORKLOG_ADDR, WORKLOG_STORAGE, ...
	// Map env keys like WORKLOG_SQLITE_DSN -> sqlite_dsn (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("WORKLOG_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "worklog_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxRecentLimit < 1 {
		return fmt.Errorf("%w: max_recent_limit must be positive", ErrInvalidConfig)
	}
	switch cfg.Storage {
	case StorageMemory:
	case StorageSQLite:
		if cfg.SQLiteDSN == "" {
			return fmt.Errorf("%w: sqlite_dsn must not be empty", ErrInvalidConfig)
		}
	case StorageCSV:
		if cfg.CSVPath == "" {
			return fmt.Errorf("%w: csv_path must not be empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, cfg.Storage)
	}
	return nil
}
