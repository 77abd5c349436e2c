package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/storepulse-lab/storepulse/internal/core/period"
)

// Write modes for the summary sink.
// append never inspects existing rows — overlapping windows re-emitted by
// later runs accumulate as duplicates for most-recent-wins consumers.
// replace rewrites the natural key (period_type, period_start, store_id)
// transactionally instead.
const (
	WriteModeAppend  = "append"
	WriteModeReplace = "replace"
)

// Config is the full application configuration, constructed once by the
// caller and validated before any pipeline stage runs. There is no
// import-time connection setup anywhere in this codebase.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Source   SourceConfig   `koanf:"source"`
	Sink     SinkConfig     `koanf:"sink"`
	Job      JobConfig      `koanf:"job"`
}

type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// SourceConfig names the upstream transaction dataset. The table is owned
// by the transactional store; this job only reads it.
type SourceConfig struct {
	Table string `koanf:"table"`
}

type SinkConfig struct {
	Table     string `koanf:"table"`
	WriteMode string `koanf:"write_mode"` // append | replace
}

type JobConfig struct {
	DefaultPeriod string `koanf:"default_period"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	if strings.TrimSpace(c.Source.Table) == "" {
		return fmt.Errorf("source.table is required")
	}
	if strings.TrimSpace(c.Sink.Table) == "" {
		return fmt.Errorf("sink.table is required")
	}
	if c.Sink.WriteMode != WriteModeAppend && c.Sink.WriteMode != WriteModeReplace {
		return fmt.Errorf("invalid sink.write_mode %q (must be append or replace)", c.Sink.WriteMode)
	}

	if !period.Valid(c.Job.DefaultPeriod) {
		return fmt.Errorf("invalid job.default_period %q (must be daily, weekly, monthly or yearly)", c.Job.DefaultPeriod)
	}

	return nil
}

// Load parses config from defaults + optional file + env, then validates.
// Env vars use the STOREPULSE_ prefix with __ as the key separator,
// e.g. STOREPULSE_DATABASE__DSN, STOREPULSE_SINK__WRITE_MODE.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"database.dsn":            "",
		"database.max_open_conns": 10,
		"database.max_idle_conns": 5,
		"database.auto_migrate":   true,
		"source.table":            "orders",
		"sink.table":              "summary_stats_by_period",
		"sink.write_mode":         WriteModeAppend,
		"job.default_period":      string(period.Monthly),
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("STOREPULSE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "STOREPULSE_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
