// Package config loads environment-driven configuration for the envpat
// CLI and its optional audit log, in the same os.Getenv-plus-defaults
// style the teacher repo's own internal/config package uses.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds envpat's run-time configuration.
type Config struct {
	// AuditDBPath is where the audit log's SQLite database lives. Empty
	// disables auditing entirely.
	AuditDBPath string

	// ThreadLimit bounds how many VM threads a single Paths call may
	// spawn before failing with pattern.LimitExceededError. It applies
	// only when auditing is disabled: audited runs go through
	// pattern.Paths with pattern.DefaultThreadLimit, and a run over that
	// limit is recorded as zero matches rather than reported as an error.
	ThreadLimit int

	// FixtureGlob selects which envelope fixture files `envpat run`
	// evaluates by default when no glob is given on the command line.
	FixtureGlob string

	// Debug enables GORM's verbose SQL logging for the audit log.
	Debug bool
}

// Load reads a .env file if one is present in the working directory
// (silently ignored if absent, matching godotenv's typical CLI usage),
// then layers environment variables over built-in defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AuditDBPath: os.Getenv("ENVPAT_AUDIT_DB"),
		ThreadLimit: 1_000_000,
		FixtureGlob: "demo/fixtures/**/*.json",
		Debug:       false,
	}

	if v := os.Getenv("ENVPAT_THREAD_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ThreadLimit = n
		}
	}
	if v := os.Getenv("ENVPAT_FIXTURE_GLOB"); v != "" {
		cfg.FixtureGlob = v
	}
	if v := os.Getenv("ENVPAT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	return cfg
}
