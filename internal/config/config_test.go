package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("ENVPAT_AUDIT_DB")
	os.Unsetenv("ENVPAT_THREAD_LIMIT")
	os.Unsetenv("ENVPAT_FIXTURE_GLOB")
	os.Unsetenv("ENVPAT_DEBUG")

	cfg := Load()

	assert.Equal(t, "", cfg.AuditDBPath)
	assert.Equal(t, 1_000_000, cfg.ThreadLimit)
	assert.Equal(t, "demo/fixtures/**/*.json", cfg.FixtureGlob)
	assert.False(t, cfg.Debug)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("ENVPAT_AUDIT_DB", "/tmp/envpat-audit.db")
	t.Setenv("ENVPAT_THREAD_LIMIT", "2500")
	t.Setenv("ENVPAT_FIXTURE_GLOB", "fixtures/**/*.json")
	t.Setenv("ENVPAT_DEBUG", "true")

	cfg := Load()

	assert.Equal(t, "/tmp/envpat-audit.db", cfg.AuditDBPath)
	assert.Equal(t, 2500, cfg.ThreadLimit)
	assert.Equal(t, "fixtures/**/*.json", cfg.FixtureGlob)
	assert.True(t, cfg.Debug)
}

func TestLoadIgnoresInvalidThreadLimit(t *testing.T) {
	t.Setenv("ENVPAT_THREAD_LIMIT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 1_000_000, cfg.ThreadLimit)
}
