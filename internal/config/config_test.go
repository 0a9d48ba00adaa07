package config

import (
	"runtime"
	"testing"

	"edustat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "TEMPLATE_DIR", "OUTPUT_DIR", "STATS_WORKERS", "OUTPUT_FORMAT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "outputs", cfg.Paths.TemplateDir)
	assert.Equal(t, "outputs", cfg.Paths.OutputDir)
	assert.Equal(t, runtime.NumCPU(), cfg.Stats.Workers)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TEMPLATE_DIR", "/srv/templates")
	t.Setenv("STATS_WORKERS", "2")
	t.Setenv("OUTPUT_FORMAT", "YAML")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/srv/templates", cfg.Paths.TemplateDir)
	assert.Equal(t, 2, cfg.Stats.Workers)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("workers", func(t *testing.T) {
		t.Setenv("STATS_WORKERS", "0")
		_, err := Load()
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("format", func(t *testing.T) {
		t.Setenv("STATS_WORKERS", "")
		t.Setenv("OUTPUT_FORMAT", "xml")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
	})
}
