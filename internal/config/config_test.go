package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8781", cfg.App.HTTPAddr)
	assert.Equal(t, 210, cfg.Fetch.PaddingDays)
	assert.Equal(t, 4, cfg.Fetch.Workers)
	assert.Equal(t, 90, cfg.Chart.DefaultDays)
	assert.Equal(t, 3600, cfg.Catalog.TTLSeconds)
}

func TestLoadOverridesAndValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
app:
  http_addr: ":9000"
  log_level: debug
fetch:
  timeout_seconds: 10
  workers: 9
chart:
  default_days: 30
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.App.HTTPAddr)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 10, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 4, cfg.Fetch.Workers, "worker count clamps to the four chart slots")
	assert.Equal(t, 30, cfg.Chart.DefaultDays)
}

func TestLoadRejectsBadLookback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart:\n  default_days: 45\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_days")
}

func TestLoadRejectsShortPadding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  padding_days: 100\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padding_days")
}

func TestValidLookback(t *testing.T) {
	for _, d := range LookbackChoices {
		assert.True(t, ValidLookback(d))
	}
	assert.False(t, ValidLookback(0))
	assert.False(t, ValidLookback(45))
}
