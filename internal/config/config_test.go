package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "NIFTY", cfg.DataSource.Symbol)
	assert.Equal(t, "bowl", cfg.DataSource.Pattern)
	assert.Equal(t, 300, cfg.DataSource.CandleLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen: ":9000"
data_source:
  symbol: BANKNIFTY
overlay:
  blend_ratio: 0.5
`), 0o644))
	t.Setenv("CHART_SYMBOL", "RELIANCE")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Listen)
	// Env wins over file.
	assert.Equal(t, "RELIANCE", cfg.DataSource.Symbol)
	assert.InDelta(t, 0.5, cfg.Overlay.BlendRatio, 1e-9)
}

func TestValidate_Bounds(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Overlay.BlendRatio = 1.5
	assert.Error(t, cfg.Validate())

	cfg.Overlay.BlendRatio = 0.65
	cfg.DataSource.CandleLimit = -1
	assert.Error(t, cfg.Validate())
}

func TestOverlayOptions_PassThrough(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Overlay.ClusterGapSeconds = 100

	opts := cfg.OverlayOptions()
	assert.Equal(t, int64(100), opts.ClusterGapSeconds)
	assert.Empty(t, opts.Palette)
}
