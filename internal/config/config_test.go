package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/geographer/internal/config"
	"github.com/njchilds90/geographer/registry"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultSettings(), cfg.Settings())
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
}

func TestLoad_Layering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  samples: 100
  max_grid: 50
log:
  level: debug
output: json
`), 0o600))
	t.Setenv("GEOGRAPHER_ENGINE__MAX_GRID", "80")
	t.Setenv("GEOGRAPHER_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("engine-samples", 0, "")
	flags.String("output", "table", "")
	flags.String("server-addr", ":9000", "")
	require.NoError(t, flags.Parse([]string{"--engine-samples=300"}))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Engine.Samples, "flag beats file")
	assert.Equal(t, 80, cfg.Engine.MaxGrid, "env beats file")
	assert.Equal(t, "yaml", cfg.Output, "unset flag leaves env value")
	assert.Equal(t, ":8080", cfg.Server.Addr, "unset flag leaves default")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEOGRAPHER_ENGINE__TOLERANCE", "0")
	t.Setenv("GEOGRAPHER_OUTPUT", "xml")
	_, err := config.Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.tolerance")
	assert.Contains(t, err.Error(), "output")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
