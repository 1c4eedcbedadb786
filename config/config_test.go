package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithNoFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Q4.Levels)
	assert.Equal(t, 128, cfg.Q4.MorselSize)
	assert.Equal(t, "direct", cfg.Q4.SearchStrategy)
	assert.Equal(t, runtime.NumCPU(), cfg.Scheduler.Workers)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("q4:\n  searchStrategy: expbackoff\n  morselSize: 32\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "expbackoff", cfg.Q4.SearchStrategy)
	assert.Equal(t, 32, cfg.Q4.MorselSize)
	assert.Equal(t, 12, cfg.Q4.Levels) // untouched default survives partial override
}

func TestLoadEnvironmentOverridesDefault(t *testing.T) {
	t.Setenv("GRAPHCORE_SCHEDULER_WORKERS", "3")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Scheduler.Workers)
}
