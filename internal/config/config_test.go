package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqwell/seqwell/internal/search"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, search.DefaultMaxRank, cfg.MaxRank)
	assert.Equal(t, search.DefaultMaxSteps, cfg.MaxSteps)
	assert.Empty(t, cfg.History)
	assert.Equal(t, search.DefaultAlgorithmNames(), cfg.Algorithms)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
max_rank: 2
history: /tmp/seqwell.db
algorithms:
  - catalog
  - arithmetic
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxRank)
	assert.Equal(t, search.DefaultMaxSteps, cfg.MaxSteps) // untouched
	assert.Equal(t, "/tmp/seqwell.db", cfg.History)
	assert.Equal(t, []string{"catalog", "arithmetic"}, cfg.Algorithms)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownAlgorithm(t *testing.T) {
	path := writeConfig(t, "algorithms: [catalog, bogus]")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown algorithm "bogus"`)
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeConfig(t, "max_depth: 3")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_Budgets(t *testing.T) {
	cfg := Default()
	cfg.MaxRank = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxSteps = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Algorithms = nil
	assert.Error(t, cfg.Validate())
}

func TestBuildAlgorithms(t *testing.T) {
	cfg := Default()
	algorithms, err := cfg.BuildAlgorithms()
	require.NoError(t, err)
	require.Len(t, algorithms, len(cfg.Algorithms))
	for i, a := range algorithms {
		assert.Equal(t, cfg.Algorithms[i], a.Name())
	}
}
