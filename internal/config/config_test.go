package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Thresholds.Skip)
	assert.Equal(t, 40.0, cfg.Thresholds.Version)
	assert.Equal(t, "Tekst", cfg.Corpus.ProjectTextFolder)
	assert.Contains(t, cfg.Corpus.SkipFolders, "Sortownia")
	assert.False(t, cfg.Similarity.AutoJunk)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notesort.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  version: 50\nsimilarity:\n  autojunk: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.Thresholds.Version)
	assert.Equal(t, 100.0, cfg.Thresholds.Skip)
	assert.True(t, cfg.Similarity.AutoJunk)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvSourceDir, "/in")
	t.Setenv(EnvFallbackDir, "/out")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAutoJunk, "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/in", cfg.Paths.SourceDir)
	assert.Equal(t, "/out", cfg.Paths.FallbackDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Similarity.AutoJunk)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Paths.LibraryRoot = "/lib"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/lib", got.Paths.LibraryRoot)
}

func TestResolvedLibraryRoot(t *testing.T) {
	cfg := defaultConfig()
	src := filepath.Join(t.TempDir(), "Teksty", "inbox")
	assert.Equal(t, filepath.Dir(filepath.Dir(src)), cfg.ResolvedLibraryRoot(src))

	cfg.Paths.LibraryRoot = "/lib"
	assert.Equal(t, "/lib", cfg.ResolvedLibraryRoot(src))
}
