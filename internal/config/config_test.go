package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/EDI-parser/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	config := Default()

	assert.Equal(t, "./input", config.InputDir)
	assert.Equal(t, "./output", config.OutputDir)
	assert.Equal(t, []string{"*.edi", "*.edifact", "*.txt"}, config.FilePatterns)
	assert.Equal(t, "xml", config.OutputFormat)
	assert.Equal(t, 4, config.MaxConcurrency)
	assert.True(t, config.ShouldContinueOnError())
	assert.True(t, config.ShouldArchive())
	assert.Equal(t, render.DefaultTheme(), config.Theme)
}

func TestLoadMainConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_dir: /data/in
output_format: json
max_concurrency: 8
continue_on_error: false
archive_on_success: false
archive_timestamp_subdirs: true
log_level: debug
theme:
  highlight: "#FFFFFF"
`), 0644))

	config, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", config.InputDir)
	assert.Equal(t, "./output", config.OutputDir)
	assert.Equal(t, "json", config.OutputFormat)
	assert.Equal(t, 8, config.MaxConcurrency)
	assert.False(t, config.ShouldContinueOnError())
	assert.False(t, config.ShouldArchive())
	assert.True(t, config.ArchiveTimestampSubdirs)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "#FFFFFF", config.Theme.Highlight)
	assert.Equal(t, render.DefaultTheme().Error, config.Theme.Error)
}

func TestLoadMainConfig_MissingFile(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		_, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("default path", func(t *testing.T) {
		t.Chdir(t.TempDir())

		config, err := LoadMainConfig(DefaultConfigFile)
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})
}

func TestLoadMainConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "input_dir: [", "failed to parse config file"},
		{"bad format", "output_format: pdf", "unknown output format"},
		{"bad log level", "log_level: loud", "unknown log_level"},
		{"bad log format", "log_format: xml", "unknown log_format"},
		{"negative retention", "archive_retention_days: -1", "archive_retention_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadMainConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	config := Default()
	config.InputDir = filepath.Join(root, "in")
	config.OutputDir = filepath.Join(root, "out")
	config.InputArchiveDir = filepath.Join(root, "archive", "in")
	config.OutputArchiveDir = filepath.Join(root, "archive", "out")

	require.NoError(t, config.EnsureDirectories())

	for _, dir := range []string{config.InputDir, config.OutputDir, config.InputArchiveDir, config.OutputArchiveDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
