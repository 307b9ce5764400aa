// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/macroimport"
	"github.com/woozymasta/macroimport/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func missingEnv(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yaml", "")

	cfg, err := config.LoadConfig(path, missingEnv(t))
	require.NoError(t, err)

	assert.Empty(t, cfg.Include)
	assert.Empty(t, cfg.Exclude)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.Write)
	assert.Equal(t, config.DefaultJobs, cfg.Jobs)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Log.Format)

	size, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(4<<20), size)
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yaml", `
include:
  - ^src/
exclude:
  - \.stories\.tsx$
debug: true
jobs: 2
format: yaml
metrics_file: /tmp/macroimport.prom
log:
  level: debug
  format: json
`)

	cfg, err := config.LoadConfig(path, missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"^src/"}, cfg.Include)
	assert.Equal(t, []string{`\.stories\.tsx$`}, cfg.Exclude)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "/tmp/macroimport.prom", cfg.MetricsFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("MACROIMPORT_JOBS", "8")
	t.Setenv("MACROIMPORT_LOG_LEVEL", "warn")

	path := writeFile(t, t.TempDir(), "config.yaml", "jobs: 2\n")

	cfg, err := config.LoadConfig(path, missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	// Register cleanup, then unset so the env file can provide the value.
	t.Setenv("MACROIMPORT_WRITE", "")
	require.NoError(t, os.Unsetenv("MACROIMPORT_WRITE"))

	dir := t.TempDir()
	envFile := writeFile(t, dir, "test.env", "MACROIMPORT_WRITE=true\n")
	path := writeFile(t, dir, "config.yaml", "")

	cfg, err := config.LoadConfig(path, envFile)
	require.NoError(t, err)

	assert.True(t, cfg.Write)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), missingEnv(t))
	require.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path := writeFile(t, dir, "format.yaml", "log:\n  format: xml\n")
	_, err := config.LoadConfig(path, missingEnv(t))
	require.ErrorIs(t, err, config.ErrInvalidLogFormat)

	path = writeFile(t, dir, "jobs.yaml", "jobs: -1\n")
	_, err = config.LoadConfig(path, missingEnv(t))
	require.ErrorIs(t, err, config.ErrInvalidJobs)

	path = writeFile(t, dir, "output.yaml", "format: html\n")
	_, err = config.LoadConfig(path, missingEnv(t))
	require.ErrorIs(t, err, config.ErrInvalidFormat)

	path = writeFile(t, dir, "size.yaml", "max_file_size: lots\n")
	_, err = config.LoadConfig(path, missingEnv(t))
	require.ErrorIs(t, err, config.ErrInvalidFileSize)
}

func TestConfig_MaxFileSizeBytes(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{MaxFileSize: "512KB"}
	size, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(512000), size)

	cfg.MaxFileSize = ""
	size, err = cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	includeFile := writeFile(t, dir, "include.txt", "# sources\n^app/\n")
	excludeFile := writeFile(t, dir, "exclude.txt", "\\.test\\.tsx?$\n\n/__mocks__/\n")

	cfg := &config.Config{
		Include:      []string{"^src/"},
		Exclude:      []string{`\.stories\.tsx$`},
		IncludeFiles: []string{includeFile},
		ExcludeFiles: []string{excludeFile},
		Debug:        true,
	}

	opts, err := cfg.Options(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"^src/", "^app/"}, opts.Include)
	assert.Equal(t, []string{`\.stories\.tsx$`, `\.test\.tsx?$`, "/__mocks__/"}, opts.Exclude)
	assert.True(t, opts.Debug)
}

func TestConfig_OptionsCompilesIntoSharedCache(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Include: []string{"^src/"},
		Exclude: []string{`\.stories\.tsx$`, "^src/"},
	}

	patterns := macroimport.NewPatternCache()

	opts, err := cfg.Options(patterns)
	require.NoError(t, err)
	assert.Equal(t, int64(2), patterns.Compiles())

	tr := macroimport.NewTransformer(macroimport.TransformerOptions{Patterns: patterns})
	_, err = tr.Classify("src/Button.tsx", opts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tr.Stats().Compiles)
}

func TestConfig_OptionsFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	optionsFile := writeFile(t, dir, "options.yaml", "include:\n  - ^packages/\nexclude:\n  - /fixtures/\ndebug: true\n")

	cfg := &config.Config{Include: []string{"^src/"}, OptionsFiles: []string{optionsFile}}

	opts, err := cfg.Options(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"^src/", "^packages/"}, opts.Include)
	assert.Equal(t, []string{"/fixtures/"}, opts.Exclude)
	assert.True(t, opts.Debug)

	bad := writeFile(t, dir, "bad.yaml", "includes: []\n")
	cfg.OptionsFiles = []string{bad}

	_, err = cfg.Options(nil)
	require.Error(t, err)
}

func TestConfig_OptionsInvalidPattern(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Exclude: []string{"(unclosed"}}

	_, err := cfg.Options(nil)
	require.ErrorIs(t, err, macroimport.ErrInvalidPattern)
}

func TestConfig_OptionsMissingPatternFile(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{IncludeFiles: []string{filepath.Join(t.TempDir(), "missing.txt")}}

	_, err := cfg.Options(nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}
