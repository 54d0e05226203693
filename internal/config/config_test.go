// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "tiff", cfg.Defaults.Mode)
	assert.Empty(t, cfg.Defaults.Format)
	assert.False(t, cfg.PDF.Preflight)
	assert.Equal(t, []string{"pdf-report"}, cfg.ListProfiles())
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
defaults:
  mode: pdf
  format: csv
  recursive: true
pdf:
  preflight: true
profiles:
  archive:
    mode: tiff
    output: tiff_metadata.xlsx
    recursive: true
    description: Nightly TIFF sweep
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf", cfg.Defaults.Mode)
	assert.Equal(t, "csv", cfg.Defaults.Format)
	assert.True(t, cfg.Defaults.Recursive)
	assert.True(t, cfg.PDF.Preflight)
	assert.Equal(t, []string{"archive", "pdf-report"}, cfg.ListProfiles())

	profile := cfg.GetProfile("archive")
	require.NotNil(t, profile)
	assert.Equal(t, "tiff_metadata.xlsx", profile.Output)
	assert.Nil(t, cfg.GetProfile("missing"))
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := map[string]string{
		"bad mode":           "defaults:\n  mode: jpeg\n",
		"bad format":         "defaults:\n  format: docx\n",
		"bad profile mode":   "profiles:\n  x:\n    mode: png\n",
		"bad profile format": "profiles:\n  x:\n    format: html\n",
		"bad output path":    "defaults:\n  output: \"a\\0b.csv\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.ErrorContains(t, err, "configuration validation failed")
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.ErrorContains(t, err, "error reading config file")

	_, err = LoadConfig(writeConfig(t, "defaults: [unclosed"))
	assert.ErrorContains(t, err, "error parsing config file")

	_, err = LoadConfig(writeConfig(t, ":::invalid yaml:::"))
	assert.ErrorContains(t, err, "error parsing config file")
	assert.ErrorContains(t, err, "top level must be a mapping")

	_, err = LoadConfig(writeConfig(t, "- tiff\n- pdf\n"))
	assert.ErrorContains(t, err, "top level must be a mapping")
}

func TestLoadConfig_EmptyFileKeepsDefaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "tiff", config.Defaults.Mode)
	assert.Contains(t, config.Profiles, "pdf-report")
}

func TestFindConfigFile_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TIFFPDF_META_CONFIG_DIR", filepath.Join(dir, "user"))

	assert.Empty(t, FindConfigFile())

	require.NoError(t, os.WriteFile(".tiffpdf-meta.yaml", []byte("{}"), 0600))
	assert.Equal(t, ".tiffpdf-meta.yaml", FindConfigFile())

	require.NoError(t, os.WriteFile("tiffpdf-meta.yaml", []byte("{}"), 0600))
	assert.Equal(t, "tiffpdf-meta.yaml", FindConfigFile())
}

func TestFindConfigFile_UserDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	userDir := filepath.Join(dir, "user")
	t.Setenv("TIFFPDF_META_CONFIG_DIR", userDir)

	require.NoError(t, os.MkdirAll(userDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("{}"), 0600))
	assert.Equal(t, filepath.Join(userDir, "config.yaml"), FindConfigFile())
}
