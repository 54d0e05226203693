// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"tiffpdf-meta/internal/paths"
	"tiffpdf-meta/internal/records"

	"gopkg.in/yaml.v3"
)

// AppName names the config directory and the project config files
const AppName = "tiffpdf-meta"

// Formats accepted in configuration. An empty format means infer it from
// the output path.
var Formats = []string{"", "text", "csv", "json", "yaml", "xlsx"}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Mode      string `yaml:"mode"`
		Format    string `yaml:"format"`
		Output    string `yaml:"output"`
		Recursive bool   `yaml:"recursive"`
		NoColor   bool   `yaml:"no_color"`
		Quiet     bool   `yaml:"quiet"`
		Debug     bool   `yaml:"debug"`
	} `yaml:"defaults"`

	// PDF extraction settings
	PDF struct {
		Preflight bool `yaml:"preflight"`
	} `yaml:"pdf"`

	// Profiles for recurring jobs
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named set of overrides for the defaults
type Profile struct {
	Mode        string `yaml:"mode"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	Recursive   bool   `yaml:"recursive"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: make(map[string]Profile),
	}
	config.Defaults.Mode = string(records.ModeTIFF)

	config.Profiles["pdf-report"] = Profile{
		Mode:        string(records.ModePDF),
		Format:      "xlsx",
		Output:      "pdf_metadata.xlsx",
		Description: "Per-page PDF metadata written to a spreadsheet",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	// An empty document keeps the defaults
	if len(root.Content) > 0 {
		if doc := root.Content[0]; doc.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("error parsing config file: line %d: top level must be a mapping", doc.Line)
		}
		if err := root.Decode(config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in the working directory,
// then in the tiffpdf-meta config directory. It returns "" when none exists.
func FindConfigFile() string {
	for _, name := range []string{AppName + ".yaml", "." + AppName + ".yaml"} {
		if fileExists(name) {
			return name
		}
	}

	if configFile := paths.GetConfigFile(); fileExists(configFile) {
		return configFile
	}
	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names in sorted order
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ValidateConfig checks modes, formats and output paths in the defaults
// and every profile
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	d := config.Defaults
	if err := validateSettings("defaults", d.Mode, d.Format, d.Output, false); err != nil {
		return err
	}
	for name, profile := range config.Profiles {
		where := fmt.Sprintf("profile '%s'", name)
		if err := validateSettings(where, profile.Mode, profile.Format, profile.Output, true); err != nil {
			return err
		}
	}
	return nil
}

func validateSettings(where, mode, format, output string, modeOptional bool) error {
	if !(modeOptional && mode == "") {
		if _, err := records.ParseMode(mode); err != nil {
			return fmt.Errorf("invalid mode in %s: %w", where, err)
		}
	}
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("invalid format '%s' in %s", format, where)
	}
	if err := paths.ValidatePath(output); err != nil {
		return fmt.Errorf("invalid output path in %s: %w", where, err)
	}
	return nil
}
