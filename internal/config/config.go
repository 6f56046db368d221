// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for validation-state with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// Flags are applied by the CLI after LoadConfig returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sirseerhq/validation-state/internal/progress"
)

// LoadConfig loads configuration from a file and the environment. If
// configPath is provided, it loads from that specific file. Otherwise, it
// searches standard locations:
//   - .validation-state.yaml (current directory)
//   - .validation-state.yml (current directory)
//   - ~/.validation-state/config.yaml
//   - ~/.validation-state/config.yml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func defaultPaths() []string {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE") // Windows
	}
	return []string{
		".validation-state.yaml",
		".validation-state.yml",
		filepath.Join(home, ".validation-state", "config.yaml"),
		filepath.Join(home, ".validation-state", "config.yml"),
	}
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if sep := os.Getenv("VALIDATION_STATE_SEPARATOR"); sep != "" {
		cfg.Parser.Separator = sep
	}
	if relaxed := os.Getenv("VALIDATION_STATE_RELAXED"); relaxed != "" {
		cfg.Parser.Relaxed = parseBool(relaxed)
	}
	if strict := os.Getenv("VALIDATION_STATE_STRICT"); strict != "" {
		cfg.Analysis.Strict = parseBool(strict)
	}
	if format := os.Getenv("VALIDATION_STATE_FORMAT"); format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(format))
	}
	if flag := os.Getenv("VALIDATION_STATE_RESUME_FLAG"); flag != "" {
		cfg.Output.ResumeFlag = flag
	}
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Validate checks if the configuration contains valid values. It rejects
// unknown output formats, empty or dash-prefixed resume flags and separators
// that do not compile.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unsupported output format %q (want %s or %s)", c.Output.Format, FormatText, FormatJSON)
	}
	if strings.TrimSpace(c.Output.ResumeFlag) == "" {
		return fmt.Errorf("resume flag cannot be empty")
	}
	if strings.HasPrefix(c.Output.ResumeFlag, "-") {
		return fmt.Errorf("resume flag %q must be given without leading dashes", c.Output.ResumeFlag)
	}
	if _, err := progress.NewParser(c.Parser.EffectiveSeparator()); err != nil {
		return err
	}
	return nil
}
