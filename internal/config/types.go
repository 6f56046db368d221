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

// Package config types define the configuration structures used throughout
// validation-state. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import (
	"github.com/sirseerhq/validation-state/internal/output"
	"github.com/sirseerhq/validation-state/internal/progress"
)

// Output formats accepted by OutputConfig.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the complete configuration for validation-state.
type Config struct {
	Parser   ParserConfig   `yaml:"parser"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
}

// ParserConfig controls how progress lines are recognized. Separator is the
// regular expression expected between the certificate range and the path
// counts. Relaxed accepts any filler there and takes precedence over
// Separator.
type ParserConfig struct {
	Separator string `yaml:"separator"`
	Relaxed   bool   `yaml:"relaxed"`
}

// AnalysisConfig controls aggregation. Strict reports records whose end ID
// is lower than what the worker already reported.
type AnalysisConfig struct {
	Strict bool `yaml:"strict"`
}

// OutputConfig selects the report format and the flag name printed in the
// resume instruction.
type OutputConfig struct {
	Format     string `yaml:"format"`
	ResumeFlag string `yaml:"resume_flag"`
}

// DefaultConfig returns a Config matching the progress lines printed by the
// validation job and its --start_with_certid flag.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Separator: progress.DefaultSeparator,
		},
		Output: OutputConfig{
			Format:     FormatText,
			ResumeFlag: output.DefaultResumeFlag,
		},
	}
}

// EffectiveSeparator returns the separator the parser should be built with.
func (p ParserConfig) EffectiveSeparator() string {
	if p.Relaxed {
		return progress.RelaxedSeparator
	}
	if p.Separator == "" {
		return progress.DefaultSeparator
	}
	return p.Separator
}
