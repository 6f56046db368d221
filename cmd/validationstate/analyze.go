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

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sirseerhq/validation-state/internal/analyzer"
	"github.com/sirseerhq/validation-state/internal/config"
	vserrors "github.com/sirseerhq/validation-state/internal/errors"
	"github.com/sirseerhq/validation-state/internal/logging"
	"github.com/sirseerhq/validation-state/internal/output"
	"github.com/sirseerhq/validation-state/internal/progress"
)

// analyzeOptions holds the raw flag values. Only flags the user actually set
// override the loaded configuration.
type analyzeOptions struct {
	logfile    string
	configPath string
	separator  string
	format     string
	resumeFlag string
	relaxed    bool
	strict     bool
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "validation-state -f <logfile>",
		Short: "Find the certificate ID a crashed validation run can resume from",
		Long: `validation-state reads a captured terminal transcript of a certificate
validation run and reports up to which certificate every worker has finished,
so the run can be resumed after a crash (or simply checked while it is running).

Hint: copy the full buffer of a screen session with ctrl+a ':hardcopy -h <path>'.`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(opts, cmd.Flags(), cmd.OutOrStdout())
		},
	}

	bindFlags(cmd.Flags(), opts)
	_ = cmd.MarkFlagRequired("logfile")

	return cmd
}

// bindFlags defines the command-line flags on fs.
func bindFlags(fs *pflag.FlagSet, opts *analyzeOptions) {
	fs.StringVarP(&opts.logfile, "logfile", "f", "", "Transcript file for analysis")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default: .validation-state.yaml or ~/.validation-state/config.yaml)")
	fs.StringVar(&opts.separator, "separator", "", "Regular expression between the certificate range and \"Found\" (default: literal ...)")
	fs.BoolVar(&opts.relaxed, "relaxed", false, "Accept any text between the certificate range and \"Found\"")
	fs.BoolVar(&opts.strict, "strict", false, "Warn when a worker reports less than it already finished")
	fs.StringVar(&opts.format, "format", "", "Output format: text or json (default: text)")
	fs.StringVar(&opts.resumeFlag, "resume-flag", "", "Job runner flag printed with the resume ID (default: start_with_certid)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log scan diagnostics to stderr")
}

// applyFlags overrides cfg with the flags that were set explicitly.
func (o *analyzeOptions) applyFlags(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("separator") {
		cfg.Parser.Separator = o.separator
	}
	if fs.Changed("relaxed") {
		cfg.Parser.Relaxed = o.relaxed
	}
	if fs.Changed("strict") {
		cfg.Analysis.Strict = o.strict
	}
	if fs.Changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(o.format))
	}
	if fs.Changed("resume-flag") {
		cfg.Output.ResumeFlag = o.resumeFlag
	}
}

// runAnalyze executes the analysis and writes the report to stdout
func runAnalyze(opts *analyzeOptions, fs *pflag.FlagSet, stdout io.Writer) (err error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	opts.applyFlags(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	parser, err := progress.NewParser(cfg.Parser.EffectiveSeparator())
	if err != nil {
		return err
	}

	sink := newSink(cfg.Output, stdout)
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	a := analyzer.New(analyzer.Options{
		Parser:      parser,
		Sink:        sink,
		Logger:      logger,
		Strict:      cfg.Analysis.Strict,
		ToolVersion: version,
	})

	_, err = a.AnalyzeFile(opts.logfile)
	return err
}

// newSink creates the report sink for the configured format
func newSink(cfg config.OutputConfig, w io.Writer) output.Sink {
	if cfg.Format == config.FormatJSON {
		return output.NewJSONWriter(w, cfg.ResumeFlag)
	}
	return output.NewTextWriter(w, cfg.ResumeFlag)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, vserrors.ErrFileAccess) {
		return 2 // Transcript missing or unreadable
	}

	if errors.Is(err, vserrors.ErrNoProgressData) {
		return 3 // Nothing to compute a resume point from
	}

	return 1 // General error
}
