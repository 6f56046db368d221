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

package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sirseerhq/validation-state/internal/fserror"
	"github.com/sirseerhq/validation-state/internal/metadata"
	"github.com/sirseerhq/validation-state/internal/output"
	"github.com/sirseerhq/validation-state/internal/progress"
)

// Options configures an Analyzer. Parser and Sink are required.
type Options struct {
	Parser *progress.Parser
	Sink   output.Sink
	Logger *zap.Logger

	// Strict reports records whose end ID is below the worker's maximum.
	Strict bool

	// ToolVersion is recorded in the scan summary.
	ToolVersion string
}

// Analyzer runs a single pass over a transcript.
type Analyzer struct {
	parser    *progress.Parser
	sink      output.Sink
	logger    *zap.Logger
	inspector fserror.Inspector
	strict    bool
	version   string
}

// New creates an Analyzer. A nil Logger is replaced with a no-op logger.
func New(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		parser:    opts.Parser,
		sink:      opts.Sink,
		logger:    logger,
		inspector: fserror.NewInspector(),
		strict:    opts.Strict,
		version:   opts.ToolVersion,
	}
}

// AnalyzeFile opens path and analyzes its contents.
func (a *Analyzer) AnalyzeFile(path string) (*progress.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fserror.Wrap(a.inspector, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fserror.Wrap(a.inspector, path, err)
	}
	if info.IsDir() {
		return nil, fserror.Wrap(a.inspector, path, &fserror.DirectoryError{Path: path})
	}

	return a.Analyze(f, path)
}

// Analyze reads r to the end. source names the input in errors and in the
// scan summary.
func (a *Analyzer) Analyze(r io.Reader, source string) (*progress.Report, error) {
	tracker := metadata.New()
	workers := progress.WorkerProgress{}
	reader := bufio.NewReader(r)

	for lineNumber := 1; ; lineNumber++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fserror.Wrap(a.inspector, source, readErr)
		}
		if line == "" && readErr != nil {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		tracker.LineRead()

		if err := a.consume(lineNumber, line, workers, tracker); err != nil {
			return nil, err
		}

		if readErr != nil {
			break
		}
	}

	report, err := progress.NewReport(workers)
	if err != nil {
		stats := tracker.Stats()
		a.logger.Info("no progress records found",
			zap.String("source", source),
			zap.Int("lines_read", stats.LinesRead))
		return nil, fmt.Errorf("%q (%d lines read): %w", source, stats.LinesRead, err)
	}

	summary := tracker.GenerateSummary(a.version, source)
	a.logger.Info("scan complete",
		zap.String("source", source),
		zap.Int("lines_read", summary.LinesRead),
		zap.Int("matched", summary.Matched),
		zap.Int("unmatched", summary.Unmatched),
		zap.Int("regressions", summary.Regressions),
		zap.Int("workers", report.WorkerCount),
		zap.Int64("resume_cert_id", report.ResumeCertID),
		zap.Duration("duration", summary.Duration))

	if err := a.sink.Report(report, summary); err != nil {
		return nil, err
	}
	return report, nil
}

func (a *Analyzer) consume(lineNumber int, line string, workers progress.WorkerProgress, tracker *metadata.Tracker) error {
	rec, ok := a.parser.Parse(line)
	if !ok {
		tracker.Unmatched()
		a.logger.Debug("unmatched line", zap.Int("line", lineNumber))
		return a.sink.UnmatchedLine(lineNumber, line)
	}

	tracker.Matched()
	reg, regressed := workers.Observe(rec)
	if !regressed {
		return nil
	}

	tracker.Regression()
	a.logger.Debug("worker progress regressed",
		zap.Int("line", lineNumber),
		zap.Int("worker", reg.WorkerID),
		zap.Int64("max", reg.Max),
		zap.Int64("certs_end", reg.CertsEnd))
	if a.strict {
		return a.sink.Regression(lineNumber, reg)
	}
	return nil
}
