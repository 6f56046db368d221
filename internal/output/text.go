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

package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirseerhq/validation-state/internal/metadata"
	"github.com/sirseerhq/validation-state/internal/progress"
)

const (
	// DefaultResumeFlag is the job runner flag that takes the resume point.
	DefaultResumeFlag = "start_with_certid"

	// MaxListedMissing caps the per-worker missing data warnings. Workers
	// beyond the cap are summarized in one line.
	MaxListedMissing = 1000
)

// TextWriter writes the plain-text report operators read in a terminal.
type TextWriter struct {
	out        *bufio.Writer
	resumeFlag string
	count      int
}

// NewTextWriter creates a text sink writing to w. An empty resumeFlag selects
// DefaultResumeFlag.
func NewTextWriter(w io.Writer, resumeFlag string) *TextWriter {
	if resumeFlag == "" {
		resumeFlag = DefaultResumeFlag
	}
	return &TextWriter{
		out:        bufio.NewWriter(w),
		resumeFlag: resumeFlag,
	}
}

// UnmatchedLine writes a "Cannot match line" warning.
func (w *TextWriter) UnmatchedLine(_ int, line string) error {
	w.count++
	return w.printf("WARNING Cannot match line \"%s\"\n", line)
}

// Regression writes a warning naming the worker whose end ID went backwards.
func (w *TextWriter) Regression(_ int, reg progress.Regression) error {
	w.count++
	return w.printf("WARNING Worker %d regressed from %d to %d; keeping %d\n",
		reg.WorkerID, reg.Max, reg.CertsEnd, reg.Max)
}

// Report writes the worker listing followed by the result section.
func (w *TextWriter) Report(r *progress.Report, _ *metadata.ScanSummary) error {
	w.count++
	for _, ws := range r.Workers {
		if err := w.printf("%d %d\n", ws.WorkerID, ws.MaxCertsEnd); err != nil {
			return err
		}
	}

	if err := w.printf("\n##### RESULT #####\n"); err != nil {
		return err
	}
	if err := w.printf("Gathered data from workers %d - %d (count: %d)\n",
		r.WorkerIDMin, r.WorkerIDMax, r.WorkerCount); err != nil {
		return err
	}
	if err := w.printf("\tINFO Doublecheck that worker count equals the number of used workers\n"); err != nil {
		return err
	}
	listed := r.MissingWorkers(MaxListedMissing)
	for _, id := range listed {
		if err := w.printf("\tWARNING Missing data for worker %d: Result below does not incorporate state of this worker; Apply safety margin when resuming!\n", id); err != nil {
			return err
		}
	}
	if rest := r.MissingCount - len(listed); rest > 0 {
		if err := w.printf("\tWARNING Missing data for %d further workers: Result below does not incorporate state of these workers; Apply safety margin when resuming!\n", rest); err != nil {
			return err
		}
	}
	if err := w.printf("All certificates with ids smaller than %d have been checked.\n", r.ResumeCertID); err != nil {
		return err
	}
	if err := w.printf("Resume with %s\n", r.ResumeInstruction(w.resumeFlag)); err != nil {
		return err
	}

	return w.flush()
}

// Count returns the number of warnings and reports written.
func (w *TextWriter) Count() int {
	return w.count
}

// Close flushes buffered output. The underlying writer is not closed.
func (w *TextWriter) Close() error {
	return w.flush()
}

func (w *TextWriter) printf(format string, args ...interface{}) error {
	if _, err := fmt.Fprintf(w.out, format, args...); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (w *TextWriter) flush() error {
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
