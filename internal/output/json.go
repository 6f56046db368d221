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
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirseerhq/validation-state/internal/metadata"
	"github.com/sirseerhq/validation-state/internal/progress"
)

// Record types emitted by JSONWriter.
const (
	TypeUnmatchedLine = "unmatched_line"
	TypeRegression    = "regression"
	TypeReport        = "report"
)

// UnmatchedLineRecord is the NDJSON form of an unmatched line warning.
type UnmatchedLineRecord struct {
	Type       string `json:"type"`
	LineNumber int    `json:"line_number"`
	Line       string `json:"line"`
}

// RegressionRecord is the NDJSON form of a regression warning.
type RegressionRecord struct {
	Type        string `json:"type"`
	LineNumber  int    `json:"line_number"`
	WorkerID    int    `json:"worker_id"`
	MaxCertsEnd int64  `json:"max_certs_end"`
	CertsEnd    int64  `json:"certs_end"`
}

// ReportRecord is the NDJSON form of the final report.
type ReportRecord struct {
	Type string `json:"type"`
	*progress.Report
	ResumeInstruction string                `json:"resume_instruction"`
	Scan              *metadata.ScanSummary `json:"scan,omitempty"`
}

// JSONWriter streams warnings and the report as NDJSON, one object per line.
type JSONWriter struct {
	encoder    *json.Encoder
	resumeFlag string
	count      int
}

// NewJSONWriter creates an NDJSON sink writing to w. An empty resumeFlag
// selects DefaultResumeFlag.
func NewJSONWriter(w io.Writer, resumeFlag string) *JSONWriter {
	if resumeFlag == "" {
		resumeFlag = DefaultResumeFlag
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONWriter{
		encoder:    enc,
		resumeFlag: resumeFlag,
	}
}

// UnmatchedLine writes an unmatched_line record.
func (w *JSONWriter) UnmatchedLine(lineNumber int, line string) error {
	return w.write(UnmatchedLineRecord{
		Type:       TypeUnmatchedLine,
		LineNumber: lineNumber,
		Line:       line,
	})
}

// Regression writes a regression record.
func (w *JSONWriter) Regression(lineNumber int, reg progress.Regression) error {
	return w.write(RegressionRecord{
		Type:        TypeRegression,
		LineNumber:  lineNumber,
		WorkerID:    reg.WorkerID,
		MaxCertsEnd: reg.Max,
		CertsEnd:    reg.CertsEnd,
	})
}

// Report writes the final report record.
func (w *JSONWriter) Report(r *progress.Report, summary *metadata.ScanSummary) error {
	return w.write(ReportRecord{
		Type:              TypeReport,
		Report:            r,
		ResumeInstruction: r.ResumeInstruction(w.resumeFlag),
		Scan:              summary,
	})
}

// Count returns the number of records written.
func (w *JSONWriter) Count() int {
	return w.count
}

// Close is a no-op; every record is written as soon as it is encoded.
func (w *JSONWriter) Close() error {
	return nil
}

func (w *JSONWriter) write(record interface{}) error {
	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.count++
	return nil
}
