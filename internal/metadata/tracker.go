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

// Package metadata tracks statistics about a transcript scan: how many lines
// were read, how many carried a progress record and how many were noise.
//
// The summary is logged for troubleshooting and attached to the NDJSON report
// so downstream tooling can tell a thin transcript from a complete one.
package metadata

import (
	"time"
)

// Tracker collects statistics during a scan. Create one per scan and call its
// methods as lines are consumed.
type Tracker struct {
	startTime time.Time
	now       func() time.Time
	stats     ScanStats
}

// New creates a tracker and records the current time as the scan start.
func New() *Tracker {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		startTime: now(),
		now:       now,
	}
}

// LineRead records that one transcript line was consumed.
func (t *Tracker) LineRead() {
	t.stats.LinesRead++
}

// Matched records a line that carried a progress record.
func (t *Tracker) Matched() {
	t.stats.Matched++
}

// Unmatched records a line that did not carry a progress record.
func (t *Tracker) Unmatched() {
	t.stats.Unmatched++
}

// Regression records a progress record that reported less than its worker's
// previous maximum.
func (t *Tracker) Regression() {
	t.stats.Regressions++
}

// Stats returns the counters gathered so far.
func (t *Tracker) Stats() ScanStats {
	return t.stats
}

// GenerateSummary closes the scan and returns its summary.
func (t *Tracker) GenerateSummary(toolVersion, source string) *ScanSummary {
	completedAt := t.now()

	return &ScanSummary{
		ToolVersion: toolVersion,
		Source:      source,
		ScanStats:   t.stats,
		StartedAt:   t.startTime,
		CompletedAt: completedAt,
		Duration:    completedAt.Sub(t.startTime),
	}
}
