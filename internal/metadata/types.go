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

// Package metadata types define the statistics recorded while a transcript is
// scanned.
package metadata

import (
	"time"
)

// ScanStats counts what the analyzer saw while reading a transcript.
type ScanStats struct {
	LinesRead   int `json:"lines_read"`
	Matched     int `json:"matched"`
	Unmatched   int `json:"unmatched"`
	Regressions int `json:"regressions"`
}

// ScanSummary is the record produced at the end of a scan. Timing fields are
// kept out of the JSON encoding so repeated runs over the same transcript
// produce identical output.
type ScanSummary struct {
	ToolVersion string `json:"tool_version"`
	Source      string `json:"source"`
	ScanStats

	StartedAt   time.Time     `json:"-"`
	CompletedAt time.Time     `json:"-"`
	Duration    time.Duration `json:"-"`
}
