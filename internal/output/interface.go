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
	"github.com/sirseerhq/validation-state/internal/metadata"
	"github.com/sirseerhq/validation-state/internal/progress"
)

// Sink receives everything the analyzer reports. Warnings arrive in
// transcript order while the file is being read; Report is called once at the
// end of a successful scan.
type Sink interface {
	// UnmatchedLine reports a transcript line without a progress record.
	// line has its trailing newline and carriage return removed.
	UnmatchedLine(lineNumber int, line string) error

	// Regression reports a progress record below its worker's maximum.
	Regression(lineNumber int, reg progress.Regression) error

	// Report writes the final summary.
	Report(r *progress.Report, summary *metadata.ScanSummary) error

	// Close releases the underlying writer, if owned.
	Close() error
}
