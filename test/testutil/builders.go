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

package testutil

import (
	"fmt"
	"strings"
)

// TranscriptBuilder provides a fluent API for creating test transcripts
type TranscriptBuilder struct {
	lines []string
}

// NewTranscriptBuilder creates an empty transcript
func NewTranscriptBuilder() *TranscriptBuilder {
	return &TranscriptBuilder{}
}

// WithProgress appends a worker progress line
func (b *TranscriptBuilder) WithProgress(worker int, start, end int64) *TranscriptBuilder {
	return b.WithProgressCounts(worker, start, end, 0, 0)
}

// WithProgressCounts appends a worker progress line with explicit path counts
func (b *TranscriptBuilder) WithProgressCounts(worker int, start, end, newPaths, knownPaths int64) *TranscriptBuilder {
	b.lines = append(b.lines, fmt.Sprintf(
		"Worker %d: Finished certs %d - %d ... Found %d new and %d known paths",
		worker, start, end, newPaths, knownPaths))
	return b
}

// WithBatches appends batches of size for worker, starting at first, until
// the worker has finished through last
func (b *TranscriptBuilder) WithBatches(worker int, first, last, size int64) *TranscriptBuilder {
	for start := first; start <= last; start += size {
		end := start + size - 1
		if end > last {
			end = last
		}
		b.WithProgress(worker, start, end)
	}
	return b
}

// WithNoise appends a line that is not a progress record
func (b *TranscriptBuilder) WithNoise(line string) *TranscriptBuilder {
	b.lines = append(b.lines, line)
	return b
}

// Build returns the transcript with a trailing newline
func (b *TranscriptBuilder) Build() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}
