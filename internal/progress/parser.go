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

package progress

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	vserrors "github.com/sirseerhq/validation-state/internal/errors"
)

const (
	// DefaultSeparator matches the literal ellipsis workers print between the
	// certificate range and the path counts.
	DefaultSeparator = `\.\.\.`

	// RelaxedSeparator accepts any filler text between the certificate range
	// and the path counts.
	RelaxedSeparator = `.*?`
)

// Parser matches worker progress lines. A Parser is immutable and safe to
// reuse.
type Parser struct {
	pattern *regexp.Regexp
	fields  [5]int
}

var fieldNames = [5]string{"worker", "start", "end", "new", "known"}

// NewParser compiles the progress line pattern around the given separator.
// The separator is a regular expression; an empty separator selects
// DefaultSeparator.
func NewParser(separator string) (*Parser, error) {
	if separator == "" {
		separator = DefaultSeparator
	}

	pattern, err := regexp.Compile(linePattern(separator))
	if err != nil {
		return nil, fmt.Errorf("separator %q: %v: %w", separator, err, vserrors.ErrInvalidPattern)
	}

	p := &Parser{pattern: pattern}
	for i, name := range fieldNames {
		p.fields[i] = pattern.SubexpIndex(name)
	}
	return p, nil
}

// linePattern builds the full expression. Fixed tokens tolerate extra
// whitespace. Fields are named so groups inside the separator do not shift
// them.
func linePattern(separator string) string {
	return `Worker\s+(?P<worker>\d+)\s*:\s*Finished\s+certs\s+(?P<start>\d+)\s*-\s*(?P<end>\d+)\s*(?:` +
		separator +
		`)\s*Found\s+(?P<new>\d+)\s+new\s+and\s+(?P<known>\d+)\s+known\s+paths`
}

// Parse extracts a Record from line. It reports false when the line does not
// contain a progress record or a number does not fit into an int64. An end ID
// of math.MaxInt64 is rejected as well since the next ID cannot be resumed
// from. No range validation is done: CertsStart may exceed CertsEnd.
func (p *Parser) Parse(line string) (Record, bool) {
	m := p.pattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	workerID, err := strconv.Atoi(m[p.fields[0]])
	if err != nil {
		return Record{}, false
	}

	var fields [4]int64
	for i := range fields {
		v, err := strconv.ParseInt(m[p.fields[i+1]], 10, 64)
		if err != nil {
			return Record{}, false
		}
		fields[i] = v
	}
	if fields[1] == math.MaxInt64 {
		return Record{}, false
	}

	return Record{
		WorkerID:   workerID,
		CertsStart: fields[0],
		CertsEnd:   fields[1],
		NewPaths:   fields[2],
		KnownPaths: fields[3],
	}, true
}
