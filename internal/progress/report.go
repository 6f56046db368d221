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
	"sort"

	vserrors "github.com/sirseerhq/validation-state/internal/errors"
)

// WorkerRange is an inclusive run of worker IDs.
type WorkerRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Len returns the number of IDs in the range.
func (r WorkerRange) Len() int {
	return r.Last - r.First + 1
}

// Report is the summary of a finished scan. Gaps are kept as ranges so a
// stray high worker ID cannot blow up the report.
type Report struct {
	Workers       []WorkerState `json:"workers"`
	WorkerIDMin   int           `json:"worker_id_min"`
	WorkerIDMax   int           `json:"worker_id_max"`
	WorkerCount   int           `json:"worker_count"`
	MissingRanges []WorkerRange `json:"missing_ranges"`
	MissingCount  int           `json:"missing_count"`
	ResumeCertID  int64         `json:"resume_cert_id"`
}

// NewReport summarizes p. It returns ErrNoProgressData when p is empty since
// there is no meaningful resume point without any worker data.
func NewReport(p WorkerProgress) (*Report, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("cannot compute resume point: %w", vserrors.ErrNoProgressData)
	}

	ids := make([]int, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	r := &Report{
		Workers:       make([]WorkerState, 0, len(ids)),
		WorkerIDMin:   ids[0],
		WorkerIDMax:   ids[len(ids)-1],
		WorkerCount:   len(ids),
		MissingRanges: []WorkerRange{},
	}

	minEnd := p[ids[0]]
	for i, id := range ids {
		end := p[id]
		r.Workers = append(r.Workers, WorkerState{WorkerID: id, MaxCertsEnd: end})
		if end < minEnd {
			minEnd = end
		}

		// Keys are sorted, so gaps are the holes between neighbours.
		if i > 0 && id-ids[i-1] > 1 {
			gap := WorkerRange{First: ids[i-1] + 1, Last: id - 1}
			r.MissingRanges = append(r.MissingRanges, gap)
			r.MissingCount += gap.Len()
		}
	}

	if minEnd == math.MaxInt64 {
		return nil, fmt.Errorf("end id %d leaves no representable resume point", minEnd)
	}
	r.ResumeCertID = minEnd + 1

	return r, nil
}

// MissingWorkers expands the gap ranges into worker IDs, stopping after limit
// IDs. A limit of zero or less expands nothing.
func (r *Report) MissingWorkers(limit int) []int {
	ids := []int{}
	for _, gap := range r.MissingRanges {
		for w := gap.First; w <= gap.Last; w++ {
			if len(ids) >= limit {
				return ids
			}
			ids = append(ids, w)
		}
	}
	return ids
}

// ResumeInstruction renders the command-line flag that restarts the job at
// the resume point, e.g. "--start_with_certid 81".
func (r *Report) ResumeInstruction(flag string) string {
	return fmt.Sprintf("--%s %d", flag, r.ResumeCertID)
}
