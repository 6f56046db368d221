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

// WorkerProgress maps a worker ID to the highest certificate ID the worker
// reported as finished.
type WorkerProgress map[int]int64

// Regression describes a record whose end ID is below what the worker
// already reported.
type Regression struct {
	WorkerID int
	Max      int64
	CertsEnd int64
}

// Observe folds rec into the running maximum of its worker. The stored value
// never decreases, so duplicated or reordered lines do not move it back.
//
// When rec reports a lower end ID than the worker's current maximum, Observe
// returns the regression and true. The maximum is kept either way.
func (p WorkerProgress) Observe(rec Record) (Regression, bool) {
	current, seen := p[rec.WorkerID]
	if !seen {
		current = 0
	}

	if rec.CertsEnd > current {
		p[rec.WorkerID] = rec.CertsEnd
	} else {
		p[rec.WorkerID] = current
	}

	if seen && rec.CertsEnd < current {
		return Regression{WorkerID: rec.WorkerID, Max: current, CertsEnd: rec.CertsEnd}, true
	}
	return Regression{}, false
}
