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

// Record is a single progress line reported by a worker.
type Record struct {
	WorkerID   int
	CertsStart int64
	CertsEnd   int64
	NewPaths   int64
	KnownPaths int64
}

// WorkerState is one entry of the sorted worker listing in a Report.
type WorkerState struct {
	WorkerID    int   `json:"worker_id"`
	MaxCertsEnd int64 `json:"max_certs_end"`
}
