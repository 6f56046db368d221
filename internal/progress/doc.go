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

// Package progress turns worker progress lines from a validation job
// transcript into a resume point.
//
// Three pieces cooperate:
//   - Parser extracts a Record from a single transcript line.
//   - WorkerProgress keeps the highest finished certificate ID per worker.
//   - Report summarizes a finished WorkerProgress: worker range, gaps and
//     the certificate ID to resume from.
//
// A worker reports lines of the form
//
//	Worker 3: Finished certs 1001 - 1500 ... Found 12 new and 40 known paths
//
// Every worker walks its own certificate range in ascending order, so the
// smallest of the per-worker maxima is the last ID all workers have cleared.
// The resume point is that value plus one.
package progress
