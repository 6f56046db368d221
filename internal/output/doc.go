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

// Package output renders analyzer results. The analyzer never prints
// directly; it reports through a Sink so the destination and the format can
// be swapped without touching the scan.
//
// Two sinks are provided:
//   - TextWriter prints the human-readable report operators paste into a
//     terminal, including the resume flag for the job runner.
//   - JSONWriter streams NDJSON (one object per line) for tooling.
//
// Example usage:
//
//	sink := output.NewTextWriter(os.Stdout, output.DefaultResumeFlag)
//	defer sink.Close()
//
//	_ = sink.UnmatchedLine(3, "garbage")
//	_ = sink.Report(report, summary)
package output
