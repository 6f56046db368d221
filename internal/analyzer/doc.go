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

// Package analyzer reconstructs the progress of a certificate validation job
// from a captured terminal transcript.
//
// An Analyzer reads the transcript once, line by line. Lines carrying a
// worker progress record update the per-worker maximum; every other line is
// reported to the sink as a warning and skipped. After the last line the
// analyzer builds a progress.Report and hands it to the sink.
//
// Failures to open or read the transcript abort the scan with
// errors.ErrFileAccess before anything is reported. A transcript without a
// single progress record aborts with errors.ErrNoProgressData after the
// warnings have been written.
package analyzer
