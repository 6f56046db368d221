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

// Package main implements the validation-state command-line interface.
// This tool reads a captured terminal transcript of a certificate validation
// job and reports the certificate ID the job can safely be resumed from.
//
// The CLI supports:
//   - Strict or relaxed matching of worker progress lines
//   - Detection of workers missing from the transcript
//   - Reporting of workers whose progress went backwards (--strict)
//   - Plain-text or NDJSON output on stdout
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	validation-state -f <transcript> [flags]
//
// Example:
//
//	screen -X hardcopy -h /tmp/validation.log
//	validation-state --logfile /tmp/validation.log
//
// Exit codes:
//   - 0: Success
//   - 1: General error (invalid flags or configuration)
//   - 2: Transcript missing or unreadable
//   - 3: No worker progress found in the transcript
package main
