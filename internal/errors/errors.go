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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrFileAccess indicates the transcript could not be opened or read.
	// Maps to exit code 2.
	ErrFileAccess = errors.New("cannot access log file")

	// ErrNoProgressData indicates the transcript contained no progress records,
	// so no resume point can be computed.
	// Maps to exit code 3.
	ErrNoProgressData = errors.New("no worker progress records found")

	// ErrInvalidPattern indicates a configured separator is not a valid
	// regular expression.
	// Maps to exit code 1.
	ErrInvalidPattern = errors.New("invalid line pattern")
)
