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
	"bufio"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
)

// AssertResumeID checks the text report ends with the expected resume
// instruction
func AssertResumeID(t *testing.T, stdout string, resumeID int64) {
	t.Helper()

	want := "Resume with --start_with_certid " + strconv.FormatInt(resumeID, 10) + "\n"
	if !strings.HasSuffix(stdout, want) {
		t.Errorf("Expected output to end with %q, got:\n%s", want, stdout)
	}
}

// AssertLines checks stdout contains every expected line, in order
func AssertLines(t *testing.T, stdout string, expected ...string) {
	t.Helper()

	lines := strings.Split(stdout, "\n")
	pos := 0
	for _, want := range expected {
		found := false
		for pos < len(lines) {
			pos++
			if lines[pos-1] == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected line %q (in order) in output:\n%s", want, stdout)
			return
		}
	}
}

// CountWarnings returns the number of unmatched line warnings in stdout
func CountWarnings(stdout string) int {
	return strings.Count(stdout, "WARNING Cannot match line ")
}

// NDJSONRecords decodes NDJSON output into generic records
func NDJSONRecords(t *testing.T, stdout string) []map[string]interface{} {
	t.Helper()

	var records []map[string]interface{}
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("Line %d: invalid JSON: %v", len(records)+1, err)
		}
		if _, ok := rec["type"]; !ok {
			t.Errorf("Line %d: missing required field 'type'", len(records)+1)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading output: %v", err)
	}
	return records
}
