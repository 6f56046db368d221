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

package integration

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirseerhq/validation-state/test/testutil"
)

// TestLargeTranscript runs a transcript with many workers and batches
func TestLargeTranscript(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}

	b := testutil.NewTranscriptBuilder()
	const workers = 32
	for w := 0; w < workers; w++ {
		first := int64(w) * 1_000_000
		// Worker 17 lags behind everyone else
		last := first + 99_999
		if w == 17 {
			last = first + 4_999
		}
		b.WithBatches(w, first, last, 500)
		b.WithNoise("\x1b[1A\x1b[2K")
	}

	result := testutil.RunOnTranscript(t, b.Build())
	testutil.AssertCLISuccess(t, result)

	testutil.AssertLines(t, result.Stdout, "Gathered data from workers 0 - 31 (count: 32)")
	if got := testutil.CountWarnings(result.Stdout); got != workers {
		t.Errorf("Expected %d noise warnings, got %d", workers, got)
	}
	// Resume point is one past worker 0's maximum, the lowest of the maxima
	testutil.AssertResumeID(t, result.Stdout, 100_000)
}

func TestIdenticalOutputAcrossRuns(t *testing.T) {
	dir := testutil.CreateTempDir(t, "idempotence-test")
	path := testutil.CreateTempFile(t, dir, "screen-*.log", testutil.NewTranscriptBuilder().
		WithNoise("noise").
		WithProgress(2, 1, 10).
		WithProgress(0, 1, 30).
		WithProgress(5, 1, 20).
		Build())

	args := []string{"-f", path}
	first := testutil.RunCLI(t, args, testutil.IsolatedEnv(dir))
	second := testutil.RunCLI(t, args, testutil.IsolatedEnv(dir))
	testutil.AssertCLISuccess(t, first)
	testutil.AssertCLISuccess(t, second)

	if first.Stdout != second.Stdout {
		t.Errorf("Outputs differ:\nfirst:\n%s\nsecond:\n%s", first.Stdout, second.Stdout)
	}

	jsonArgs := append(args, "--format", "json")
	firstJSON := testutil.RunCLI(t, jsonArgs, testutil.IsolatedEnv(dir))
	secondJSON := testutil.RunCLI(t, jsonArgs, testutil.IsolatedEnv(dir))
	if firstJSON.Stdout != secondJSON.Stdout {
		t.Errorf("JSON outputs differ:\nfirst:\n%s\nsecond:\n%s", firstJSON.Stdout, secondJSON.Stdout)
	}
}

func TestNoFilesWritten(t *testing.T) {
	dir := testutil.CreateTempDir(t, "side-effect-test")
	path := filepath.Join(dir, "screen.log")
	if err := os.WriteFile(path, []byte(testutil.NewTranscriptBuilder().WithProgress(0, 1, 5).Build()), 0o600); err != nil {
		t.Fatal(err)
	}

	before := testutil.ListDir(t, dir)
	result := testutil.RunCLI(t, []string{"-f", path, "--verbose"}, testutil.IsolatedEnv(dir))
	testutil.AssertCLISuccess(t, result)
	after := testutil.ListDir(t, dir)

	if !reflect.DeepEqual(before, after) {
		t.Errorf("Directory changed: before %v, after %v", before, after)
	}
	if !strings.Contains(result.Stderr, "scan complete") {
		t.Errorf("Expected verbose diagnostics on stderr, got: %s", result.Stderr)
	}
	if strings.Contains(result.Stdout, "scan complete") {
		t.Error("Diagnostics must not reach stdout")
	}
}

func TestCRLFTranscript(t *testing.T) {
	transcript := "Worker 0: Finished certs 1 - 9 ... Found 1 new and 1 known paths\r\n" +
		"junk\r\n" +
		"Worker 1: Finished certs 10 - 19 ... Found 1 new and 1 known paths\r\n"

	result := testutil.RunOnTranscript(t, transcript)
	testutil.AssertCLISuccess(t, result)

	testutil.AssertLines(t, result.Stdout, `WARNING Cannot match line "junk"`, "0 9", "1 19")
	testutil.AssertResumeID(t, result.Stdout, 10)
}

func TestStrictRegressionWarning(t *testing.T) {
	transcript := testutil.NewTranscriptBuilder().
		WithProgress(0, 1, 100).
		WithProgress(0, 1, 40).
		Build()

	result := testutil.RunOnTranscript(t, transcript, "--strict")
	testutil.AssertCLISuccess(t, result)

	testutil.AssertLines(t, result.Stdout, "WARNING Worker 0 regressed from 100 to 40; keeping 100", "0 100")
	testutil.AssertResumeID(t, result.Stdout, 101)
}
