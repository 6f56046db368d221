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

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/sirseerhq/validation-state/internal/config"
	vserrors "github.com/sirseerhq/validation-state/internal/errors"
	"github.com/sirseerhq/validation-state/internal/progress"
)

const transcript = `screen session 1
Worker 0: Finished certs 1 - 100 ... Found 5 new and 2 known paths
Worker 1: Finished certs 1 - 80 ... Found 3 new and 1 known paths
Worker 3: Finished certs 201 - 300 ... Found 0 new and 9 known paths
`

// isolate keeps config discovery away from the host's files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{
		"VALIDATION_STATE_SEPARATOR",
		"VALIDATION_STATE_RELAXED",
		"VALIDATION_STATE_STRICT",
		"VALIDATION_STATE_FORMAT",
		"VALIDATION_STATE_RESUME_FLAG",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestRootCommand_TextReport(t *testing.T) {
	dir := isolate(t)
	logfile := writeFile(t, dir, "screen.log", transcript)

	for _, flag := range []string{"-f", "--logfile"} {
		t.Run(flag, func(t *testing.T) {
			out, err := execute(t, flag, logfile)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			want := `WARNING Cannot match line "screen session 1"
0 100
1 80
3 300

##### RESULT #####
Gathered data from workers 0 - 3 (count: 3)
	INFO Doublecheck that worker count equals the number of used workers
	WARNING Missing data for worker 2: Result below does not incorporate state of this worker; Apply safety margin when resuming!
All certificates with ids smaller than 81 have been checked.
Resume with --start_with_certid 81
`
			if out != want {
				t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", out, want)
			}
		})
	}
}

func TestRootCommand_MissingLogfileFlag(t *testing.T) {
	isolate(t)

	_, err := execute(t)
	if err == nil {
		t.Fatal("expected error for missing --logfile")
	}
	if !strings.Contains(err.Error(), `required flag(s) "logfile" not set`) {
		t.Errorf("unexpected error: %v", err)
	}
	if code := mapErrorToExitCode(err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRootCommand_FileErrors(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "-f", filepath.Join(dir, "nope.log"))
	if !errors.Is(err, vserrors.ErrFileAccess) {
		t.Fatalf("error = %v, want ErrFileAccess", err)
	}
	if out != "" {
		t.Errorf("expected no stdout, got %q", out)
	}
	if code := mapErrorToExitCode(err); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRootCommand_NoProgressData(t *testing.T) {
	dir := isolate(t)
	logfile := writeFile(t, dir, "noise.log", "hello\nworld\n")

	out, err := execute(t, "-f", logfile)
	if !errors.Is(err, vserrors.ErrNoProgressData) {
		t.Fatalf("error = %v, want ErrNoProgressData", err)
	}
	want := "WARNING Cannot match line \"hello\"\nWARNING Cannot match line \"world\"\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if code := mapErrorToExitCode(err); code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestRootCommand_RelaxedAndResumeFlag(t *testing.T) {
	dir := isolate(t)
	logfile := writeFile(t, dir, "screen.log",
		"Worker 0: Finished certs 1 - 40 (12.3s) Found 1 new and 2 known paths\n")

	if _, err := execute(t, "-f", logfile); !errors.Is(err, vserrors.ErrNoProgressData) {
		t.Fatalf("default separator should reject filler, got %v", err)
	}

	out, err := execute(t, "-f", logfile, "--relaxed", "--resume-flag", "from")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasSuffix(out, "Resume with --from 41\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRootCommand_JSONFormat(t *testing.T) {
	dir := isolate(t)
	logfile := writeFile(t, dir, "screen.log", transcript)

	out, err := execute(t, "-f", logfile, "--format", " JSON ")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 NDJSON lines, got %d:\n%s", len(lines), out)
	}

	var report struct {
		Type          string                 `json:"type"`
		ResumeCertID  int64                  `json:"resume_cert_id"`
		MissingRanges []progress.WorkerRange `json:"missing_ranges"`
		MissingCount  int                    `json:"missing_count"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &report); err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}
	if report.Type != "report" || report.ResumeCertID != 81 {
		t.Errorf("report = %+v, want type=report resume=81", report)
	}
	if len(report.MissingRanges) != 1 || report.MissingRanges[0] != (progress.WorkerRange{First: 2, Last: 2}) {
		t.Errorf("missing_ranges = %v, want [{2 2}]", report.MissingRanges)
	}
	if report.MissingCount != 1 {
		t.Errorf("missing_count = %d, want 1", report.MissingCount)
	}
}

func TestRootCommand_ConfigPrecedence(t *testing.T) {
	dir := isolate(t)
	logfile := writeFile(t, dir, "screen.log", transcript)
	cfgPath := writeFile(t, dir, "cfg.yaml", "output:\n  format: json\n  resume_flag: from_config\n")

	// Config file alone
	out, err := execute(t, "-f", logfile, "--config", cfgPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"resume_instruction":"--from_config 81"`) {
		t.Errorf("config file not applied:\n%s", out)
	}

	// Environment beats config file
	t.Setenv("VALIDATION_STATE_RESUME_FLAG", "from_env")
	out, err = execute(t, "-f", logfile, "--config", cfgPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, `"resume_instruction":"--from_env 81"`) {
		t.Errorf("environment not applied:\n%s", out)
	}

	// Flags beat everything
	out, err = execute(t, "-f", logfile, "--config", cfgPath, "--format", "text", "--resume-flag", "from_flag")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasSuffix(out, "Resume with --from_flag 81\n") {
		t.Errorf("flags not applied:\n%s", out)
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	logfile := writeFile(t, dir, "screen.log", transcript)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad format", []string{"--format", "xml"}, "unsupported output format"},
		{"bad separator", []string{"--separator", "("}, "invalid line pattern"},
		{"dashed resume flag", []string{"--resume-flag=--x"}, "without leading dashes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"-f", logfile}, tt.args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
			if out != "" {
				t.Errorf("expected no stdout, got %q", out)
			}
			if code := mapErrorToExitCode(err); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
		})
	}
}

func TestApplyFlags_OnlyChangedFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts := &analyzeOptions{}
	bindFlags(fs, opts)

	if err := fs.Parse([]string{"--strict"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Output.Format = config.FormatJSON
	opts.applyFlags(fs, cfg)

	if !cfg.Analysis.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.Output.Format != config.FormatJSON {
		t.Errorf("Format = %s, unset flag must not override config", cfg.Output.Format)
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{vserrors.ErrFileAccess, 2},
		{fmt.Errorf("open: %w", vserrors.ErrFileAccess), 2},
		{fmt.Errorf("scan: %w", vserrors.ErrNoProgressData), 3},
		{vserrors.ErrInvalidPattern, 1},
		{errors.New("boom"), 1},
	}

	for _, tt := range tests {
		if got := mapErrorToExitCode(tt.err); got != tt.want {
			t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
