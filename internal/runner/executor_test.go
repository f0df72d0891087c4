package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSubject creates an executable shell script standing in for the
// subject program.
func writeSubject(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script subjects require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "subject.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestProcessExecutor_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"success", "exit 0", 0},
		{"failure", "exit 1", 1},
		{"other status", "exit 42", 42},
		{"killed by signal", "kill -9 $$", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := writeSubject(t, tt.body)

			result := NewProcessExecutor(nil, nil, nil).Execute(context.Background(), []string{subject})
			assert.Equal(t, StatusCompleted, result.Status)
			assert.Equal(t, tt.wantCode, result.ExitCode)
			assert.NoError(t, result.Err)
		})
	}
}

func TestProcessExecutor_SpawnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	result := NewProcessExecutor(nil, nil, nil).Execute(context.Background(), []string{missing, "-f", "x.cmd"})
	assert.Equal(t, StatusSpawnFailed, result.Status)
	assert.Error(t, result.Err)
}

func TestProcessExecutor_EmptyCommand(t *testing.T) {
	result := NewProcessExecutor(nil, nil, nil).Execute(context.Background(), nil)
	assert.Equal(t, StatusSpawnFailed, result.Status)
}

func TestProcessExecutor_PassesArgumentsAndStreams(t *testing.T) {
	subject := writeSubject(t, `echo "$@"; echo oops >&2`)

	var stdout, stderr bytes.Buffer
	result := NewProcessExecutor(nil, &stdout, &stderr).Execute(context.Background(),
		[]string{subject, "-v", "2", "-f", "testcases/a.cmd"})

	assert.Equal(t, Completed(0), result)
	assert.Equal(t, "-v 2 -f testcases/a.cmd\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestRun_WithProcessSubjects(t *testing.T) {
	// The subject passes every fixture except the one named fail.cmd
	subject := writeSubject(t, `for a in "$@"; do last="$a"; done
case "$last" in *fail.cmd) exit 1 ;; esac
exit 0`)

	catalog, err := NewCatalog(
		TestCase{Name: "first", Fixture: "first.cmd", Weight: 10},
		TestCase{Name: "second", Fixture: "fail.cmd", Weight: 10},
		TestCase{Name: "third", Fixture: "third.cmd", Weight: 10},
	)
	require.NoError(t, err)

	var out bytes.Buffer
	r := NewRunner(catalog, NewProcessExecutor(nil, nil, nil), NewConsoleReporter(&out, false, false))

	opts := DefaultRunOptions()
	opts.Program = subject
	report, err := r.Run(context.Background(), AllTestCases, opts)
	require.NoError(t, err)

	assert.Equal(t, 20, report.TotalScore)
	assert.Equal(t, 30, report.MaxScore)
	assert.Equal(t, []TestResult{ResultPassed, ResultFailed, ResultPassed},
		[]TestResult{report.Outcomes[0].Result, report.Outcomes[1].Result, report.Outcomes[2].Result})
	assert.Contains(t, out.String(), "20/30")
}

func TestRun_MissingProgramAbortsWithSpawnError(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(threeCaseCatalog(t), NewProcessExecutor(nil, nil, nil), NewConsoleReporter(&out, false, false))

	opts := DefaultRunOptions()
	opts.Program = filepath.Join(t.TempDir(), "missing-interpreter")
	report, err := r.Run(context.Background(), AllTestCases, opts)

	assert.Nil(t, report)
	assert.True(t, IsSpawnError(err))
	assert.Contains(t, out.String(), "Call of '"+opts.Program)
	assert.NotContains(t, out.String(), "Total")
	assert.NotContains(t, out.String(), "testcase-02-ops")
}
