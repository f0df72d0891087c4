package runner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCommand(t *testing.T) {
	tc := TestCase{Name: "testcase-01-q-ops", Fixture: "testcase-01-q-ops.cmd", Weight: 10}
	fixture := filepath.Join("./testcases", "testcase-01-q-ops.cmd")

	tests := []struct {
		name string
		opts RunOptions
		want []string
	}{
		{
			name: "plain",
			opts: RunOptions{Program: "./interpreter", FixtureDir: "./testcases", VerbosityMode: VerbosityModeFlag},
			want: []string{"./interpreter", "-f", fixture},
		},
		{
			name: "flag mode verbose",
			opts: RunOptions{Program: "./interpreter", FixtureDir: "./testcases", Verbosity: 2, VerbosityMode: VerbosityModeFlag},
			want: []string{"./interpreter", "-v", "-f", fixture},
		},
		{
			name: "level mode verbose",
			opts: RunOptions{Program: "./interpreter", FixtureDir: "./testcases", Verbosity: 2, VerbosityMode: VerbosityModeLevel},
			want: []string{"./interpreter", "-v", "2", "-f", fixture},
		},
		{
			name: "level mode silent omits flag",
			opts: RunOptions{Program: "./interpreter", FixtureDir: "./testcases", Verbosity: 0, VerbosityMode: VerbosityModeLevel},
			want: []string{"./interpreter", "-f", fixture},
		},
		{
			name: "level clamped",
			opts: RunOptions{Program: "./interpreter", FixtureDir: "./testcases", Verbosity: 9, VerbosityMode: VerbosityModeLevel},
			want: []string{"./interpreter", "-v", "3", "-f", fixture},
		},
		{
			name: "wrapper",
			opts: RunOptions{Program: "./interpreter", FixtureDir: "./testcases", UseWrapper: true, Wrapper: "valgrind"},
			want: []string{"valgrind", "./interpreter", "-f", fixture},
		},
		{
			name: "defaults fill empty fields",
			opts: RunOptions{UseWrapper: true},
			want: []string{DefaultWrapper, DefaultProgram, "-f", filepath.Join(DefaultFixtureDir, "testcase-01-q-ops.cmd")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCommand(tc, tt.opts))
		})
	}
}

func TestBuildCommand_WrapperPrependsExactlyOneArgument(t *testing.T) {
	tc := TestCase{Name: "testcase-02-q-ops", Fixture: "testcase-02-q-ops.cmd", Weight: 10}

	for _, mode := range []string{VerbosityModeFlag, VerbosityModeLevel} {
		for level := 0; level <= MaxVerbosity; level++ {
			opts := RunOptions{Program: "/opt/subject", FixtureDir: "fixtures", Verbosity: level, VerbosityMode: mode}
			direct := BuildCommand(tc, opts)

			opts.UseWrapper = true
			opts.Wrapper = "valgrind"
			wrapped := BuildCommand(tc, opts)

			assert.Len(t, wrapped, len(direct)+1)
			assert.Equal(t, "valgrind", wrapped[0])
			assert.Equal(t, direct, wrapped[1:])
		}
	}
}

func TestBuildCommand_IsPure(t *testing.T) {
	tc := TestCase{Name: "a", Fixture: "a.cmd", Weight: 1}
	opts := RunOptions{Program: "./p", FixtureDir: "d", Verbosity: 1, VerbosityMode: VerbosityModeLevel, UseWrapper: true, Wrapper: "w"}

	first := BuildCommand(tc, opts)
	first[0] = "mutated"
	assert.Equal(t, BuildCommand(tc, opts), BuildCommand(tc, opts))
	assert.Equal(t, "w", BuildCommand(tc, opts)[0])
}

func TestClampVerbosity(t *testing.T) {
	assert.Equal(t, 0, ClampVerbosity(-1))
	assert.Equal(t, 0, ClampVerbosity(0))
	assert.Equal(t, 2, ClampVerbosity(2))
	assert.Equal(t, MaxVerbosity, ClampVerbosity(MaxVerbosity+1))
}
