package runner

import (
	"path/filepath"
	"strconv"
)

const (
	// MaxVerbosity is the highest level forwarded to the subject program
	MaxVerbosity = 3

	verbosityFlag = "-v"
	fixtureFlag   = "-f"

	// DefaultFixtureDir is where fixtures live unless configured otherwise
	DefaultFixtureDir = "./testcases"
	// DefaultProgram is the subject program tested unless configured otherwise
	DefaultProgram = "./interpreter"
	// DefaultWrapper is the memory-check tool prefixed under --valgrind
	DefaultWrapper = "valgrind"

	// VerbosityModeFlag forwards a presence-only -v
	VerbosityModeFlag = "flag"
	// VerbosityModeLevel forwards -v followed by the level
	VerbosityModeLevel = "level"
)

// BuildCommand returns the argument vector that runs tc:
//
//	[wrapper] program [-v [level]] -f <fixtureDir>/<fixture>
//
// It has no side effects; the same inputs always produce the same vector.
func BuildCommand(tc TestCase, opts RunOptions) []string {
	argv := make([]string, 0, 6)

	if opts.UseWrapper {
		wrapper := opts.Wrapper
		if wrapper == "" {
			wrapper = DefaultWrapper
		}
		argv = append(argv, wrapper)
	}

	program := opts.Program
	if program == "" {
		program = DefaultProgram
	}
	argv = append(argv, program)

	if level := ClampVerbosity(opts.Verbosity); level > 0 {
		argv = append(argv, verbosityFlag)
		if opts.VerbosityMode == VerbosityModeLevel {
			argv = append(argv, strconv.Itoa(level))
		}
	}

	fixtureDir := opts.FixtureDir
	if fixtureDir == "" {
		fixtureDir = DefaultFixtureDir
	}
	return append(argv, fixtureFlag, filepath.Join(fixtureDir, tc.Fixture))
}

// ClampVerbosity bounds level to [0, MaxVerbosity].
func ClampVerbosity(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxVerbosity {
		return MaxVerbosity
	}
	return level
}
