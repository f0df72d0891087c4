// Package runner provides the fixture replay engine for fixrun.
//
// A run takes a selection token and a set of RunOptions, and walks through
// four stages:
//
//   - Resolve: the selection is mapped onto the Catalog. The token
//     "allTestCases" selects every registered case in registration order, a
//     registered case name selects that single case, and anything else ends
//     the run with ErrUnknownCase before a process is started.
//   - Build: BuildCommand turns each case into an argument vector of the form
//     [wrapper] program [-v [level]] -f <fixtureDir>/<fixture>.
//   - Execute: an Executor runs the vector and reports either Completed with
//     an exit code or SpawnFailed. A spawn failure aborts the run; no report
//     is produced.
//   - Report: exit code 0 awards the full case weight, anything else awards
//     zero. A Reporter prints one line per case and a single tally line once
//     the last case finished.
//
// Cases run strictly one after another. The runner waits for the subject
// program without a timeout, so a hung subject hangs the run.
//
// # Catalog files
//
// The built-in catalog can be replaced with a YAML file:
//
//	cases:
//	  - name: testcase-01-q-ops
//	    fixture: testcase-01-q-ops.cmd
//	    weight: 10
package runner
