package runner

import (
	"context"
	"time"
)

// TestResult represents the classification of an executed case
type TestResult string

const (
	// ResultPassed indicates the subject program exited with status 0
	ResultPassed TestResult = "PASSED"
	// ResultFailed indicates any other exit status, including abnormal termination
	ResultFailed TestResult = "FAILED"
)

// TestCase is a single registered fixture with its score weight
type TestCase struct {
	// Name is the unique identifier used for selection
	Name string `yaml:"name" json:"name"`
	// Fixture is the fixture path relative to the fixture directory
	Fixture string `yaml:"fixture" json:"fixture"`
	// Weight is awarded in full when the case passes
	Weight int `yaml:"weight" json:"weight"`
}

// RunOptions configures how every case of a run is invoked and reported
type RunOptions struct {
	// Program is the subject program path
	Program string `json:"program"`
	// FixtureDir is the root the case fixture paths are joined to
	FixtureDir string `json:"fixture_dir"`
	// Verbosity is forwarded to the subject program, 0 (silent) to MaxVerbosity
	Verbosity int `json:"verbosity"`
	// VerbosityMode selects how Verbosity is forwarded ("flag" or "level")
	VerbosityMode string `json:"verbosity_mode"`
	// Color enables green/red report lines
	Color bool `json:"color"`
	// UseWrapper prefixes every invocation with Wrapper
	UseWrapper bool `json:"use_wrapper"`
	// Wrapper is the memory-check wrapper invocation name
	Wrapper string `json:"wrapper,omitempty"`
}

// ExecStatus distinguishes a process that ran from one that never started
type ExecStatus int

const (
	// StatusCompleted means the process was started and has exited
	StatusCompleted ExecStatus = iota
	// StatusSpawnFailed means the process could not be created at all
	StatusSpawnFailed
)

// ExecResult is the outcome of a single Executor call
type ExecResult struct {
	Status ExecStatus
	// ExitCode is meaningful for StatusCompleted; -1 marks abnormal termination
	ExitCode int
	// Err holds the spawn failure cause for StatusSpawnFailed
	Err error
}

// Completed returns the result for a process that exited with code.
func Completed(code int) ExecResult {
	return ExecResult{Status: StatusCompleted, ExitCode: code}
}

// SpawnFailed returns the result for a process that could not be started.
func SpawnFailed(err error) ExecResult {
	return ExecResult{Status: StatusSpawnFailed, ExitCode: -1, Err: err}
}

// CaseOutcome represents the scored result of a single executed case
type CaseOutcome struct {
	// Case is the case that was executed
	Case TestCase `json:"case"`
	// Argv is the exact invocation
	Argv []string `json:"argv"`
	// ExitCode is the subject's exit status
	ExitCode int `json:"exit_code"`
	// Result is the PASSED/FAILED classification
	Result TestResult `json:"result"`
	// Score is Case.Weight when passed and 0 otherwise
	Score int `json:"score"`
	// StartTime when the process was started
	StartTime time.Time `json:"start_time"`
	// EndTime when the process exited
	EndTime time.Time `json:"end_time"`
	// Duration of the process run
	Duration time.Duration `json:"duration"`
}

// Passed reports whether the case passed
func (o CaseOutcome) Passed() bool {
	return o.Result == ResultPassed
}

// RunReport is the aggregate of one complete run
type RunReport struct {
	// RunID uniquely identifies the run
	RunID string `json:"run_id"`
	// Selection is the token the run was started with
	Selection string `json:"selection"`
	// Outcomes in execution order
	Outcomes []CaseOutcome `json:"outcomes"`
	// TotalScore is the sum of awarded scores
	TotalScore int `json:"total_score"`
	// MaxScore is the sum of weights of the executed cases
	MaxScore int `json:"max_score"`
	// Passed is the number of passing cases
	Passed int `json:"passed"`
	// Failed is the number of failing cases
	Failed int `json:"failed"`
	// StartTime when the run began
	StartTime time.Time `json:"start_time"`
	// EndTime when the last case completed
	EndTime time.Time `json:"end_time"`
	// Duration of the run
	Duration time.Duration `json:"duration"`
	// Options the run was executed with
	Options RunOptions `json:"options"`
}

// AllPassed reports whether the full score was achieved
func (r RunReport) AllPassed() bool {
	return r.TotalScore == r.MaxScore
}

// Executor runs a single argument vector to completion
type Executor interface {
	// Execute starts argv, waits for it to exit and classifies the result
	Execute(ctx context.Context, argv []string) ExecResult
}

// Reporter defines how run progress and results are reported
type Reporter interface {
	// ReportStart is called once the selection resolved, before any case runs
	ReportStart(selection string, cases []TestCase, opts RunOptions)
	// ReportCaseStart is called right before a case is executed
	ReportCaseStart(tc TestCase)
	// ReportCaseResult is called when a case completes
	ReportCaseResult(outcome CaseOutcome)
	// ReportRunResult is called exactly once after all cases completed
	ReportRunResult(report RunReport)
	// ReportUnknownCase is called when the selection did not resolve
	ReportUnknownCase(selection string)
	// ReportSpawnFailure is called when a process could not be started
	ReportSpawnFailure(err *SpawnError)
}
