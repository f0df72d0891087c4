package runner

import (
	"context"
	"strings"
	"time"

	"fixrun/pkg/logging"

	"github.com/google/uuid"
)

const subsystem = "Runner"

// Runner drives the resolve, execute and report cycle over a catalog
type Runner struct {
	catalog  *Catalog
	executor Executor
	reporter Reporter
}

// NewRunner creates a runner over catalog
func NewRunner(catalog *Catalog, executor Executor, reporter Reporter) *Runner {
	return &Runner{
		catalog:  catalog,
		executor: executor,
		reporter: reporter,
	}
}

// Catalog returns the catalog the runner resolves selections against
func (r *Runner) Catalog() *Catalog {
	return r.catalog
}

// Run executes the cases selected by selection one after another.
//
// An unknown selection returns an error wrapping ErrUnknownCase without
// starting any process. A case whose process cannot be started stops the run
// and returns a *SpawnError; cases after it are not attempted and no report
// is produced. Failing cases are not errors: they score zero and the run
// continues.
func (r *Runner) Run(ctx context.Context, selection string, opts RunOptions) (*RunReport, error) {
	cases, err := r.catalog.Resolve(selection)
	if err != nil {
		logging.Warn(subsystem, "Selection %q did not resolve", selection)
		r.reporter.ReportUnknownCase(selection)
		return nil, err
	}

	report := &RunReport{
		RunID:     uuid.NewString(),
		Selection: selection,
		StartTime: time.Now(),
		Outcomes:  make([]CaseOutcome, 0, len(cases)),
		Options:   opts,
	}

	logging.Debug(subsystem, "Run %s: %d case(s) selected by %q", report.RunID, len(cases), selection)
	r.reporter.ReportStart(selection, cases, opts)

	for _, tc := range cases {
		r.reporter.ReportCaseStart(tc)

		argv := BuildCommand(tc, opts)
		logging.Debug(subsystem, "Executing %s: %s", tc.Name, strings.Join(argv, " "))

		startTime := time.Now()
		result := r.executor.Execute(ctx, argv)
		if result.Status == StatusSpawnFailed {
			spawnErr := &SpawnError{Case: tc.Name, Argv: argv, Err: result.Err}
			logging.Error(subsystem, result.Err, "Could not start %s, aborting run", tc.Name)
			r.reporter.ReportSpawnFailure(spawnErr)
			return nil, spawnErr
		}

		outcome := scoreCase(tc, argv, result.ExitCode, startTime, time.Now())
		report.add(outcome)
		logging.Debug(subsystem, "%s exited with status %d (%s)", tc.Name, outcome.ExitCode, outcome.Result)

		r.reporter.ReportCaseResult(outcome)
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	r.reporter.ReportRunResult(*report)

	return report, nil
}

// scoreCase classifies an exit code: 0 passes with the full weight, any
// other status fails with zero.
func scoreCase(tc TestCase, argv []string, exitCode int, start, end time.Time) CaseOutcome {
	outcome := CaseOutcome{
		Case:      tc,
		Argv:      argv,
		ExitCode:  exitCode,
		Result:    ResultFailed,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
	if exitCode == 0 {
		outcome.Result = ResultPassed
		outcome.Score = tc.Weight
	}
	return outcome
}

// add appends an outcome and updates the totals
func (r *RunReport) add(outcome CaseOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	r.TotalScore += outcome.Score
	r.MaxScore += outcome.Case.Weight

	switch outcome.Result {
	case ResultPassed:
		r.Passed++
	case ResultFailed:
		r.Failed++
	}
}
