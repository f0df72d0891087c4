package runner

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeExecutor returns scripted results in call order and records every argv
type fakeExecutor struct {
	results []ExecResult
	calls   [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, argv []string) ExecResult {
	f.calls = append(f.calls, argv)
	i := len(f.calls) - 1
	if i < len(f.results) {
		return f.results[i]
	}
	return Completed(0)
}

// recordingReporter keeps a flat event log of every callback
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) ReportStart(selection string, cases []TestCase, opts RunOptions) {
	r.events = append(r.events, fmt.Sprintf("start %s %d", selection, len(cases)))
}

func (r *recordingReporter) ReportCaseStart(tc TestCase) {
	r.events = append(r.events, "case-start "+tc.Name)
}

func (r *recordingReporter) ReportCaseResult(outcome CaseOutcome) {
	r.events = append(r.events, fmt.Sprintf("case %s %d/%d", outcome.Case.Name, outcome.Score, outcome.Case.Weight))
}

func (r *recordingReporter) ReportRunResult(report RunReport) {
	r.events = append(r.events, fmt.Sprintf("total %d/%d", report.TotalScore, report.MaxScore))
}

func (r *recordingReporter) ReportUnknownCase(selection string) {
	r.events = append(r.events, "unknown "+selection)
}

func (r *recordingReporter) ReportSpawnFailure(err *SpawnError) {
	r.events = append(r.events, "spawn-failed "+err.Case)
}

func (r *recordingReporter) count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

// threeCaseCatalog returns three cases of weight 10
func threeCaseCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		TestCase{Name: "testcase-01-ops", Fixture: "testcase-01-ops.cmd", Weight: 10},
		TestCase{Name: "testcase-02-ops", Fixture: "testcase-02-ops.cmd", Weight: 10},
		TestCase{Name: "testcase-03-ops", Fixture: "testcase-03-ops.cmd", Weight: 10},
	)
	require.NoError(t, err)
	return c
}
