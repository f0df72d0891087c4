package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fixrun/internal/color"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-runewidth"
)

const (
	headerName = "Test Case"
	totalName  = "Total"
	scoreBarW  = 30
)

// consoleReporter prints the human readable harness output
type consoleReporter struct {
	out       io.Writer
	palette   *color.Palette
	useColor  bool
	scoreBar  bool
	nameWidth int
}

// NewConsoleReporter creates the default line-oriented reporter. With
// scoreBar set a progress bar of the achieved score follows the tally.
func NewConsoleReporter(out io.Writer, useColor, scoreBar bool) Reporter {
	return &consoleReporter{
		out:       out,
		palette:   color.NewPalette(out, useColor),
		useColor:  useColor,
		scoreBar:  scoreBar,
		nameWidth: len(headerName),
	}
}

// ReportStart prints the column header sized for the selected cases
func (r *consoleReporter) ReportStart(selection string, cases []TestCase, opts RunOptions) {
	r.nameWidth = columnWidth(cases)
	fmt.Fprintf(r.out, "--- %s Score\n", runewidth.FillRight(headerName, r.nameWidth))
}

// ReportCaseStart announces the case about to run
func (r *consoleReporter) ReportCaseStart(tc TestCase) {
	fmt.Fprintf(r.out, "+++ Testing %s\n", tc.Name)
}

// ReportCaseResult prints "<name> <score>/<weight>", green or red
func (r *consoleReporter) ReportCaseResult(outcome CaseOutcome) {
	line := fmt.Sprintf("--- %s %d/%d",
		runewidth.FillRight(outcome.Case.Name, r.nameWidth), outcome.Score, outcome.Case.Weight)
	fmt.Fprintln(r.out, r.palette.Render(color.For(outcome.Passed(), r.useColor), line))
}

// ReportRunResult prints the single tally line
func (r *consoleReporter) ReportRunResult(report RunReport) {
	line := fmt.Sprintf("--- %s %d/%d",
		runewidth.FillRight(totalName, r.nameWidth), report.TotalScore, report.MaxScore)
	fmt.Fprintln(r.out, r.palette.Render(color.For(report.AllPassed(), r.useColor), line))

	if r.scoreBar {
		fmt.Fprintf(r.out, "    %s\n", r.renderScoreBar(report))
	}
}

// ReportUnknownCase prints the unresolved selection
func (r *consoleReporter) ReportUnknownCase(selection string) {
	fmt.Fprintln(r.out, r.palette.Render(color.For(false, r.useColor),
		fmt.Sprintf("%s does not exist", selection)))
}

// ReportSpawnFailure prints the invocation that could not be started
func (r *consoleReporter) ReportSpawnFailure(err *SpawnError) {
	fmt.Fprintln(r.out, r.palette.Render(color.For(false, r.useColor),
		fmt.Sprintf("Call of '%s' failed: %v", strings.Join(err.Argv, " "), err.Err)))
}

// renderScoreBar draws the achieved share of the maximum score
func (r *consoleReporter) renderScoreBar(report RunReport) string {
	fill := "10"
	if !report.AllPassed() {
		fill = "9"
	}
	bar := progress.New(
		progress.WithSolidFill(fill),
		progress.WithWidth(scoreBarW),
		progress.WithColorProfile(r.palette.Profile()),
	)
	return bar.ViewAs(scoreRatio(report))
}

// columnWidth returns the display width needed to align the name column
func columnWidth(cases []TestCase) int {
	width := runewidth.StringWidth(headerName)
	for _, tc := range cases {
		if w := runewidth.StringWidth(tc.Name); w > width {
			width = w
		}
	}
	return width
}

// scoreRatio returns the achieved share of the maximum score in [0, 1]
func scoreRatio(report RunReport) float64 {
	if report.MaxScore <= 0 {
		return 0
	}
	return float64(report.TotalScore) / float64(report.MaxScore)
}

// NewQuietReporter creates a reporter that only prints failures and the tally
func NewQuietReporter(out io.Writer, useColor bool) Reporter {
	return &quietReporter{
		out:      out,
		palette:  color.NewPalette(out, useColor),
		useColor: useColor,
	}
}

// quietReporter implements minimal output for CI/CD integration
type quietReporter struct {
	out      io.Writer
	palette  *color.Palette
	useColor bool
}

func (r *quietReporter) ReportStart(selection string, cases []TestCase, opts RunOptions) {
	// Silent start
}

func (r *quietReporter) ReportCaseStart(tc TestCase) {
	// Silent case start
}

func (r *quietReporter) ReportCaseResult(outcome CaseOutcome) {
	// Only report failures
	if !outcome.Passed() {
		fmt.Fprintln(r.out, r.palette.Render(color.For(false, r.useColor),
			fmt.Sprintf("%s: exit status %d, 0/%d", outcome.Case.Name, outcome.ExitCode, outcome.Case.Weight)))
	}
}

func (r *quietReporter) ReportRunResult(report RunReport) {
	fmt.Fprintln(r.out, r.palette.Render(color.For(report.AllPassed(), r.useColor),
		fmt.Sprintf("%d/%d", report.TotalScore, report.MaxScore)))
}

func (r *quietReporter) ReportUnknownCase(selection string) {
	fmt.Fprintf(r.out, "%s does not exist\n", selection)
}

func (r *quietReporter) ReportSpawnFailure(err *SpawnError) {
	fmt.Fprintln(r.out, err.Error())
}

// NewJSONReporter creates a reporter that outputs JSON for machine consumption
func NewJSONReporter(out io.Writer) Reporter {
	return &jsonReporter{out: out}
}

// jsonReporter stays silent until the run ends and then prints one document
type jsonReporter struct {
	out io.Writer
}

// jsonError is printed instead of a report when a run ends without one
type jsonError struct {
	Error     string   `json:"error"`
	Selection string   `json:"selection,omitempty"`
	Argv      []string `json:"argv,omitempty"`
}

func (r *jsonReporter) ReportStart(selection string, cases []TestCase, opts RunOptions) {
	// Silent
}

func (r *jsonReporter) ReportCaseStart(tc TestCase) {
	// Silent
}

func (r *jsonReporter) ReportCaseResult(outcome CaseOutcome) {
	// Silent
}

func (r *jsonReporter) ReportRunResult(report RunReport) {
	r.write(report)
}

func (r *jsonReporter) ReportUnknownCase(selection string) {
	r.write(jsonError{
		Error:     fmt.Sprintf("%s does not exist", selection),
		Selection: selection,
	})
}

func (r *jsonReporter) ReportSpawnFailure(err *SpawnError) {
	r.write(jsonError{Error: err.Error(), Argv: err.Argv})
}

func (r *jsonReporter) write(v interface{}) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(r.out, `{"error": "Failed to marshal results: %v"}`+"\n", err)
		return
	}
	fmt.Fprintln(r.out, string(jsonData))
}
