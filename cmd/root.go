package cmd

import (
	"fmt"
	"os"

	"fixrun/internal/config"
	"fixrun/internal/runner"
	"fixrun/pkg/logging"

	"github.com/spf13/cobra"
)

const subsystem = "CLI"

// For mocking in tests
var (
	loadConfig  = config.LoadConfig
	newExecutor = runner.NewInheritingExecutor
)

// suiteFlags holds the root command flag values
type suiteFlags struct {
	color       bool
	program     string
	testcase    string
	verbosity   int
	valgrind    bool
	output      string
	catalogPath string
	reportDir   string
	scoreBar    bool
	debug       bool
	fixtureDir  string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	flags := &suiteFlags{}

	cmd := &cobra.Command{
		Use:   "fixrun",
		Short: "Replay fixture test cases against a program and score them",
		Long: `fixrun replays command fixtures against a subject program and scores
the run by exit status.

Every selected test case is started as "<program> -f testcases/<fixture>".
A case passes when the program exits with status 0 and is then awarded its
full weight; any other outcome scores zero. Cases run one after another and
a single tally line closes the run.

Exit status:
  0  every selected case passed
  1  at least one case failed
  2  unknown test case, program could not be started, or invalid setup

Example usage:
  fixrun                                   # Run every test case
  fixrun -t testcase-03-q-ops              # Run a single test case
  fixrun -c -v                             # Colored output, verbose subject
  fixrun --verbose=3 --valgrind            # Highest verbosity under valgrind
  fixrun -p ./build/interpreter -o json    # Other program, JSON report`,
		Args: cobra.NoArgs,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. failing cases, unknown test cases)
		SilenceUsage: true,
		// Errors are printed by Execute so reported ones are not printed twice
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.color, "color", "c", false, "Enable colored output")
	f.StringVarP(&flags.program, "program", "p", runner.DefaultProgram, "Subject program to test")
	f.StringVarP(&flags.testcase, "testcase", "t", runner.AllTestCases, "Test case to run, or allTestCases")
	f.IntVarP(&flags.verbosity, "verbose", "v", 0, fmt.Sprintf("Verbosity forwarded to the program (bare -v is 1, -v=N sets 0-%d)", runner.MaxVerbosity))
	f.Lookup("verbose").NoOptDefVal = "1"
	f.BoolVar(&flags.valgrind, "valgrind", false, "Run every case under the memory-check wrapper")

	f.StringVarP(&flags.output, "output", "o", string(runner.OutputFormatText), "Output format (text, quiet, json)")
	f.StringVar(&flags.catalogPath, "catalog", "", "YAML catalog replacing the built-in test cases")
	f.StringVar(&flags.fixtureDir, "fixture-dir", runner.DefaultFixtureDir, "Directory holding the fixtures")
	f.StringVar(&flags.reportDir, "report", "", "Directory to save the JSON run report in")
	f.BoolVar(&flags.scoreBar, "score-bar", false, "Draw a score bar under the tally (text output)")
	f.BoolVar(&flags.debug, "debug", false, "Enable debug logging on stderr")

	_ = cmd.RegisterFlagCompletionFunc("testcase", completeTestcaseFlag)
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "quiet", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSelfUpdateCmd())
	cmd.AddCommand(newMCPServerCmd())

	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "fixrun version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil && !isReported(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	os.Exit(exitCodeFor(err))
}

// runSuite resolves the selection, runs it and maps the outcome onto an
// exit status.
func runSuite(cmd *cobra.Command, flags *suiteFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		initLogging(flags.debug, "")
		return runtimeError(fmt.Errorf("failed to load configuration: %w", err), false)
	}
	initLogging(flags.debug, cfg.LogLevel)

	opts, catalogPath := resolveRunOptions(cmd, flags, cfg)
	if err := runner.ValidateOptions(opts); err != nil {
		return runtimeError(err, false)
	}

	catalog, err := runner.LoadCatalog(catalogPath)
	if err != nil {
		return runtimeError(err, false)
	}

	reporter, err := runner.NewReporter(runner.OutputFormat(flags.output), cmd.OutOrStdout(), opts.Color, flags.scoreBar)
	if err != nil {
		return runtimeError(err, false)
	}

	r := runner.NewRunner(catalog, newExecutor(), reporter)
	report, err := r.Run(cmd.Context(), flags.testcase, opts)
	if err != nil {
		return runtimeError(err, true)
	}

	if flags.reportDir != "" {
		path, err := runner.SaveReport(flags.reportDir, *report)
		if err != nil {
			return runtimeError(err, false)
		}
		logging.Info(subsystem, "Run report saved to %s", path)
	}

	if report.Failed > 0 {
		return caseFailure(report.Failed, len(report.Outcomes))
	}
	return nil
}

// resolveRunOptions layers explicitly set flags over the configuration and
// returns the run options together with the catalog path.
func resolveRunOptions(cmd *cobra.Command, flags *suiteFlags, cfg config.FixrunConfig) (runner.RunOptions, string) {
	opts := runner.DefaultRunOptions()
	opts.Program = cfg.Program
	opts.FixtureDir = cfg.FixtureDir
	opts.Wrapper = cfg.Wrapper
	opts.VerbosityMode = cfg.VerbosityMode
	opts.Color = cfg.Color
	catalogPath := cfg.CatalogFile

	f := cmd.Flags()
	if f.Changed("program") {
		opts.Program = flags.program
	}
	if f.Changed("fixture-dir") {
		opts.FixtureDir = flags.fixtureDir
	}
	if f.Changed("color") {
		opts.Color = flags.color
	}
	if f.Changed("catalog") {
		catalogPath = flags.catalogPath
	}
	opts.Verbosity = flags.verbosity
	opts.UseWrapper = flags.valgrind

	return opts, catalogPath
}

// initLogging sends diagnostics to stderr; the configured level applies
// unless --debug is set.
func initLogging(debug bool, configured string) {
	level := logging.LevelWarn
	if configured != "" {
		if parsed, err := logging.ParseLevel(configured); err == nil {
			level = parsed
		}
	}
	if debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
}

// completeTestcaseFlag provides shell completion for the testcase flag by
// loading the catalog in effect
func completeTestcaseFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	catalogPath := ""
	if cfg, err := loadConfig(); err == nil {
		catalogPath = cfg.CatalogFile
	}
	if f := cmd.Flags().Lookup("catalog"); f != nil && f.Changed {
		catalogPath = f.Value.String()
	}

	catalog, err := runner.LoadCatalog(catalogPath)
	if err != nil {
		// Return empty completion on error
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}

	return append([]string{runner.AllTestCases}, catalog.Names()...), cobra.ShellCompDirectiveNoFileComp
}
