package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fixrun/internal/mcpserver"
	"fixrun/internal/runner"
	"fixrun/pkg/logging"

	"github.com/spf13/cobra"
)

type mcpServerFlags struct {
	catalogPath string
	program     string
	fixtureDir  string
	sseAddr     string
	debug       bool
}

func newMCPServerCmd() *cobra.Command {
	flags := &mcpServerFlags{}

	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the test cases as MCP tools",
		Long: `Runs an MCP server exposing the fixture harness to AI assistants.

Tools:
  fixture_list_cases - List the registered test cases
  fixture_run        - Run a test case (or allTestCases) and return the report

The server uses stdio transport unless --sse-addr is given. Subject program
output and diagnostics are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCPServer(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.catalogPath, "catalog", "", "YAML catalog replacing the built-in test cases")
	cmd.Flags().StringVarP(&flags.program, "program", "p", runner.DefaultProgram, "Subject program to test")
	cmd.Flags().StringVar(&flags.fixtureDir, "fixture-dir", runner.DefaultFixtureDir, "Directory holding the fixtures")
	cmd.Flags().StringVar(&flags.sseAddr, "sse-addr", "", "Serve over SSE on this address instead of stdio (e.g. localhost:8099)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging on stderr")

	return cmd
}

func runMCPServer(cmd *cobra.Command, flags *mcpServerFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return runtimeError(fmt.Errorf("failed to load configuration: %w", err), false)
	}
	// Logs must stay off stdout, the stdio transport owns it
	initLogging(flags.debug, cfg.LogLevel)

	defaults := runner.DefaultRunOptions()
	defaults.Program = cfg.Program
	defaults.FixtureDir = cfg.FixtureDir
	defaults.Wrapper = cfg.Wrapper
	defaults.VerbosityMode = cfg.VerbosityMode
	catalogPath := cfg.CatalogFile

	if cmd.Flags().Changed("program") {
		defaults.Program = flags.program
	}
	if cmd.Flags().Changed("fixture-dir") {
		defaults.FixtureDir = flags.fixtureDir
	}
	if cmd.Flags().Changed("catalog") {
		catalogPath = flags.catalogPath
	}

	catalog, err := runner.LoadCatalog(catalogPath)
	if err != nil {
		return runtimeError(err, false)
	}

	server, err := mcpserver.NewServer(mcpserver.Options{
		Catalog:       catalog,
		Defaults:      defaults,
		Version:       cmd.Root().Version,
		SubjectOutput: os.Stderr,
	})
	if err != nil {
		return runtimeError(fmt.Errorf("failed to create MCP server: %w", err), false)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if flags.sseAddr != "" {
		return serveOrFail(server.ServeSSE(ctx, flags.sseAddr))
	}

	logging.Info(subsystem, "Starting fixrun MCP server (stdio transport)")
	return serveOrFail(server.ServeStdio(ctx, os.Stdin, os.Stdout))
}

func serveOrFail(err error) error {
	if err != nil && err != context.Canceled {
		return runtimeError(fmt.Errorf("MCP server error: %w", err), false)
	}
	return nil
}
