package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"fixrun/internal/runner"
	"fixrun/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	subsystem = "MCPServer"

	serverName = "fixrun"

	toolListCases = "fixture_list_cases"
	toolRun       = "fixture_run"
)

// Options configures a Server
type Options struct {
	// Catalog is the catalog runs resolve against
	Catalog *runner.Catalog
	// Defaults are the run options each tool call starts from
	Defaults runner.RunOptions
	// Version is advertised in the server info
	Version string
	// SubjectOutput receives the subject programs' stdout and stderr.
	// Nil discards it.
	SubjectOutput io.Writer
	// Executor overrides the process executor
	Executor runner.Executor
}

// Server serves the harness tools over MCP
type Server struct {
	catalog   *runner.Catalog
	defaults  runner.RunOptions
	executor  runner.Executor
	mcpServer *server.MCPServer

	// runMu serializes runs; two subjects never run at once
	runMu sync.Mutex
}

// NewServer creates a server with all harness tools registered
func NewServer(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := runner.ValidateOptions(opts.Defaults); err != nil {
		return nil, fmt.Errorf("invalid default run options: %w", err)
	}

	version := opts.Version
	if version == "" {
		version = "dev"
	}

	executor := opts.Executor
	if executor == nil {
		// stdin stays closed: the transport owns it
		executor = runner.NewProcessExecutor(nil, opts.SubjectOutput, opts.SubjectOutput)
	}

	s := &Server{
		catalog:  opts.Catalog,
		defaults: opts.Defaults,
		executor: executor,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)
	s.mcpServer.AddTools(s.tools()...)

	return s, nil
}

// tools returns the tool definitions bound to their handlers
func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool(toolListCases,
				mcp.WithDescription("List the registered fixture test cases with their fixtures and weights"),
			),
			Handler: s.handleListCases,
		},
		{
			Tool: mcp.NewTool(toolRun,
				mcp.WithDescription("Run one test case, or every case with \"allTestCases\", and return the scored report"),
				mcp.WithString("case",
					mcp.Description("Test case name or \"allTestCases\" (default)"),
				),
				mcp.WithNumber("verbosity",
					mcp.Description(fmt.Sprintf("Verbosity forwarded to the subject program, 0 to %d", runner.MaxVerbosity)),
					mcp.Min(0),
					mcp.Max(runner.MaxVerbosity),
				),
				mcp.WithBoolean("valgrind",
					mcp.Description("Run every case under the memory-check wrapper"),
					mcp.DefaultBool(false),
				),
			),
			Handler: s.handleRun,
		},
	}
}

// MCPServer returns the underlying protocol server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over in and out until ctx is cancelled or
// in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info(subsystem, "Serving %d tools on stdio", len(s.tools()))

	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	return nil
}

// ServeSSE serves the tools over SSE on addr until ctx is cancelled
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(
		s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
	)

	errCh := make(chan error, 1)
	go func() {
		logging.Info(subsystem, "Serving %d tools on http://%s/sse", len(s.tools()), addr)
		errCh <- sseServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("SSE transport failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		if err := sseServer.Shutdown(context.Background()); err != nil {
			logging.Warn(subsystem, "SSE shutdown: %v", err)
		}
		return nil
	}
}

// Start serves on stdio using the process streams
func (s *Server) Start(ctx context.Context) error {
	return s.ServeStdio(ctx, os.Stdin, os.Stdout)
}
