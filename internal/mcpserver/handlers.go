package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"fixrun/internal/runner"
	"fixrun/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleListCases handles the fixture_list_cases tool
func (s *Server) handleListCases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := struct {
		Cases    []runner.TestCase `json:"cases"`
		MaxScore int               `json:"max_score"`
	}{
		Cases:    s.catalog.Cases(),
		MaxScore: s.catalog.MaxScore(),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format catalog: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleRun handles the fixture_run tool
func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	selection := runner.AllTestCases
	if name, ok := args["case"].(string); ok && name != "" {
		selection = name
	}

	opts := s.defaults
	if verbosity, ok := args["verbosity"].(float64); ok {
		if verbosity < 0 || verbosity > runner.MaxVerbosity || verbosity != float64(int(verbosity)) {
			return mcp.NewToolResultError(fmt.Sprintf("verbosity must be an integer between 0 and %d", runner.MaxVerbosity)), nil
		}
		opts.Verbosity = int(verbosity)
	}
	if valgrind, ok := args["valgrind"].(bool); ok {
		opts.UseWrapper = valgrind
	}
	if err := runner.ValidateOptions(opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	logging.Info(subsystem, "Running %q via %s", selection, toolRun)

	// Reporter output is dropped; the report itself is the tool result
	r := runner.NewRunner(s.catalog, s.executor, runner.NewJSONReporter(io.Discard))
	report, err := r.Run(ctx, selection, opts)
	if err != nil {
		if errors.Is(err, runner.ErrUnknownCase) {
			return mcp.NewToolResultError(fmt.Sprintf("%s does not exist", selection)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format run report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
