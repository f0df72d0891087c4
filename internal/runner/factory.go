package runner

import (
	"fmt"
	"io"
)

// OutputFormat selects the reporter used for a run
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatQuiet OutputFormat = "quiet"
	OutputFormatJSON  OutputFormat = "json"
)

// DefaultRunOptions returns the options used when nothing overrides them
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Program:       DefaultProgram,
		FixtureDir:    DefaultFixtureDir,
		VerbosityMode: VerbosityModeFlag,
		Wrapper:       DefaultWrapper,
	}
}

// ValidateOptions validates run options before a run starts
func ValidateOptions(opts RunOptions) error {
	if opts.Program == "" {
		return fmt.Errorf("program must not be empty")
	}
	if opts.Verbosity < 0 || opts.Verbosity > MaxVerbosity {
		return fmt.Errorf("verbosity must be between 0 and %d, got %d", MaxVerbosity, opts.Verbosity)
	}
	switch opts.VerbosityMode {
	case VerbosityModeFlag, VerbosityModeLevel:
	default:
		return fmt.Errorf("invalid verbosity mode %q, must be %q or %q", opts.VerbosityMode, VerbosityModeFlag, VerbosityModeLevel)
	}
	if opts.UseWrapper && opts.Wrapper == "" {
		return fmt.Errorf("wrapper must be set when the memory-check wrapper is enabled")
	}
	return nil
}

// NewReporter creates the reporter for format writing to out
func NewReporter(format OutputFormat, out io.Writer, useColor, scoreBar bool) (Reporter, error) {
	switch format {
	case OutputFormatText, "":
		return NewConsoleReporter(out, useColor, scoreBar), nil
	case OutputFormatQuiet:
		return NewQuietReporter(out, useColor), nil
	case OutputFormatJSON:
		return NewJSONReporter(out), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q, must be one of: text, quiet, json", format)
	}
}

// LoadCatalog returns the catalog stored at path, or the built-in catalog
// when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	catalog, err := LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return catalog, nil
}
