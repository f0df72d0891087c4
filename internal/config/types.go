package config

// Verbosity forwarding conventions understood by subject programs.
const (
	// VerbosityModeFlag forwards a presence-only -v when verbosity is above zero.
	VerbosityModeFlag = "flag"
	// VerbosityModeLevel forwards -v followed by the numeric level.
	VerbosityModeLevel = "level"
)

// FixrunConfig is the top-level configuration structure for fixrun.
type FixrunConfig struct {
	Program       string `yaml:"program,omitempty"`       // Subject program invoked once per case
	FixtureDir    string `yaml:"fixtureDir,omitempty"`    // Root directory fixture paths are joined to
	Wrapper       string `yaml:"wrapper,omitempty"`       // Memory-check wrapper invocation name
	VerbosityMode string `yaml:"verbosityMode,omitempty"` // "flag" or "level"
	CatalogFile   string `yaml:"catalogFile,omitempty"`   // Optional YAML catalog replacing the built-in one
	Color         bool   `yaml:"color,omitempty"`
	LogLevel      string `yaml:"logLevel,omitempty"`
}
