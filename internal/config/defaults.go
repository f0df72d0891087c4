package config

// GetDefaultConfig returns the configuration used when no file overrides it.
// The values mirror the layout the regression suite ships with.
func GetDefaultConfig() FixrunConfig {
	return FixrunConfig{
		Program:       "./interpreter",
		FixtureDir:    "./testcases",
		Wrapper:       "valgrind",
		VerbosityMode: VerbosityModeFlag,
		LogLevel:      "warn",
	}
}
