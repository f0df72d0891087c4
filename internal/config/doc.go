// Package config provides configuration management for fixrun.
//
// Configuration is layered: built-in defaults are overridden by the user file
// (~/.config/fixrun/config.yaml), which is in turn overridden by the project
// file (./.fixrun/config.yaml). Command line flags win over all of them.
//
//	program: ./interpreter
//	fixtureDir: ./testcases
//	wrapper: valgrind
//	verbosityMode: flag   # "flag" forwards -v, "level" forwards -v <n>
//	catalogFile: ./testcases/catalog.yaml
//	color: true
//	logLevel: warn
//
// String values support environment variable expansion, including defaults:
//
//	program: "${SUBJECT_BIN:-./interpreter}"
package config
