// Package mcpserver exposes the fixture harness as Model Context Protocol
// tools so that assistants can list the catalog and trigger runs.
//
// Two tools are registered:
//
//   - fixture_list_cases returns the catalog as JSON
//   - fixture_run runs a selection and returns the run report as JSON
//
// Runs are serialized. Subject program output is redirected away from the
// transport streams so it can never corrupt the protocol framing.
//
// The server speaks stdio by default and SSE when an address is given.
package mcpserver
