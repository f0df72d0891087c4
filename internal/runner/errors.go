package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCase is returned when a selection names no registered case.
var ErrUnknownCase = errors.New("unknown test case")

// SpawnError reports a subject invocation that could not be started.
type SpawnError struct {
	// Case is the name of the case being executed
	Case string
	// Argv is the invocation that failed
	Argv []string
	// Err is the underlying cause
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("call of '%s' failed: %v", strings.Join(e.Argv, " "), e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsSpawnError reports whether err is or wraps a *SpawnError.
func IsSpawnError(err error) bool {
	var spawnErr *SpawnError
	return errors.As(err, &spawnErr)
}
