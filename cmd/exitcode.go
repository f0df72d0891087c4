package cmd

import (
	"errors"
	"fmt"
)

// Process exit statuses
const (
	// ExitSuccess means every selected case passed
	ExitSuccess = 0
	// ExitCaseFailure means at least one case failed
	ExitCaseFailure = 1
	// ExitRuntimeError covers unknown selections, spawn failures and
	// configuration or usage errors
	ExitRuntimeError = 2
)

// exitError carries the exit status of a failed command. Reported errors
// were already printed by a reporter and are not printed again.
type exitError struct {
	code     int
	reported bool
	err      error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// runtimeError wraps err with ExitRuntimeError
func runtimeError(err error, reported bool) error {
	return &exitError{code: ExitRuntimeError, reported: reported, err: err}
}

// caseFailure returns the error for a run that completed with failures
func caseFailure(failed, total int) error {
	return &exitError{
		code:     ExitCaseFailure,
		reported: true,
		err:      fmt.Errorf("%d of %d test case(s) failed", failed, total),
	}
}

// exitCodeFor maps an error returned by a command onto a process exit status.
// Errors without an explicit status come from flag parsing or setup and map
// to ExitRuntimeError.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitRuntimeError
}

// isReported reports whether err was already printed
func isReported(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr) && exitErr.reported
}
