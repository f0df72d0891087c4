package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// processExecutor runs subject programs as child processes
type processExecutor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewProcessExecutor creates an executor wiring the children's standard
// streams to the given reader and writers. A nil stream is connected to the
// null device.
func NewProcessExecutor(stdin io.Reader, stdout, stderr io.Writer) Executor {
	return &processExecutor{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// NewInheritingExecutor creates an executor whose children share the
// runner's own standard streams.
func NewInheritingExecutor() Executor {
	return NewProcessExecutor(os.Stdin, os.Stdout, os.Stderr)
}

// Execute starts argv and blocks until it exits. Failing to start the
// process yields SpawnFailed; everything after a successful start is a
// Completed result, with -1 for terminations that carry no exit code.
func (e *processExecutor) Execute(ctx context.Context, argv []string) ExecResult {
	if len(argv) == 0 {
		return SpawnFailed(fmt.Errorf("empty command"))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Start(); err != nil {
		return SpawnFailed(err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ExitCode is -1 when the process was killed by a signal
			return Completed(exitErr.ExitCode())
		}
		return Completed(-1)
	}

	return Completed(0)
}
