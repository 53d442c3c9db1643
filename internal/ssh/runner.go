package ssh

import (
	"context"
	"fmt"
)

// Runner runs one command on the relay host through the given port.
// Implementations never attach local standard input to the remote command.
type Runner interface {
	Run(ctx context.Context, port, command string) error
}

// ExitError reports a remote command (or ssh itself) exiting non-zero
type ExitError struct {
	exitStatus int
}

// NewExitError returns an ExitError with the given status
func NewExitError(status int) *ExitError {
	return &ExitError{exitStatus: status}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.exitStatus)
}

func (e *ExitError) ExitStatus() int {
	return e.exitStatus
}
