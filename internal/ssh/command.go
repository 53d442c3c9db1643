package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// CommandRunner runs remote commands through the OpenSSH client binary, so
// ~/.ssh/config, the agent and default keys all apply.
type CommandRunner struct {
	Binary         string
	Destination    string // user@host
	ConnectTimeout time.Duration
	Stdout         io.Writer
	Stderr         io.Writer
}

// NewCommandRunner creates a runner for user@host using the given ssh binary
func NewCommandRunner(binary, user, host string) *CommandRunner {
	if binary == "" {
		binary = "ssh"
	}
	return &CommandRunner{
		Binary:      binary,
		Destination: user + "@" + host,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Args returns the ssh arguments used for one command.
// -n redirects ssh's stdin from /dev/null.
func (r *CommandRunner) Args(port, command string) []string {
	args := []string{"-n", r.Destination, "-p", port}
	if r.ConnectTimeout > 0 {
		args = append(args, "-o", fmt.Sprintf("ConnectTimeout=%d", int(r.ConnectTimeout.Seconds())))
	}
	return append(args, command)
}

// Run executes command on the relay through port and waits for it to finish
func (r *CommandRunner) Run(ctx context.Context, port, command string) error {
	cmd := exec.CommandContext(ctx, r.Binary, r.Args(port, command)...)
	cmd.Stdin = nil
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewExitError(exitErr.ExitCode())
	}
	return fmt.Errorf("failed to run %s: %w", r.Binary, err)
}
