package ssh

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// NativeRunner runs remote commands with the built-in SSH client, opening
// one connection per command.
type NativeRunner struct {
	Host    string
	User    string
	KeyPath string
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewNativeRunner creates a runner for user@host
func NewNativeRunner(user, host, keyPath string) *NativeRunner {
	return &NativeRunner{
		Host:    host,
		User:    user,
		KeyPath: keyPath,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run connects through port, runs command and disconnects
func (r *NativeRunner) Run(ctx context.Context, port, command string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}

	client := NewClient(r.Host, r.User, portNum, r.KeyPath, WithTimeout(r.Timeout))
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	return client.ExecStream(ctx, command, r.Stdout, r.Stderr)
}
