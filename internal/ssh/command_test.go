package ssh

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestCommandRunner_Args(t *testing.T) {
	runner := NewCommandRunner("ssh", "root", "relay-cn.aosc.io")

	got := runner.Args("2201", "systemctl stop shipit-worker.service")
	want := []string{"-n", "root@relay-cn.aosc.io", "-p", "2201", "systemctl stop shipit-worker.service"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %q, want %q", got, want)
	}
}

func TestCommandRunner_ArgsWithTimeout(t *testing.T) {
	runner := NewCommandRunner("ssh", "root", "relay-cn.aosc.io")
	runner.ConnectTimeout = 15 * time.Second

	got := runner.Args("2202", "true")
	want := []string{"-n", "root@relay-cn.aosc.io", "-p", "2202", "-o", "ConnectTimeout=15", "true"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %q, want %q", got, want)
	}
}

func TestCommandRunner_ArgsKeepRawPort(t *testing.T) {
	runner := NewCommandRunner("", "root", "relay")
	if runner.Binary != "ssh" {
		t.Errorf("expected default binary ssh, got %q", runner.Binary)
	}

	got := runner.Args("", "true")
	if got[3] != "" {
		t.Errorf("expected empty port to be passed through, got %q", got[3])
	}
}

// fakeSSH writes a shell script standing in for the ssh binary. It echoes
// its arguments, reports whether stdin had data, and fails for port 2202.
func fakeSSH(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}
	script := `#!/bin/sh
echo "args: $*"
if read -r line; then
  echo "stdin: $line"
fi
if [ "$4" = "2202" ]; then
  echo "connection refused" >&2
  exit 255
fi
exit 0
`
	path := filepath.Join(t.TempDir(), "ssh")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake ssh: %v", err)
	}
	return path
}

func TestCommandRunner_RunSuccess(t *testing.T) {
	runner := NewCommandRunner(fakeSSH(t), "root", "relay-cn.aosc.io")
	var stdout, stderr bytes.Buffer
	runner.Stdout = &stdout
	runner.Stderr = &stderr

	if err := runner.Run(context.Background(), "2201", "systemctl stop shipit-worker.service"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "args: -n root@relay-cn.aosc.io -p 2201 systemctl stop shipit-worker.service") {
		t.Errorf("unexpected arguments: %s", out)
	}
	if strings.Contains(out, "stdin:") {
		t.Errorf("ssh must not receive standard input, got: %s", out)
	}
}

func TestCommandRunner_RunExitStatus(t *testing.T) {
	runner := NewCommandRunner(fakeSSH(t), "root", "relay-cn.aosc.io")
	var stdout, stderr bytes.Buffer
	runner.Stdout = &stdout
	runner.Stderr = &stderr

	err := runner.Run(context.Background(), "2202", "true")
	if err == nil {
		t.Fatal("expected error for failing ssh")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitStatus() != 255 {
		t.Errorf("ExitStatus() = %d, want 255", exitErr.ExitStatus())
	}
	if !strings.Contains(stderr.String(), "connection refused") {
		t.Errorf("expected stderr to be forwarded, got: %q", stderr.String())
	}
}

func TestCommandRunner_MissingBinary(t *testing.T) {
	runner := NewCommandRunner(filepath.Join(t.TempDir(), "no-such-ssh"), "root", "relay")
	runner.Stdout = &bytes.Buffer{}
	runner.Stderr = &bytes.Buffer{}

	err := runner.Run(context.Background(), "2201", "true")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("missing binary should not be reported as an exit status: %v", err)
	}
}

func TestMockRunner_RecordsCalls(t *testing.T) {
	mock := &MockRunner{}

	_ = mock.Run(context.Background(), "2201", "a")
	_ = mock.Run(context.Background(), "2202", "b")

	want := []MockCall{{Port: "2201", Command: "a"}, {Port: "2202", Command: "b"}}
	if !reflect.DeepEqual(mock.Calls, want) {
		t.Errorf("Calls = %+v, want %+v", mock.Calls, want)
	}
}
