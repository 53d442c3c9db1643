package ssh

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestNativeRunner_InvalidPort(t *testing.T) {
	runner := NewNativeRunner("root", "relay-cn.aosc.io", "")

	tests := []struct {
		name string
		port string
	}{
		{"empty", ""},
		{"not a number", "ssh"},
		{"extra field", "2201 extra"},
		{"zero", "0"},
		{"too large", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runner.Run(context.Background(), tt.port, "true")
			if err == nil {
				t.Fatalf("expected error for port %q", tt.port)
			}
			if !strings.Contains(err.Error(), "invalid port") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNativeRunner_CredentialErrorBeforeDial(t *testing.T) {
	t.Setenv(EnvSSHKey, "")
	runner := NewNativeRunner("root", "relay-cn.aosc.io", filepath.Join(t.TempDir(), "missing"))

	err := runner.Run(context.Background(), "2201", "true")
	if err == nil {
		t.Fatal("expected credential error")
	}
	if !strings.Contains(err.Error(), "failed to load credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}
