package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AOSC-Dev/shipit-fleet/internal/config"
	"gopkg.in/yaml.v3"
)

func TestConfigInitThenShow(t *testing.T) {
	t.Setenv(config.EnvRelay, "")
	t.Setenv(config.EnvUser, "")
	t.Setenv(config.EnvBackend, "")
	path := filepath.Join(t.TempDir(), "fleet", "config.yaml")

	if _, err := executeRoot(t, "config", "init", "--config", path, "--force=false"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("settings file mode = %o, want 600", info.Mode().Perm())
	}

	if _, err := executeRoot(t, "config", "init", "--config", path, "--force=false"); err == nil {
		t.Error("expected init to refuse overwriting without --force")
	}
	if _, err := executeRoot(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}

	t.Setenv(config.EnvRelay, "relay.example.org")
	out, err := executeRoot(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var shown config.Settings
	if err := yaml.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("config show output is not yaml: %v\n%s", err, out)
	}
	if shown.RelayHost != "relay.example.org" {
		t.Errorf("env override not shown, relay_host = %q", shown.RelayHost)
	}
	if shown.Service != "shipit-worker" {
		t.Errorf("service = %q, want shipit-worker", shown.Service)
	}
}

func TestOperationsCommand(t *testing.T) {
	settingsPath, _ := writeFleet(t, "")

	out, err := executeRoot(t, "operations", "--config", settingsPath)
	if err != nil {
		t.Fatalf("operations failed: %v", err)
	}

	for _, want := range []string{
		"restart      cd /root/shipit && git pull && systemctl restart shipit-worker.service",
		"stop         systemctl stop shipit-worker.service",
		"update-keys  curl -fsSL https://",
		"status       systemctl is-active shipit-worker.service",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}
