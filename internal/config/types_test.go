package config

import (
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.RelayHost != "relay-cn.aosc.io" {
		t.Errorf("expected relay relay-cn.aosc.io, got %s", s.RelayHost)
	}

	if s.User != "root" {
		t.Errorf("expected user root, got %s", s.User)
	}

	if s.Service != "shipit-worker" {
		t.Errorf("expected service shipit-worker, got %s", s.Service)
	}

	if s.Backend != "openssh" {
		t.Errorf("expected backend openssh, got %s", s.Backend)
	}

	if s.TimeoutSeconds != 0 {
		t.Errorf("expected no timeout by default, got %d", s.TimeoutSeconds)
	}
}

func TestSettingsTarget(t *testing.T) {
	s := DefaultSettings()
	if got := s.Target(); got != "root@relay-cn.aosc.io" {
		t.Errorf("Target() = %q, want root@relay-cn.aosc.io", got)
	}
}
