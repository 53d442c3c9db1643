package constants

import "testing"

func TestUnitName(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		expected string
	}{
		{"worker", "shipit-worker", "shipit-worker.service"},
		{"other service", "buildbot", "buildbot.service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitName(tt.service)
			if got != tt.expected {
				t.Errorf("UnitName(%q) = %q, want %q", tt.service, got, tt.expected)
			}
		})
	}
}

func TestConstants(t *testing.T) {
	if RelayHost != "relay-cn.aosc.io" {
		t.Errorf("RelayHost = %q, want relay-cn.aosc.io", RelayHost)
	}
	if RemoteUser != "root" {
		t.Errorf("RemoteUser = %q, want root", RemoteUser)
	}
	if ServiceName != "shipit-worker" {
		t.Errorf("ServiceName = %q, want shipit-worker", ServiceName)
	}
	if ServerListFile != "servers.list" {
		t.Errorf("ServerListFile = %q, want servers.list", ServerListFile)
	}
	if BackendOpenSSH == BackendNative {
		t.Error("backend names must differ")
	}
}
