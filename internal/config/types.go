package config

import "github.com/AOSC-Dev/shipit-fleet/internal/constants"

// Settings represents ~/.config/shipit-fleet/config.yaml
type Settings struct {
	RelayHost     string `yaml:"relay_host"`
	User          string `yaml:"user"`
	DeployPath    string `yaml:"deploy_path"`
	Service       string `yaml:"service"`
	KeysScriptURL string `yaml:"keys_script_url"`
	// Backend selects how commands reach the relay: "openssh" runs the ssh
	// binary, "native" uses the built-in client.
	Backend   string `yaml:"backend"`
	SSHBinary string `yaml:"ssh_binary,omitempty"`
	KeyPath   string `yaml:"key_path,omitempty"`
	// TimeoutSeconds bounds connection setup only. Zero means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// DefaultSettings returns the settings used when no config file exists
func DefaultSettings() *Settings {
	return &Settings{
		RelayHost:     constants.RelayHost,
		User:          constants.RemoteUser,
		DeployPath:    constants.DeployPath,
		Service:       constants.ServiceName,
		KeysScriptURL: constants.KeysScriptURL,
		Backend:       constants.BackendOpenSSH,
		SSHBinary:     constants.SSHBinary,
	}
}

// Target returns the user@host string passed to ssh
func (s *Settings) Target() string {
	return s.User + "@" + s.RelayHost
}
