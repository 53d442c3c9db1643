package constants

// Relay and remote account used for every fleet operation
const (
	RelayHost  = "relay-cn.aosc.io"
	RemoteUser = "root"
)

// Worker deployment on each server
const (
	DeployPath  = "/root/shipit"
	ServiceName = "shipit-worker"
)

// KeysScriptURL installs the contributor public keys on a server.
const KeysScriptURL = "https://raw.githubusercontent.com/AOSC-Dev/dev-pubkeys/master/install.sh"

// Local inputs
const (
	ServerListFile = "servers.list"
	SSHBinary      = "ssh"
)

// Backends for running remote commands
const (
	BackendOpenSSH = "openssh"
	BackendNative  = "native"
)

// DefaultSSHPort is used by the native backend when a port is not given.
const DefaultSSHPort = 22

// UnitName returns the systemd unit name for a service.
func UnitName(service string) string {
	return service + ".service"
}

