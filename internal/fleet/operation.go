package fleet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AOSC-Dev/shipit-fleet/internal/constants"
	"github.com/AOSC-Dev/shipit-fleet/internal/security"
)

// Operation is the action run on every server of the list
type Operation string

const (
	OpRestart    Operation = "restart"
	OpStop       Operation = "stop"
	OpUpdateKeys Operation = "update-keys"
	OpStatus     Operation = "status"
)

// ErrUnknownOperation is returned for an operation name outside Operations()
var ErrUnknownOperation = errors.New("unknown operation")

// Operations returns the known operations in display order
func Operations() []Operation {
	return []Operation{OpRestart, OpStop, OpUpdateKeys, OpStatus}
}

// OperationNames returns the known operation names joined by ", "
func OperationNames() string {
	names := make([]string, 0, len(Operations()))
	for _, op := range Operations() {
		names = append(names, string(op))
	}
	return strings.Join(names, ", ")
}

// ParseOperation resolves an operation name
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations() {
		if string(op) == name {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w %q (use one of: %s)", ErrUnknownOperation, name, OperationNames())
}

// Commands builds the remote command string of each operation
type Commands struct {
	DeployPath    string
	Service       string
	KeysScriptURL string
}

// DefaultCommands returns templates for the stock worker deployment
func DefaultCommands() Commands {
	return Commands{
		DeployPath:    constants.DeployPath,
		Service:       constants.ServiceName,
		KeysScriptURL: constants.KeysScriptURL,
	}
}

// For returns the remote command for op
func (c Commands) For(op Operation) (string, error) {
	unit := security.ShellQuote(constants.UnitName(c.Service))

	switch op {
	case OpRestart:
		return fmt.Sprintf("cd %s && git pull && systemctl restart %s",
			security.ShellQuote(c.DeployPath), unit), nil
	case OpStop:
		return "systemctl stop " + unit, nil
	case OpUpdateKeys:
		return fmt.Sprintf("curl -fsSL %s | sh", security.ShellQuote(c.KeysScriptURL)), nil
	case OpStatus:
		return "systemctl is-active " + unit, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownOperation, string(op))
	}
}

// Progress describes op in the progress line, e.g. "Restarting shipit-worker"
func (c Commands) Progress(op Operation) string {
	switch op {
	case OpRestart:
		return "Restarting " + c.Service
	case OpStop:
		return "Stopping " + c.Service
	case OpUpdateKeys:
		return "Updating contributor keys"
	case OpStatus:
		return "Checking " + c.Service
	default:
		return string(op)
	}
}

// Action describes op in the failure line, e.g. "restart shipit-worker"
func (c Commands) Action(op Operation) string {
	switch op {
	case OpRestart:
		return "restart " + c.Service
	case OpStop:
		return "stop " + c.Service
	case OpUpdateKeys:
		return "update contributor keys"
	case OpStatus:
		return "check " + c.Service
	default:
		return string(op)
	}
}
