package config

import (
	"fmt"
	"strings"

	"github.com/AOSC-Dev/shipit-fleet/internal/constants"
	"github.com/AOSC-Dev/shipit-fleet/internal/security"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors holds multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ValidateSettings validates the settings. Server list entries are not
// covered here; they are passed to ssh untouched.
func ValidateSettings(s *Settings) ValidationErrors {
	var errors ValidationErrors

	check := func(field string, err error) {
		if err != nil {
			errors = append(errors, ValidationError{Field: field, Message: err.Error()})
		}
	}

	check("relay_host", security.ValidateHostname(s.RelayHost))
	check("user", security.ValidateUnixUser(s.User))
	check("deploy_path", security.ValidateRemotePath(s.DeployPath))
	check("service", security.ValidateUnitName(s.Service))
	check("keys_script_url", security.ValidateScriptURL(s.KeysScriptURL))

	switch s.Backend {
	case constants.BackendOpenSSH:
		if s.SSHBinary == "" {
			errors = append(errors, ValidationError{
				Field:   "ssh_binary",
				Message: "ssh binary is required for the openssh backend",
			})
		}
	case constants.BackendNative:
	default:
		errors = append(errors, ValidationError{
			Field:   "backend",
			Message: fmt.Sprintf("unsupported backend %q (use %s or %s)", s.Backend, constants.BackendOpenSSH, constants.BackendNative),
		})
	}

	if s.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "timeout_seconds",
			Message: "timeout_seconds must not be negative",
		})
	}

	return errors
}
