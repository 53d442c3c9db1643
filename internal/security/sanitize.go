package security

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// unixUserRegex validates Unix usernames
	// Standard POSIX username rules
	// Length: 1-32 characters
	unixUserRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

	// hostnameRegex validates DNS hostnames and IPv4 literals
	hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

	// unitNameRegex validates systemd unit names without the type suffix
	unitNameRegex = regexp.MustCompile(`^[a-zA-Z0-9:_.@-]+$`)

	// remotePathRegex validates absolute remote directories
	remotePathRegex = regexp.MustCompile(`^/([a-zA-Z0-9_.-]+(/[a-zA-Z0-9_.-]+)*)?/?$`)

	// shellSafeRegex matches words that need no quoting in a POSIX shell
	shellSafeRegex = regexp.MustCompile(`^[a-zA-Z0-9_./:@%+=,-]+$`)

	// sensitiveQueryKeys are masked by SanitizeCommandForLog
	sensitiveQueryKeys = []string{
		"token=",
		"access_token=",
		"secret=",
	}
)

// ValidateUnixUser validates a Unix username
func ValidateUnixUser(user string) error {
	if user == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(user) > 32 {
		return fmt.Errorf("username too long (max 32 characters)")
	}
	if !unixUserRegex.MatchString(user) {
		return fmt.Errorf("username must start with a lowercase letter or underscore, followed by lowercase letters, numbers, underscores, or hyphens")
	}
	return nil
}

// ValidateHostname validates the relay hostname
func ValidateHostname(host string) error {
	if host == "" {
		return fmt.Errorf("hostname cannot be empty")
	}
	if len(host) > 253 {
		return fmt.Errorf("hostname too long (max 253 characters)")
	}
	if !hostnameRegex.MatchString(host) {
		return fmt.Errorf("hostname must contain only letters, numbers, hyphens, and dots")
	}
	return nil
}

// ValidateUnitName validates a systemd service name such as "shipit-worker"
func ValidateUnitName(name string) error {
	if name == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if len(name) > 256 {
		return fmt.Errorf("service name too long (max 256 characters)")
	}
	if strings.HasSuffix(name, ".service") {
		return fmt.Errorf("service name must not include the .service suffix")
	}
	if !unitNameRegex.MatchString(name) {
		return fmt.Errorf("service name contains invalid characters")
	}
	return nil
}

// ValidateRemotePath validates the deployment directory on the servers.
// It must be absolute and free of parent traversal.
func ValidateRemotePath(path string) error {
	if path == "" {
		return fmt.Errorf("remote path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("remote path must be absolute, got: %s", path)
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("remote path cannot contain path traversal (..): %s", path)
	}
	if !remotePathRegex.MatchString(path) {
		return fmt.Errorf("remote path contains invalid characters: %s", path)
	}
	return nil
}

// ValidateScriptURL validates the URL of a script piped into a remote shell
func ValidateScriptURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("script URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid script URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("script URL must use https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("script URL has no host")
	}
	return nil
}

// ShellEscape escapes a string for safe use in shell commands by wrapping it
// in single quotes and escaping any internal single quotes using the POSIX
// pattern: ' → '\''
func ShellEscape(s string) string {
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// ShellQuote returns s unchanged when it is a plain shell word and
// ShellEscape(s) otherwise.
func ShellQuote(s string) string {
	if shellSafeRegex.MatchString(s) {
		return s
	}
	return ShellEscape(s)
}

// SanitizeCommandForLog masks credentials embedded in URLs before a command
// is printed in verbose mode.
func SanitizeCommandForLog(cmd string) string {
	fields := strings.Split(cmd, " ")
	for i, field := range fields {
		fields[i] = maskURLUserinfo(field)
	}
	result := strings.Join(fields, " ")

	for _, key := range sensitiveQueryKeys {
		searchFrom := 0
		for {
			idx := strings.Index(result[searchFrom:], key)
			if idx == -1 {
				break
			}
			valueStart := searchFrom + idx + len(key)
			valueEnd := findValueEnd(result, valueStart)
			masked := "****"
			result = result[:valueStart] + masked + result[valueEnd:]
			searchFrom = valueStart + len(masked)
		}
	}

	return result
}

// maskURLUserinfo hides the password part of user:pass@host URLs
func maskURLUserinfo(word string) string {
	schemeIdx := strings.Index(word, "://")
	if schemeIdx == -1 {
		return word
	}
	rest := word[schemeIdx+3:]
	at := strings.Index(rest, "@")
	slash := strings.Index(rest, "/")
	if at == -1 || (slash != -1 && slash < at) {
		return word
	}
	userinfo := rest[:at]
	colon := strings.Index(userinfo, ":")
	if colon == -1 {
		return word
	}
	return word[:schemeIdx+3] + userinfo[:colon+1] + "****" + rest[at:]
}

// findValueEnd finds where a query value ends
func findValueEnd(s string, start int) int {
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '&', ' ', '\t', '\n', '\'', '"':
			return i
		}
	}
	return len(s)
}
