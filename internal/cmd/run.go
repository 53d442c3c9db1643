package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/AOSC-Dev/shipit-fleet/internal/config"
	"github.com/AOSC-Dev/shipit-fleet/internal/constants"
	"github.com/AOSC-Dev/shipit-fleet/internal/fleet"
	"github.com/AOSC-Dev/shipit-fleet/internal/security"
	"github.com/AOSC-Dev/shipit-fleet/internal/ssh"
	"github.com/spf13/cobra"
)

var (
	backendFlag string
	relayFlag   string
	userFlag    string
	keyFlag     string
	timeoutFlag int
)

func init() {
	rootCmd.Flags().StringVar(&backendFlag, "backend", "", "How to reach the relay: openssh or native")
	rootCmd.Flags().StringVar(&relayFlag, "relay", "", "Relay host (overrides settings)")
	rootCmd.Flags().StringVarP(&userFlag, "user", "u", "", "Remote user (overrides settings)")
	rootCmd.Flags().StringVarP(&keyFlag, "key", "k", "", "SSH private key path (native backend)")
	rootCmd.Flags().IntVar(&timeoutFlag, "timeout", 0, "Connection timeout in seconds (0: none)")
}

func runOperation(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	list, err := os.Open(serversFile)
	if err != nil {
		return fmt.Errorf("failed to open server list: %w", err)
	}
	defer list.Close()

	out := cmd.OutOrStdout()
	runner := newRunner(settings, out, cmd.ErrOrStderr())

	dispatcher := fleet.NewDispatcher(runner, commandsFrom(settings), out)
	dispatcher.SetColor(UseColor())
	dispatcher.OnCommand(func(entry fleet.ServerEntry, command string) {
		PrintVerboseCommand(out, describeCommand(settings, entry.Port, command))
	})

	summary, err := dispatcher.Run(cmd.Context(), args[0], list)
	if err != nil {
		return err
	}

	PrintVerbose(out, "%d servers: %d succeeded, %d failed", summary.Total, summary.Succeeded, len(summary.Failed))
	for _, entry := range summary.Failed {
		PrintVerbose(out, "  failed: %s (line %d, port %s)", entry.Hostname, entry.Line, entry.Port)
	}
	return nil
}

// loadSettings loads the settings file and applies command-line overrides
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.LoadSettings(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		settings.Backend = backendFlag
	}
	if flags.Changed("relay") {
		settings.RelayHost = relayFlag
	}
	if flags.Changed("user") {
		settings.User = userFlag
	}
	if flags.Changed("key") {
		settings.KeyPath = keyFlag
	}
	if flags.Changed("timeout") {
		settings.TimeoutSeconds = timeoutFlag
	}

	if errs := config.ValidateSettings(settings); errs.HasErrors() {
		return nil, fmt.Errorf("invalid settings: %w", errs)
	}
	return settings, nil
}

func commandsFrom(s *config.Settings) fleet.Commands {
	return fleet.Commands{
		DeployPath:    s.DeployPath,
		Service:       s.Service,
		KeysScriptURL: s.KeysScriptURL,
	}
}

// newRunner builds the runner for the configured backend
func newRunner(s *config.Settings, stdout, stderr io.Writer) ssh.Runner {
	timeout := time.Duration(s.TimeoutSeconds) * time.Second

	if s.Backend == constants.BackendNative {
		runner := ssh.NewNativeRunner(s.User, s.RelayHost, s.KeyPath)
		runner.Timeout = timeout
		runner.Stdout = stdout
		runner.Stderr = stderr
		return runner
	}

	runner := ssh.NewCommandRunner(s.SSHBinary, s.User, s.RelayHost)
	runner.ConnectTimeout = timeout
	runner.Stdout = stdout
	runner.Stderr = stderr
	return runner
}

// describeCommand renders what will run for one entry, for verbose output
func describeCommand(s *config.Settings, port, command string) string {
	if s.Backend == constants.BackendNative {
		return fmt.Sprintf("[native] %s -p %s %s", s.Target(), security.ShellQuote(port), security.ShellEscape(command))
	}

	runner := ssh.NewCommandRunner(s.SSHBinary, s.User, s.RelayHost)
	runner.ConnectTimeout = time.Duration(s.TimeoutSeconds) * time.Second
	args := runner.Args(port, command)

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, runner.Binary)
	for _, arg := range args {
		parts = append(parts, security.ShellQuote(arg))
	}
	return strings.Join(parts, " ")
}
