package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/AOSC-Dev/shipit-fleet/internal/constants"
	"github.com/AOSC-Dev/shipit-fleet/internal/security"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Version is set at build time
	Version = "dev"

	// Global flags
	verbose     bool
	noColor     bool
	cfgFile     string
	serversFile string
)

var rootCmd = &cobra.Command{
	Use:   "shipit-fleet <operation>",
	Short: "Run shipit-worker maintenance on every build server",
	Long: `shipit-fleet reads servers.list and, for each server, runs one
maintenance command over SSH through the relay host.

Each line of servers.list holds a hostname and the relay port that
forwards to that server:

  loongson3-01 2201
  riscv64-01   2202

Operations:
  restart       Pull the worker checkout and restart shipit-worker
  stop          Stop shipit-worker
  update-keys   Install the contributor public keys
  status        Show whether shipit-worker is active

Servers are processed one at a time, in file order. A failing server is
reported and the run continues with the next one.

Environment Variables:
  SHIPIT_FLEET_RELAY                Relay host (default relay-cn.aosc.io)
  SHIPIT_FLEET_USER                 Remote user (default root)
  SHIPIT_FLEET_BACKEND              openssh or native
  SHIPIT_FLEET_SSH_KEY              Private key content (native backend)
  SHIPIT_FLEET_KNOWN_HOSTS          known_hosts content (native backend)
  SHIPIT_FLEET_SKIP_HOST_KEY_CHECK  Skip host key verification (native backend)`,
	Example: `  shipit-fleet restart
  shipit-fleet stop --servers staging.list
  shipit-fleet update-keys --backend native`,
	Args:          cobra.ExactArgs(1),
	RunE:          runOperation,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		PrintError("%v", err)
		return err
	}
	return nil
}

// GetRootCmd returns the root command, used for documentation generation
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed logs")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Settings file (default: ~/.config/shipit-fleet/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&serversFile, "servers", "f", constants.ServerListFile, "Server list file")

	rootCmd.SetVersionTemplate(`shipit-fleet {{.Version}}
`)
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// GetConfigFile returns the settings file path
func GetConfigFile() string {
	return cfgFile
}

// UseColor reports whether status output should be coloured
func UseColor() bool {
	if noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintError prints a formatted error message
func PrintError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "❌ "+msg+"\n", args...)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	fmt.Printf("✅ "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	fmt.Printf("ℹ️  "+msg+"\n", args...)
}

// PrintVerbose prints a message to w only in verbose mode
func PrintVerbose(w io.Writer, msg string, args ...interface{}) {
	if IsVerbose() {
		fmt.Fprintf(w, "   "+msg+"\n", args...)
	}
}

// PrintVerboseCommand prints a command in verbose mode with sensitive values masked
func PrintVerboseCommand(w io.Writer, command string) {
	if IsVerbose() {
		fmt.Fprintf(w, "   Running: %s\n", security.SanitizeCommandForLog(command))
	}
}
