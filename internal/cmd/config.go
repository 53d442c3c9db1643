package cmd

import (
	"fmt"
	"os"

	"github.com/AOSC-Dev/shipit-fleet/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the settings file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long: `Prints the settings after applying the settings file and the
SHIPIT_FLEET_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Long: `Writes the default settings to ~/.config/shipit-fleet/config.yaml
(or the --config path) so they can be edited.

Example:
  shipit-fleet config init
  shipit-fleet config init --config ./fleet.yaml --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var forceInit bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing settings file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := GetConfigFile()
	if path == "" {
		var err error
		path, err = config.GetSettingsPath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.SaveSettings(config.DefaultSettings(), path); err != nil {
		return err
	}

	PrintSuccess("Wrote default settings to %s", path)
	return nil
}
