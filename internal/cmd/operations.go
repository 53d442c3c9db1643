package cmd

import (
	"fmt"

	"github.com/AOSC-Dev/shipit-fleet/internal/fleet"
	"github.com/spf13/cobra"
)

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List operations and the remote command each one runs",
	Args:  cobra.NoArgs,
	RunE:  runOperations,
}

func init() {
	rootCmd.AddCommand(operationsCmd)
}

func runOperations(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	commands := commandsFrom(settings)
	out := cmd.OutOrStdout()
	for _, op := range fleet.Operations() {
		command, err := commands.For(op)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-12s %s\n", op, command)
	}
	return nil
}
