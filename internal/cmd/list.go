package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/AOSC-Dev/shipit-fleet/internal/fleet"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the servers that an operation would visit",
	Long: `Parses the server list and prints each entry in processing order.
No connection is made.

Example:
  shipit-fleet list
  shipit-fleet list --servers staging.list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := os.Open(serversFile)
	if err != nil {
		return fmt.Errorf("failed to open server list: %w", err)
	}
	defer f.Close()

	entries, err := fleet.ReadServerList(f)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		PrintInfo("No servers in %s", serversFile)
		return nil
	}

	return printServerList(cmd.OutOrStdout(), entries)
}

func printServerList(w io.Writer, entries []fleet.ServerEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tHOSTNAME\tPORT")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", entry.Line, orDash(entry.Hostname), orDash(entry.Port))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
