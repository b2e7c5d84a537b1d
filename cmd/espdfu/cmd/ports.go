package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/espdfu/espdfu/internal/platform"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Long: `Scan the host for serial ports and print their device names, sorted.
Use this to find the value for --port.`,
	Args: cobra.NoArgs,
	RunE: runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := platform.ListSerialPorts()
	if err != nil {
		return fmt.Errorf("list ports: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(ports) == 0 {
		fmt.Fprintln(out, "No serial ports found.")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(out, p)
	}
	return nil
}
