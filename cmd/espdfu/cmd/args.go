package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/espdfu/espdfu/internal/esptool"
	"github.com/espdfu/espdfu/internal/model"
)

var argsCmd = &cobra.Command{
	Use:   "args erase|flash",
	Short: "Print the esptool arguments without running esptool",
	Long: `Build the esptool argument list for an erase or a flash from the project
and the connection flags, and print it. Flash arguments are validated first.

Examples:
  espdfu args erase --port /dev/ttyUSB0
  espdfu args flash --project board.ini --auto`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"erase", "flash"},
	RunE:      runArgs,
}

func init() {
	rootCmd.AddCommand(argsCmd)
}

func runArgs(cmd *cobra.Command, args []string) error {
	var mode model.Mode
	switch args[0] {
	case "erase":
		mode = model.ModeErasing
	case "flash":
		mode = model.ModeFlashing
	default:
		return fmt.Errorf("unknown operation %q (want erase or flash)", args[0])
	}

	e := newEnv(io.Discard, resolveEsptool())
	defer e.close()
	if err := e.loadSession(); err != nil {
		return err
	}

	s := e.ctrl.Snapshot()
	var err error
	if mode == model.ModeFlashing {
		err = esptool.Validate(s)
	} else {
		err = esptool.ValidatePort(s)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), esptool.FormatCommand(esptool.BuildArgsFor(s, mode)))
	return nil
}
