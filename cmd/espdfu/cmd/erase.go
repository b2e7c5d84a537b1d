package cmd

import (
	"github.com/spf13/cobra"
)

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase the whole flash chip",
	Long: `Run esptool erase_flash on the selected port. After an erase every image
should be flashed again.`,
	Args: cobra.NoArgs,
	RunE: runErase,
}

func init() {
	rootCmd.AddCommand(eraseCmd)
}

func runErase(cmd *cobra.Command, args []string) error {
	e := newEnv(cmd.OutOrStdout(), resolveEsptool())
	defer e.close()
	if err := e.loadSession(); err != nil {
		return err
	}

	if err := e.ctrl.Erase(); err != nil {
		return err
	}
	return e.wait(cmd.Context())
}
