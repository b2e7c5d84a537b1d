package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/espdfu/espdfu/internal/model"
	"github.com/espdfu/espdfu/internal/session"
)

var (
	assumeYes  bool
	eraseFirst bool
)

var flashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Write the selected images",
	Long: `Load the project (from --project, or the one remembered in the settings
file), validate it and write every included image at its offset.

When the chip was erased earlier in the same session and not all four images
are included, the command asks for confirmation; --yes skips the question.
With --erase the chip is erased first.`,
	Args: cobra.NoArgs,
	RunE: runFlash,
}

func init() {
	flashCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	flashCmd.Flags().BoolVar(&eraseFirst, "erase", false, "erase the chip before flashing")
	rootCmd.AddCommand(flashCmd)
}

func runFlash(cmd *cobra.Command, args []string) error {
	e := newEnv(cmd.OutOrStdout(), resolveEsptool())
	defer e.close()
	if err := e.loadSession(); err != nil {
		return err
	}

	if eraseFirst {
		if err := e.ctrl.Erase(); err != nil {
			return err
		}
		if err := e.wait(cmd.Context()); err != nil {
			return err
		}
	}

	var confirm session.Confirmer = session.AlwaysConfirm
	if !assumeYes {
		confirm = promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
	}

	declined := false
	answered := session.ConfirmFunc(func(message string, answer func(bool)) {
		confirm.Confirm(message, func(ok bool) {
			declined = !ok
			answer(ok)
		})
	})
	if err := e.ctrl.Flash(answered); err != nil {
		return err
	}
	if declined {
		return session.ErrDeclined
	}
	// with --erase the last operation may still be the erase
	if op, ok := e.runner.LastOperation(); !ok || op.Mode != model.ModeFlashing {
		return errors.New("flash was not started")
	}
	return e.wait(cmd.Context())
}

// promptConfirmer asks on the terminal
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(message string, answer func(bool)) {
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		answer(false)
		return
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		answer(true)
	default:
		answer(false)
	}
}
