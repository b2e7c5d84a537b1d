package esptool

import (
	"strings"

	"github.com/espdfu/espdfu/internal/model"
)

// esptool command-line vocabulary
const (
	BaudFlag        = "--baud"
	PortFlag        = "--port"
	EraseFlashCmd   = "erase_flash"
	WriteFlashCmd   = "write_flash"
	DefaultCommand  = "esptool.py"
	FallbackCommand = "esptool"
)

// BuildArgs returns the esptool arguments for the session's current mode.
// It assumes Validate has passed; in idle mode only the connection
// arguments are returned.
func BuildArgs(s model.Session) []string {
	args := []string{BaudFlag, s.Baud.String()}

	if !s.AutoDetect {
		args = append(args, PortFlag, s.Port)
	}

	switch s.Mode {
	case model.ModeErasing:
		args = append(args, EraseFlashCmd)
	case model.ModeFlashing:
		args = append(args, WriteFlashCmd)
		for _, kind := range model.FlashOrder {
			slot := s.Slot(kind)
			if !slot.Include {
				continue
			}
			args = append(args, slot.Offset, slot.Path)
		}
	}

	return args
}

// BuildArgsFor is BuildArgs with the session switched to mode
func BuildArgsFor(s model.Session, mode model.Mode) []string {
	s.Mode = mode
	return BuildArgs(s)
}

// FormatCommand renders an argument list the way it is echoed to the console
func FormatCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + strings.ReplaceAll(a, "'", `\'`) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
