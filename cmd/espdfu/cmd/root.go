package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/espdfu/espdfu/internal/project"
)

var (
	// Global flags
	settingsPath string
	esptoolCmd   string
	baudRate     int
	portName     string
	autoDetect   bool
	projectPath  string
)

var rootCmd = &cobra.Command{
	Use:   "espdfu",
	Short: "ESP32 firmware flash tool",
	Long: `A front-end for esptool that erases ESP32 chips and writes the
bootloader, application, partition table and filesystem images at their
flash offsets. Port, baud rate and file selections can be kept in a project
file.

Without a subcommand the desktop window is opened.

Examples:
  espdfu                                   # Open the desktop window
  espdfu ports                             # List serial ports
  espdfu args flash --project board.ini    # Show the esptool arguments
  espdfu flash --project board.ini --yes   # Flash without asking
  espdfu flash --erase                     # Erase, then flash the remembered project`,
	Version:       "dev",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command
func Execute() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func init() {
	// Fix Fyne locale parsing error when LANG=C
	if lang := os.Getenv("LANG"); lang == "" || lang == "C" {
		os.Setenv("LANG", "en_US.UTF-8")
	}

	rootCmd.RunE = runGUI

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsPath, "settings", project.DefaultSettingsFile, "settings file remembering the last project")
	pf.StringVar(&esptoolCmd, "esptool", "", "esptool executable (default: preference, then esptool.py/esptool on PATH)")
	pf.IntVar(&baudRate, "baud", 0, "baud rate")
	pf.StringVar(&portName, "port", "", "serial port")
	pf.BoolVar(&autoDetect, "auto", false, "let esptool detect the serial port")
	pf.StringVar(&projectPath, "project", "", "project file to load")

	// glog flags (-v, -logtostderr, ...)
	pf.AddGoFlagSet(flag.CommandLine)
}
