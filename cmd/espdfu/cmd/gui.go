package cmd

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/espdfu/espdfu/internal/config"
	"github.com/espdfu/espdfu/internal/console"
	"github.com/espdfu/espdfu/internal/flash"
	"github.com/espdfu/espdfu/internal/platform"
	"github.com/espdfu/espdfu/internal/project"
	"github.com/espdfu/espdfu/internal/session"
	"github.com/espdfu/espdfu/internal/ui"
)

const (
	AppID   = "com.espdfu.espdfu"
	AppName = "ESP32 DFU"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop window",
	Long: `Open the desktop flashing window. This is also what runs when espdfu is
started without a subcommand.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	glog.Infof("%s v%s starting", AppName, rootCmd.Version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, rootCmd.Version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	command := esptoolCmd
	if command == "" {
		command = settings.GetEsptoolCommand()
	}

	sink := console.NewSink(console.DefaultBufferSize)
	defer sink.Close()

	ctrl := session.NewController(session.Options{
		Ports:    platform.SerialPorts{},
		Runner:   flash.NewService(flash.NewExecInvoker(command)),
		Projects: project.NewFileStore(),
		Settings: project.NewFileSettings(settingsPath),
		Console:  sink,
	})

	root := ui.NewRootUI(myWindow, myApp, ctrl, sink)
	root.LoadProject(projectPath)

	myWindow.ShowAndRun()
	return nil
}
