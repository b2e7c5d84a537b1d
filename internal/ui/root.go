package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/golang/glog"

	"github.com/espdfu/espdfu/internal/config"
	"github.com/espdfu/espdfu/internal/console"
	"github.com/espdfu/espdfu/internal/model"
	"github.com/espdfu/espdfu/internal/platform"
	"github.com/espdfu/espdfu/internal/session"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	ctrl         *session.Controller
	settings     *config.Settings
	localization *Localization
	console      *ConsoleView

	portLabel     *widget.Label
	portSelect    *widget.Select
	rescanBtn     *widget.Button
	autoCheck     *widget.Check
	baudLabel     *widget.Label
	baudRadio     *widget.RadioGroup
	projectLabel  *widget.Label
	projectPath   *widget.Label
	projectBrowse *widget.Button
	projectSave   *widget.Button
	eraseBtn      *widget.Button
	eraseWarning  *canvas.Text
	filesLabel    *widget.Label
	flashBtn      *widget.Button
	rows          [model.ArtifactCount]*ArtifactRow

	// set while the widgets are being synced to a session, so that their
	// change callbacks do not feed the same values back
	syncing bool
}

// NewRootUI creates the main window content for ctrl and starts showing the
// output written to sink
func NewRootUI(window fyne.Window, app fyne.App, ctrl *session.Controller, sink *console.Sink) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		ctrl:         ctrl,
		settings:     settings,
		localization: localization,
		console:      NewConsoleView(),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.console.Attach(sink)

	ctrl.Dispatch(model.SelectBaud{Baud: settings.GetLastBaud()})
	ctrl.Subscribe(func(model.Session) {
		fyne.Do(ui.refresh)
	})
	ui.refresh()

	glog.V(1).Info("UI setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Serial port row
	ui.portLabel = widget.NewLabel(ui.localization.GetText(KeySerialPort))
	ui.portSelect = widget.NewSelect(nil, func(port string) {
		if ui.syncing || port == "" {
			return
		}
		ui.ctrl.SelectPort(port)
	})
	ui.rescanBtn = widget.NewButton(IconRescan+" "+ui.localization.GetText(KeyRescan), func() {
		_ = ui.ctrl.RescanPorts()
	})
	ui.autoCheck = widget.NewCheck(ui.localization.GetText(KeyAutoDetect), func(on bool) {
		if ui.syncing {
			return
		}
		ui.ctrl.SetAutoDetect(on)
	})
	portRow := container.NewBorder(nil, nil, ui.portLabel,
		container.NewHBox(ui.rescanBtn, ui.autoCheck),
		container.NewGridWrap(fyne.NewSize(PortSelectWidth, ui.portSelect.MinSize().Height), ui.portSelect))

	// Baud row
	ui.baudLabel = widget.NewLabel(ui.localization.GetText(KeyBaudRate))
	ui.baudRadio = widget.NewRadioGroup(model.BaudRateStrings(), ui.onBaudSelected)
	ui.baudRadio.Horizontal = true
	ui.baudRadio.Required = true
	baudRow := container.NewHBox(ui.baudLabel, ui.baudRadio)

	// Project row
	ui.projectLabel = widget.NewLabel(ui.localization.GetText(KeyProject))
	ui.projectPath = widget.NewLabel(ui.localization.GetText(KeyNoFileSelected))
	ui.projectPath.Truncation = fyne.TextTruncateEllipsis
	ui.projectBrowse = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyBrowse), ui.onProjectBrowse)
	ui.projectSave = widget.NewButton(ui.localization.GetText(KeySave), ui.onProjectSave)
	projectRow := container.NewBorder(nil, nil, ui.projectLabel,
		container.NewHBox(ui.projectBrowse, ui.projectSave), ui.projectPath)

	// Erase row
	ui.eraseBtn = widget.NewButton(ui.localization.GetText(KeyErase), func() {
		_ = ui.ctrl.Erase()
	})
	ui.eraseBtn.Importance = widget.DangerImportance
	ui.eraseWarning = canvas.NewText(IconWarning+" "+ui.localization.GetText(KeyEraseWarning), theme.Color(theme.ColorNameWarning))
	ui.eraseWarning.Hide()
	eraseRow := container.NewHBox(ui.eraseBtn, container.NewCenter(ui.eraseWarning))

	// Artifact rows in display order
	ui.filesLabel = widget.NewLabelWithStyle(ui.localization.GetText(KeyFlashFiles), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	files := container.NewVBox(ui.filesLabel)
	for _, kind := range model.DisplayOrder {
		row := NewArtifactRow(kind, ui.localization)
		row.SetCallbacks(ui.onInclude, ui.onOffset, ui.onArtifactBrowse)
		ui.rows[kind] = row
		files.Add(row.Container())
	}

	ui.flashBtn = widget.NewButton(ui.localization.GetText(KeyFlash), func() {
		_ = ui.ctrl.Flash(ui)
	})
	ui.flashBtn.Importance = widget.HighImportance

	var header fyne.CanvasObject = widget.NewLabel("")
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		img.FillMode = canvas.ImageFillContain
		header = img
	}
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	top := container.NewVBox(
		container.NewBorder(nil, nil, header, settingsBtn, portRow),
		baudRow,
		projectRow,
		widget.NewSeparator(),
		eraseRow,
		widget.NewSeparator(),
		files,
		ui.flashBtn,
		widget.NewSeparator(),
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.console.Container()))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	revealItem := fyne.NewMenuItem(ui.localization.GetText(KeyShowInFolder), ui.onRevealProject)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), revealItem, settingsItem),
		languageMenu,
	))
}

// render syncs every widget to s. Runs on the UI thread.
// refresh renders the controller's current session. Queued refreshes read the
// session when they run, so they never show a value older than what the user
// has already typed.
func (ui *RootUI) refresh() {
	ui.render(ui.ctrl.Snapshot())
}

func (ui *RootUI) render(s model.Session) {
	ui.syncing = true
	defer func() { ui.syncing = false }()

	ui.portSelect.Options = s.Ports
	if s.Port == "" {
		ui.portSelect.ClearSelected()
	} else {
		ui.portSelect.SetSelected(s.Port)
	}
	ui.portSelect.Refresh()
	ui.autoCheck.SetChecked(s.AutoDetect)
	ui.baudRadio.SetSelected(s.Baud.String())

	if s.ProjectPath == "" {
		ui.projectPath.SetText(ui.localization.GetText(KeyNoFileSelected))
	} else {
		ui.projectPath.SetText(s.ProjectPath)
	}

	for _, slot := range s.Slots {
		ui.rows[slot.Kind].Update(slot, s.Busy)
	}

	if s.EraseUsed {
		ui.eraseWarning.Show()
	} else {
		ui.eraseWarning.Hide()
	}

	setEnabled(!s.Busy && !s.AutoDetect, ui.portSelect, ui.rescanBtn)
	setEnabled(!s.Busy, ui.autoCheck, ui.baudRadio, ui.projectBrowse, ui.projectSave, ui.eraseBtn, ui.flashBtn)
}

func setEnabled(enabled bool, widgets ...fyne.Disableable) {
	for _, w := range widgets {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

// Confirm asks before a partial flash after an erase
func (ui *RootUI) Confirm(message string, answer func(bool)) {
	dialog.ShowConfirm(ui.localization.GetText(KeyWarning), message, answer, ui.window)
}

func (ui *RootUI) onBaudSelected(value string) {
	if ui.syncing || value == "" {
		return
	}
	b, err := model.ParseBaudRate(value)
	if err != nil {
		glog.Warningf("baud selection: %v", err)
		return
	}
	ui.ctrl.SelectBaud(b)
	ui.settings.SetLastBaud(b)
}

func (ui *RootUI) onInclude(kind model.ArtifactKind, include bool) {
	ui.ctrl.SetInclude(kind, include)
}

func (ui *RootUI) onOffset(kind model.ArtifactKind, offset string) {
	ui.ctrl.SetOffset(kind, offset)
}

func (ui *RootUI) onArtifactBrowse(kind model.ArtifactKind) {
	ui.openFile(BinaryFilter, func(path string) {
		if err := ui.ctrl.SetPath(kind, path); err != nil {
			dialog.ShowError(err, ui.window)
		}
	})
}

func (ui *RootUI) onProjectBrowse() {
	ui.openFile(ProjectFilter, func(path string) {
		if err := ui.ctrl.OpenProject(path); err != nil {
			ui.showProjectError(err)
		}
	})
}

func (ui *RootUI) onProjectSave() {
	if ui.ctrl.Snapshot().ProjectPath != "" {
		if err := ui.ctrl.SaveProject(); err != nil {
			ui.showProjectError(err)
		}
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := ui.ctrl.SaveProjectAs(path); err != nil {
			ui.showProjectError(err)
		}
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(ProjectFilter))
	d.SetFileName("project.ini")
	d.Show()
}

// onRevealProject shows the bound project file in the system file manager
func (ui *RootUI) onRevealProject() {
	path := ui.ctrl.Snapshot().ProjectPath
	if path == "" {
		dialog.ShowError(session.ErrNoProject, ui.window)
		return
	}
	if err := platform.OpenFileInManager(path); err != nil {
		glog.Warningf("reveal %s: %v", path, err)
		dialog.ShowError(err, ui.window)
	}
}

// LoadProject opens the project at path, or the one opened last time when
// path is empty. A broken project file is reported in a dialog.
func (ui *RootUI) LoadProject(path string) {
	var err error
	if path != "" {
		err = ui.ctrl.OpenProject(path)
	} else {
		err = ui.ctrl.RestoreProject()
	}
	if err != nil {
		ui.showProjectError(err)
	}
}

func (ui *RootUI) showProjectError(err error) {
	glog.Warningf("project: %v", err)
	dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyProjectError), err), ui.window)
}

// openFile shows a file picker limited to extensions and hands the chosen
// path to onPicked
func (ui *RootUI) openFile(extensions []string, onPicked func(string)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		onPicked(path)
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(extensions))
	d.Show()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func(languageChanged bool) {
		if languageChanged {
			ui.onLanguageChange(ui.settings.GetLanguage())
		}
	})
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.portLabel.SetText(l.GetText(KeySerialPort))
	ui.rescanBtn.SetText(IconRescan + " " + l.GetText(KeyRescan))
	ui.autoCheck.SetText(l.GetText(KeyAutoDetect))
	ui.baudLabel.SetText(l.GetText(KeyBaudRate))
	ui.projectLabel.SetText(l.GetText(KeyProject))
	ui.projectBrowse.SetText(IconFolder + " " + l.GetText(KeyBrowse))
	ui.projectSave.SetText(l.GetText(KeySave))
	ui.eraseBtn.SetText(l.GetText(KeyErase))
	ui.eraseWarning.Text = IconWarning + " " + l.GetText(KeyEraseWarning)
	ui.eraseWarning.Refresh()
	ui.filesLabel.SetText(l.GetText(KeyFlashFiles))
	ui.flashBtn.SetText(l.GetText(KeyFlash))
	for _, row := range ui.rows {
		row.RefreshTexts()
	}
	ui.refresh()
}
