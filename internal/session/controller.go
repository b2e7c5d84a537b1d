package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/espdfu/espdfu/internal/esptool"
	"github.com/espdfu/espdfu/internal/flash"
	"github.com/espdfu/espdfu/internal/model"
	"github.com/espdfu/espdfu/internal/platform"
	"github.com/espdfu/espdfu/internal/project"
)

// Console messages
const (
	MsgBanner         = "ESP32 Firmware Flash tool"
	MsgRule           = "--------------------------------------------"
	MsgBusy           = "currently busy"
	MsgAutoDetectOn   = "disable automatic mode first"
	MsgRescanning     = "rescanning serial ports..."
	MsgPortsUpdated   = "serial choices updated"
	MsgPortNotFound   = "COM port set in project file is not found"
	MsgFlashCancelled = "flash cancelled"
)

// Errors returned by controller operations
var (
	ErrAutoDetect  = errors.New("automatic port detection is enabled")
	ErrDeclined    = errors.New("flash declined")
	ErrNoProject   = errors.New("no project file selected")
	ErrInvalidKind = errors.New("invalid artifact kind")
)

// Options wires a Controller to its collaborators. Ports and Runner are
// required; the stores may be nil, which disables project persistence.
type Options struct {
	Ports    platform.PortLister
	Runner   flash.Runner
	Projects project.Store
	Settings project.SettingsStore
	Console  io.Writer
}

// Controller serializes all changes to the session
type Controller struct {
	mu    sync.Mutex
	state model.Session

	ports    platform.PortLister
	runner   flash.Runner
	projects project.Store
	settings project.SettingsStore
	out      io.Writer

	notifyMu  sync.Mutex
	listeners []func(model.Session)
}

// NewController scans ports once and returns a controller holding the
// startup session
func NewController(opts Options) *Controller {
	c := &Controller{
		ports:    opts.Ports,
		runner:   opts.Runner,
		projects: opts.Projects,
		settings: opts.Settings,
		out:      opts.Console,
	}
	if c.out == nil {
		c.out = io.Discard
	}

	c.state = model.NewSession(c.listPorts())
	c.runner.SetUpdateCallback(c.onOperationUpdate)

	c.println(MsgBanner)
	c.println(MsgRule)
	return c
}

// Snapshot returns the current session
func (c *Controller) Snapshot() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every new session. fn runs on the
// goroutine that caused the change and must not call back into the
// controller synchronously.
func (c *Controller) Subscribe(fn func(model.Session)) {
	if fn == nil {
		return
	}
	c.notifyMu.Lock()
	c.listeners = append(c.listeners, fn)
	c.notifyMu.Unlock()
}

// Dispatch applies actions atomically and publishes the result
func (c *Controller) Dispatch(actions ...model.Action) model.Session {
	c.mu.Lock()
	for _, a := range actions {
		c.state = model.Reduce(c.state, a)
	}
	s := c.state
	c.mu.Unlock()

	c.publish()
	return s
}

// publish delivers the latest session. Holding notifyMu while reading the
// snapshot keeps deliveries ordered.
func (c *Controller) publish() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	s := c.Snapshot()
	for _, fn := range c.listeners {
		fn(s)
	}
}

// RescanPorts refreshes the port list. Refused in auto-detect mode.
func (c *Controller) RescanPorts() error {
	if c.Snapshot().AutoDetect {
		c.println(MsgAutoDetectOn)
		return ErrAutoDetect
	}
	c.println(MsgRescanning)
	c.Dispatch(model.SetPorts{Ports: c.listPorts()})
	c.println(MsgPortsUpdated)
	return nil
}

// SelectPort chooses the serial port
func (c *Controller) SelectPort(port string) {
	s := c.Dispatch(model.SelectPort{Port: port})
	if !s.AutoDetect {
		c.println("you chose " + port)
	}
}

// SetAutoDetect toggles auto-detect mode. Leaving it rescans the ports.
func (c *Controller) SetAutoDetect(enabled bool) {
	c.Dispatch(model.SetAutoDetect{Enabled: enabled})
	if !enabled {
		_ = c.RescanPorts()
	}
}

// SelectBaud chooses the baud rate
func (c *Controller) SelectBaud(b model.BaudRate) {
	if !b.Valid() {
		glog.Warningf("ignoring unsupported baud rate %d", int(b))
		return
	}
	c.Dispatch(model.SelectBaud{Baud: b})
	c.println("baud set to " + b.String())
}

// SetInclude selects or deselects an artifact for flashing
func (c *Controller) SetInclude(kind model.ArtifactKind, include bool) {
	c.Dispatch(model.SetInclude{Kind: kind, Include: include})
}

// SetOffset edits an artifact's flash offset
func (c *Controller) SetOffset(kind model.ArtifactKind, offset string) {
	c.Dispatch(model.SetOffset{Kind: kind, Offset: offset})
}

// SetPath assigns a firmware file to an artifact. Only existing *.bin files
// are accepted; the absolute path is recorded.
func (c *Controller) SetPath(kind model.ArtifactKind, path string) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	abs, err := platform.CheckBinaryFile(path)
	if err != nil {
		c.printf("cannot use %s for %s: %v", path, kind, err)
		return err
	}
	c.Dispatch(model.SetPath{Kind: kind, Path: abs})
	return nil
}

// Erase wipes the whole chip
func (c *Controller) Erase() error {
	c.mu.Lock()
	if c.state.Busy || c.runner.Busy() {
		c.mu.Unlock()
		c.println(MsgBusy)
		return flash.ErrBusy
	}
	if err := esptool.ValidatePort(c.state); err != nil {
		c.mu.Unlock()
		c.println(err.Error())
		return err
	}
	err := c.startLocked(model.ModeErasing)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.publish()
	return nil
}

// Flash writes the included artifacts. After an erase, flashing fewer than
// all four artifacts asks confirm first; declining launches nothing and
// keeps the erase flag. The answer may arrive later; Flash returns once the
// question is asked. An answer given before Confirm returns is acted on at
// once, and a failure to launch is returned.
func (c *Controller) Flash(confirm Confirmer) error {
	s := c.Snapshot()
	if s.Busy || c.runner.Busy() {
		c.println(MsgBusy)
		return flash.ErrBusy
	}
	if err := esptool.Validate(s); err != nil {
		c.println(err.Error())
		return err
	}

	if !s.NeedsEraseConfirmation() {
		return c.launchFlash()
	}

	if confirm == nil {
		c.println(MsgFlashCancelled)
		return ErrDeclined
	}
	var (
		mu        sync.Mutex
		returned  bool
		launchErr error
	)
	confirm.Confirm(EraseConfirmMessage, func(ok bool) {
		if !ok {
			glog.V(1).Info("partial flash after erase declined")
			c.println(MsgFlashCancelled)
			return
		}
		err := c.launchFlash()
		if err != nil {
			glog.V(1).Infof("confirmed flash not started: %v", err)
		}
		mu.Lock()
		if !returned {
			launchErr = err
		}
		mu.Unlock()
	})

	mu.Lock()
	defer mu.Unlock()
	returned = true
	return launchErr
}

// launchFlash re-checks the session, since it may have changed while the
// user was being asked, and starts the flash
func (c *Controller) launchFlash() error {
	c.mu.Lock()
	if c.state.Busy || c.runner.Busy() {
		c.mu.Unlock()
		c.println(MsgBusy)
		return flash.ErrBusy
	}
	if err := esptool.Validate(c.state); err != nil {
		c.mu.Unlock()
		c.println(err.Error())
		return err
	}
	err := c.startLocked(model.ModeFlashing)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.publish()
	return nil
}

// startLocked begins mode and launches the runner. The runner's final
// update takes c.mu, so it cannot overtake the state change made here.
func (c *Controller) startLocked(mode model.Mode) error {
	next := model.Reduce(c.state, model.BeginOperation{Mode: mode})
	args := esptool.BuildArgs(next)
	c.println(esptool.FormatCommand(args))

	if _, err := c.runner.Start(context.Background(), mode, args, c.out); err != nil {
		if errors.Is(err, flash.ErrBusy) {
			c.println(MsgBusy)
		} else {
			c.printf("failed to start %s: %v", mode, err)
		}
		return err
	}
	c.state = next
	return nil
}

// onOperationUpdate returns the session to idle once an operation finishes
func (c *Controller) onOperationUpdate(op *model.Operation) {
	if op == nil || !op.Status.IsFinished() {
		return
	}
	c.Dispatch(model.EndOperation{})
}

// Wait blocks until the running operation, if any, has finished
func (c *Controller) Wait(ctx context.Context) error {
	return c.runner.Wait(ctx)
}

// SaveProject writes the session to its project file
func (c *Controller) SaveProject() error {
	if c.projects == nil {
		return ErrNoProject
	}
	s := c.Snapshot()
	if s.ProjectPath == "" {
		c.println(ErrNoProject.Error())
		return ErrNoProject
	}
	if err := c.projects.Save(s.ProjectPath, s.Record()); err != nil {
		c.println(err.Error())
		return err
	}
	c.println("project saved to " + s.ProjectPath)
	return nil
}

// SaveProjectAs binds the session to a new project file, remembers it and
// writes the session there
func (c *Controller) SaveProjectAs(path string) error {
	abs, err := platform.AbsPath(path)
	if err != nil {
		return err
	}
	c.Dispatch(model.SetProjectPath{Path: abs})
	c.remember(abs)
	return c.SaveProject()
}

// OpenProject binds the session to the project file at path, remembers it
// for the next start and loads it
func (c *Controller) OpenProject(path string) error {
	abs, err := platform.AbsPath(path)
	if err != nil {
		return err
	}
	c.Dispatch(model.SetProjectPath{Path: abs})

	c.remember(abs)
	return c.LoadProject()
}

// LoadProject applies the bound project file. On error nothing is applied.
func (c *Controller) LoadProject() error {
	if c.projects == nil {
		return ErrNoProject
	}
	path := c.Snapshot().ProjectPath
	if path == "" {
		return ErrNoProject
	}

	rec, err := c.projects.Load(path)
	if err != nil {
		glog.Warningf("project load failed: %v", err)
		return err
	}

	s := c.Dispatch(model.ApplyProject{Record: rec})
	if !s.AutoDetect && !contains(s.Ports, rec.Port) {
		c.println(MsgPortNotFound)
	}
	glog.Infof("loaded project %s", path)
	return nil
}

// RestoreProject loads the project remembered by the settings store, if any
func (c *Controller) RestoreProject() error {
	if c.settings == nil {
		return nil
	}
	path, err := c.settings.ProjectPath()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if path == "" {
		return nil
	}
	c.Dispatch(model.SetProjectPath{Path: path})
	return c.LoadProject()
}

func (c *Controller) remember(path string) {
	if c.settings == nil {
		return
	}
	if err := c.settings.SetProjectPath(path); err != nil {
		glog.Warningf("failed to remember project %s: %v", path, err)
	}
}

func (c *Controller) listPorts() []string {
	if c.ports == nil {
		return nil
	}
	ports, err := c.ports.ListPorts()
	if err != nil {
		glog.Warningf("port scan failed: %v", err)
		return nil
	}
	return ports
}

func (c *Controller) println(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Controller) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format+"\n", a...)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
