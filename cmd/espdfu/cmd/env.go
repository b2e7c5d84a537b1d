package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/espdfu/espdfu/internal/console"
	"github.com/espdfu/espdfu/internal/esptool"
	"github.com/espdfu/espdfu/internal/flash"
	"github.com/espdfu/espdfu/internal/model"
	"github.com/espdfu/espdfu/internal/platform"
	"github.com/espdfu/espdfu/internal/project"
	"github.com/espdfu/espdfu/internal/session"
)

// env is the wiring shared by the terminal commands
type env struct {
	ctrl   *session.Controller
	runner *flash.Service
	sink   *console.Sink
	done   chan struct{}
}

// newEnv wires a controller whose console output goes to out
func newEnv(out io.Writer, command string) *env {
	e := &env{
		sink: console.NewSink(console.DefaultBufferSize),
		done: make(chan struct{}),
	}
	e.runner = flash.NewService(flash.NewExecInvoker(command))
	e.ctrl = session.NewController(session.Options{
		Ports:    platform.SerialPorts{},
		Runner:   e.runner,
		Projects: project.NewFileStore(),
		Settings: project.NewFileSettings(settingsPath),
		Console:  e.sink,
	})

	go func() {
		defer close(e.done)
		for chunk := range e.sink.Chunks() {
			io.WriteString(out, chunk)
		}
	}()
	return e
}

// close flushes pending console output
func (e *env) close() {
	e.sink.Close()
	<-e.done
}

// loadSession applies the project and the connection flags
func (e *env) loadSession() error {
	var err error
	if projectPath != "" {
		err = e.ctrl.OpenProject(projectPath)
	} else {
		err = e.ctrl.RestoreProject()
	}
	if err != nil {
		return err
	}

	if autoDetect {
		e.ctrl.SetAutoDetect(true)
	} else if portName != "" {
		e.ctrl.SelectPort(portName)
	}
	if baudRate != 0 {
		b := model.BaudRate(baudRate)
		if !b.Valid() {
			return fmt.Errorf("unsupported baud rate %d", baudRate)
		}
		e.ctrl.SelectBaud(b)
	}
	return nil
}

// wait blocks until the running operation ends and reports its result
func (e *env) wait(ctx context.Context) error {
	if err := e.ctrl.Wait(ctx); err != nil {
		return err
	}
	op, ok := e.runner.LastOperation()
	if !ok {
		return nil
	}
	if !op.Succeeded() {
		return fmt.Errorf("%s failed after %s: %s", op.Mode, op.GetDurationString(), op.LastError)
	}
	glog.Infof("%s finished in %s", op.Mode, op.GetDurationString())
	return nil
}

// resolveEsptool picks the esptool executable for terminal commands
func resolveEsptool() string {
	if esptoolCmd != "" {
		return esptoolCmd
	}
	if path, err := platform.FindEsptool(); err == nil {
		return path
	}
	return esptool.DefaultCommand
}
