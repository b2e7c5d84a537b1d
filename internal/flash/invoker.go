package flash

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/golang/glog"
)

// ExecInvoker runs esptool as a child process
type ExecInvoker struct {
	// Command is the esptool executable, e.g. "esptool.py"
	Command string
	// Prefix is prepended to every argument list, e.g. ["-m", "esptool"]
	// when Command is a Python interpreter.
	Prefix []string
}

// NewExecInvoker creates an invoker for command
func NewExecInvoker(command string, prefix ...string) *ExecInvoker {
	return &ExecInvoker{Command: command, Prefix: prefix}
}

// Run starts esptool and copies its stdout and stderr to out as they arrive
func (e *ExecInvoker) Run(ctx context.Context, args []string, out io.Writer) error {
	full := append(append([]string(nil), e.Prefix...), args...)
	cmd := exec.CommandContext(ctx, e.Command, full...)
	cmd.Stdout = out
	cmd.Stderr = out

	glog.V(1).Infof("exec %s %v", e.Command, full)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", e.Command, err)
	}
	return cmd.Wait()
}
