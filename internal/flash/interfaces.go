package flash

import (
	"context"
	"io"

	"github.com/espdfu/espdfu/internal/model"
)

// Invoker runs the flashing utility with args, writing everything it prints
// to out. It returns when the utility exits.
type Invoker interface {
	Run(ctx context.Context, args []string, out io.Writer) error
}

// Runner defines the interface for the operation runner.
type Runner interface {
	SetUpdateCallback(func(*model.Operation))
	Start(ctx context.Context, mode model.Mode, args []string, out io.Writer) (*model.Operation, error)
	Busy() bool
	Wait(ctx context.Context) error
	GetOperation(id string) (*model.Operation, bool)
	LastOperation() (*model.Operation, bool)
}
