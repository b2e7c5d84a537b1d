package flash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/espdfu/espdfu/internal/model"
)

// Runner constants
const (
	OperationIDPrefix = "op-"
	CompletedMessage  = "esptool execution completed"
	// OutputTailSize is how much trailing output is kept for error classification
	OutputTailSize = 8 * 1024
)

// Service runs one esptool operation at a time
type Service struct {
	invoker  Invoker
	slot     *semaphore.Weighted
	busy     atomic.Bool
	workers  sync.WaitGroup
	ops      map[string]*model.Operation
	opsMutex sync.RWMutex
	lastID   string
	onUpdate func(*model.Operation) // callback for UI updates
}

// NewService creates a runner that invokes esptool through invoker
func NewService(invoker Invoker) *Service {
	return &Service{
		invoker: invoker,
		slot:    semaphore.NewWeighted(1),
		ops:     make(map[string]*model.Operation),
	}
}

// SetUpdateCallback sets the callback function for operation updates. It is
// called from the worker goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.Operation)) {
	s.opsMutex.Lock()
	defer s.opsMutex.Unlock()
	s.onUpdate = callback
}

// Start launches esptool with args in a worker goroutine and returns at once.
// If an operation is already running it returns ErrBusy and launches nothing.
// Output is written to out; the outcome is reported there as well.
func (s *Service) Start(ctx context.Context, mode model.Mode, args []string, out io.Writer) (*model.Operation, error) {
	if !s.slot.TryAcquire(1) {
		glog.Warningf("rejected %s request: runner busy", mode)
		return nil, ErrBusy
	}
	s.busy.Store(true)
	s.workers.Add(1)

	op := &model.Operation{
		ID:     generateOperationID(),
		Mode:   mode,
		Args:   append([]string(nil), args...),
		Status: model.OperationStatusPending,
	}

	s.opsMutex.Lock()
	s.ops[op.ID] = op
	s.lastID = op.ID
	s.opsMutex.Unlock()

	go s.run(ctx, op, out)

	return op, nil
}

// run performs the invocation. The runner slot is released before the final
// update, so a callback that sees the operation finished can start the next.
func (s *Service) run(ctx context.Context, op *model.Operation, out io.Writer) {
	defer s.workers.Done()

	s.opsMutex.Lock()
	op.Status = model.OperationStatusRunning
	op.StartedAt = time.Now()
	s.opsMutex.Unlock()
	s.notifyUpdate(op)

	glog.Infof("operation %s: %s started with args %v", op.ID, op.Mode, op.Args)

	tail := newTailWriter(OutputTailSize)
	var w io.Writer = tail
	if out != nil {
		w = io.MultiWriter(out, tail)
	}

	err := s.invoke(ctx, op.Args, w)
	err = ClassifyError(err, tail.String())

	s.opsMutex.Lock()
	op.FinishedAt = time.Now()
	op.Outcome = outcomeOf(err)
	if err != nil {
		op.Status = model.OperationStatusFailed
		op.LastError = err.Error()
	} else {
		op.Status = model.OperationStatusCompleted
	}
	s.opsMutex.Unlock()

	report(out, err)
	switch op.Outcome {
	case model.OutcomeSuccess:
		glog.Infof("operation %s: completed in %s", op.ID, op.GetDurationString())
	case model.OutcomeUnexpected:
		glog.Errorf("operation %s: %v", op.ID, err)
	default:
		glog.Warningf("operation %s: %s error: %v", op.ID, op.Outcome, err)
	}

	s.busy.Store(false)
	s.slot.Release(1)
	s.notifyUpdate(op)
}

// invoke calls the invoker, turning a panic into an unexpected error
func (s *Service) invoke(ctx context.Context, args []string, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnexpectedError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return s.invoker.Run(ctx, args, w)
}

// Busy reports whether an operation holds the runner
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Wait blocks until every started operation has delivered its final update,
// or ctx is done
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetOperation returns an operation by ID
func (s *Service) GetOperation(id string) (*model.Operation, bool) {
	s.opsMutex.RLock()
	defer s.opsMutex.RUnlock()
	op, exists := s.ops[id]
	return op, exists
}

// LastOperation returns the most recently started operation
func (s *Service) LastOperation() (*model.Operation, bool) {
	s.opsMutex.RLock()
	defer s.opsMutex.RUnlock()
	op, exists := s.ops[s.lastID]
	return op, exists
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(op *model.Operation) {
	s.opsMutex.RLock()
	callback := s.onUpdate
	s.opsMutex.RUnlock()
	if callback != nil {
		callback(op)
	}
}

// report writes the outcome line esptool users expect to see
func report(out io.Writer, err error) {
	if out == nil {
		return
	}
	if err == nil {
		fmt.Fprintln(out, CompletedMessage)
		return
	}
	fmt.Fprintln(out, err.Error())
}

func outcomeOf(err error) model.Outcome {
	if err == nil {
		return model.OutcomeSuccess
	}
	var fatal *FatalError
	var serial *SerialError
	switch {
	case errors.As(err, &fatal):
		return model.OutcomeFatal
	case errors.As(err, &serial):
		return model.OutcomeSerial
	default:
		return model.OutcomeUnexpected
	}
}

// generateOperationID generates a unique operation ID using UUID v7 for time ordering
func generateOperationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(OperationIDPrefix+"%d", time.Now().UnixNano())
	}
	return OperationIDPrefix + id.String()
}
