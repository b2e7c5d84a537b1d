package flash

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/espdfu/espdfu/internal/model"
)

// fakeInvoker records calls and replays canned output
type fakeInvoker struct {
	mu      sync.Mutex
	calls   [][]string
	output  string
	err     error
	panicV  any
	block   chan struct{}
	started chan struct{}
}

func (f *fakeInvoker) Run(ctx context.Context, args []string, out io.Writer) error {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.panicV != nil {
		panic(f.panicV)
	}
	io.WriteString(out, f.output)
	return f.err
}

func (f *fakeInvoker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// lockedBuffer is a bytes.Buffer safe for the worker and the test to share
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitIdle(t *testing.T, s *Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Runner did not become idle: %v", err)
	}
}

func TestNewService(t *testing.T) {
	service := NewService(&fakeInvoker{})

	if len(service.ops) != 0 {
		t.Errorf("Expected empty operations map, got %d items", len(service.ops))
	}
	if service.Busy() {
		t.Error("New service should not be busy")
	}
	if _, ok := service.LastOperation(); ok {
		t.Error("Expected no last operation")
	}
}

func TestStart_Success(t *testing.T) {
	inv := &fakeInvoker{output: "esptool.py v4.7.0\nHard resetting via RTS pin...\n"}
	service := NewService(inv)
	out := &lockedBuffer{}

	args := []string{"--baud", "921600", "erase_flash"}
	op, err := service.Start(context.Background(), model.ModeErasing, args, out)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	waitIdle(t, service)

	got, ok := service.GetOperation(op.ID)
	if !ok {
		t.Fatal("Operation should be stored")
	}
	if got.Status != model.OperationStatusCompleted || got.Outcome != model.OutcomeSuccess {
		t.Errorf("Expected completed/success, got %s/%s", got.Status, got.Outcome)
	}
	if !strings.HasPrefix(got.ID, OperationIDPrefix) {
		t.Errorf("Expected ID prefix %q, got %s", OperationIDPrefix, got.ID)
	}
	if diff := cmp.Diff(args, inv.calls[0]); diff != "" {
		t.Errorf("Invoker args mismatch (-want +got):\n%s", diff)
	}

	want := inv.output + CompletedMessage + "\n"
	if out.String() != want {
		t.Errorf("Expected output %q, got %q", want, out.String())
	}
}

func TestStart_RejectsWhileBusy(t *testing.T) {
	inv := &fakeInvoker{
		output:  "Writing at 0x00010000... (100 %)\n",
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	service := NewService(inv)
	out := &lockedBuffer{}

	first, err := service.Start(context.Background(), model.ModeFlashing, []string{"write_flash"}, out)
	if err != nil {
		t.Fatalf("First start failed: %v", err)
	}
	<-inv.started

	if !service.Busy() {
		t.Error("Service should report busy while running")
	}

	_, err = service.Start(context.Background(), model.ModeErasing, []string{"erase_flash"}, out)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("Expected ErrBusy, got %v", err)
	}

	close(inv.block)
	waitIdle(t, service)

	if inv.callCount() != 1 {
		t.Errorf("Expected exactly one invocation, got %d", inv.callCount())
	}
	if last, _ := service.LastOperation(); last.ID != first.ID {
		t.Errorf("Rejected request must not replace the last operation")
	}
	if !strings.Contains(out.String(), inv.output+CompletedMessage) {
		t.Errorf("First operation output was not left intact: %q", out.String())
	}
	if service.Busy() {
		t.Error("Service should be idle after completion")
	}

	// The slot is free again
	if _, err := service.Start(context.Background(), model.ModeErasing, nil, nil); err != nil {
		t.Errorf("Expected runner to accept a new operation, got %v", err)
	}
	waitIdle(t, service)
}

func TestStart_ConcurrentRequests(t *testing.T) {
	inv := &fakeInvoker{block: make(chan struct{})}
	service := NewService(inv)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.Start(context.Background(), model.ModeErasing, nil, nil); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	close(inv.block)
	waitIdle(t, service)

	if accepted != 1 {
		t.Errorf("Expected exactly one accepted request, got %d", accepted)
	}
	if inv.callCount() != 1 {
		t.Errorf("Expected exactly one invocation, got %d", inv.callCount())
	}
}

func TestStart_FailureOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		inv     *fakeInvoker
		outcome model.Outcome
		report  string
	}{
		{
			name: "fatal",
			inv: &fakeInvoker{
				output: "Connecting....\nA fatal error occurred: Failed to connect to ESP32: Timed out\n",
				err:    errors.New("exit status 2"),
			},
			outcome: model.OutcomeFatal,
			report:  "A fatal error occurred: Failed to connect to ESP32: Timed out",
		},
		{
			name: "serial",
			inv: &fakeInvoker{
				output: "serial.serialutil.SerialException: could not open port /dev/ttyUSB9\n",
				err:    errors.New("exit status 1"),
			},
			outcome: model.OutcomeSerial,
			report:  "serial.serialutil.SerialException: could not open port /dev/ttyUSB9",
		},
		{
			name:    "unexpected",
			inv:     &fakeInvoker{err: errors.New("exit status 1")},
			outcome: model.OutcomeUnexpected,
			report:  UnexpectedErrorMessage,
		},
		{
			name:    "panic",
			inv:     &fakeInvoker{panicV: "boom"},
			outcome: model.OutcomeUnexpected,
			report:  UnexpectedErrorMessage,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service := NewService(test.inv)
			out := &lockedBuffer{}

			op, err := service.Start(context.Background(), model.ModeFlashing, nil, out)
			if err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			waitIdle(t, service)

			got, _ := service.GetOperation(op.ID)
			if got.Status != model.OperationStatusFailed {
				t.Errorf("Expected failed status, got %s", got.Status)
			}
			if got.Outcome != test.outcome {
				t.Errorf("Expected outcome %s, got %s", test.outcome, got.Outcome)
			}
			if got.LastError == "" {
				t.Error("Expected LastError to be recorded")
			}
			if !strings.Contains(out.String(), test.report) {
				t.Errorf("Expected report %q in output %q", test.report, out.String())
			}
			if strings.Contains(out.String(), CompletedMessage) {
				t.Error("Failed operation must not report completion")
			}
			if service.Busy() {
				t.Error("Runner must be released after a failure")
			}
		})
	}
}

func TestUpdateCallback(t *testing.T) {
	service := NewService(&fakeInvoker{})

	var mu sync.Mutex
	var statuses []model.OperationStatus
	service.SetUpdateCallback(func(op *model.Operation) {
		mu.Lock()
		statuses = append(statuses, op.Status)
		mu.Unlock()
	})

	if _, err := service.Start(context.Background(), model.ModeErasing, nil, nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitIdle(t, service)

	mu.Lock()
	defer mu.Unlock()
	want := []model.OperationStatus{model.OperationStatusRunning, model.OperationStatusCompleted}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Errorf("Status updates mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateOperationID(t *testing.T) {
	id1 := generateOperationID()
	id2 := generateOperationID()

	if id1 == id2 {
		t.Error("Expected different operation IDs")
	}
	if len(id1) != len(OperationIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(OperationIDPrefix)+36, len(id1), id1)
	}
}

func TestFinalUpdateSeesRunnerReleased(t *testing.T) {
	service := NewService(&fakeInvoker{})

	var mu sync.Mutex
	var busyAtFinish []bool
	service.SetUpdateCallback(func(op *model.Operation) {
		if !op.Status.IsFinished() {
			return
		}
		mu.Lock()
		busyAtFinish = append(busyAtFinish, service.Busy())
		mu.Unlock()
	})

	if _, err := service.Start(context.Background(), model.ModeErasing, nil, nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitIdle(t, service)

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]bool{false}, busyAtFinish); diff != "" {
		t.Errorf("Busy() during final update mismatch (-want +got):\n%s", diff)
	}
}
