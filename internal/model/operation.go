package model

import (
	"fmt"
	"time"
)

// Operation represents a single esptool invocation
type Operation struct {
	ID         string
	Mode       Mode
	Args       []string // argument list passed to esptool
	Status     OperationStatus
	Outcome    Outcome
	LastError  string    // last error message if any
	StartedAt  time.Time // when esptool was launched
	FinishedAt time.Time // when esptool returned
}

// Duration returns how long the operation ran, or has been running
func (op *Operation) Duration() time.Duration {
	if op.StartedAt.IsZero() {
		return 0
	}
	if op.FinishedAt.IsZero() {
		return time.Since(op.StartedAt)
	}
	return op.FinishedAt.Sub(op.StartedAt)
}

// GetDurationString returns the duration formatted as mm:ss or hh:mm:ss
func (op *Operation) GetDurationString() string {
	secs := int(op.Duration().Round(time.Second) / time.Second)
	if secs <= 0 {
		return "—"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Succeeded reports whether esptool finished without error
func (op *Operation) Succeeded() bool {
	return op.Status == OperationStatusCompleted && op.Outcome == OutcomeSuccess
}
