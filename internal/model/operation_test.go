package model

import (
	"testing"
	"time"
)

func TestOperation_GetDurationString(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{0, "—"},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
	}

	for _, test := range tests {
		op := &Operation{StartedAt: start, FinishedAt: start.Add(test.elapsed)}
		result := op.GetDurationString()
		if result != test.expected {
			t.Errorf("GetDurationString() with elapsed=%v = %s, expected %s", test.elapsed, result, test.expected)
		}
	}
}

func TestOperation_DurationNotStarted(t *testing.T) {
	op := &Operation{}
	if op.Duration() != 0 {
		t.Errorf("Expected zero duration for unstarted operation, got %v", op.Duration())
	}
}

func TestOperation_Succeeded(t *testing.T) {
	tests := []struct {
		status   OperationStatus
		outcome  Outcome
		expected bool
	}{
		{OperationStatusCompleted, OutcomeSuccess, true},
		{OperationStatusFailed, OutcomeFatal, false},
		{OperationStatusFailed, OutcomeUnexpected, false},
		{OperationStatusRunning, OutcomeNone, false},
	}

	for _, test := range tests {
		op := &Operation{Status: test.status, Outcome: test.outcome}
		if op.Succeeded() != test.expected {
			t.Errorf("Succeeded() for %s/%s = %v, expected %v", test.status, test.outcome, op.Succeeded(), test.expected)
		}
	}
}
