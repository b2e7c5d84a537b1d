package model

// OperationStatus represents the lifecycle state of an esptool invocation
type OperationStatus string

const (
	// OperationStatusPending means the operation was accepted but not started
	OperationStatusPending OperationStatus = "Pending"

	// OperationStatusRunning means esptool is executing
	OperationStatusRunning OperationStatus = "Running"

	// OperationStatusCompleted means esptool exited successfully
	OperationStatusCompleted OperationStatus = "Completed"

	// OperationStatusFailed means esptool reported an error or could not run
	OperationStatusFailed OperationStatus = "Failed"
)

// String returns the string representation of OperationStatus
func (s OperationStatus) String() string {
	return string(s)
}

// IsActive returns true while the operation holds the runner
func (s OperationStatus) IsActive() bool {
	return s == OperationStatusPending || s == OperationStatusRunning
}

// IsFinished returns true if the operation completed or failed
func (s OperationStatus) IsFinished() bool {
	return s == OperationStatusCompleted || s == OperationStatusFailed
}

// Outcome classifies how a finished operation ended
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeSuccess    Outcome = "success"
	OutcomeFatal      Outcome = "fatal"
	OutcomeSerial     Outcome = "serial"
	OutcomeUnexpected Outcome = "unexpected"
)
