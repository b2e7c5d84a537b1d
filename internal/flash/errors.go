package flash

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBusy is returned when an operation is requested while another runs
var ErrBusy = errors.New("currently busy")

// Output markers used to classify esptool failures
const (
	FatalErrorBanner = "A fatal error occurred"
)

// SerialErrorMarkers identify serial transport failures in esptool output
var SerialErrorMarkers = []string{
	"could not open port",
	"SerialException",
	"Failed to connect",
}

// UnexpectedErrorMessage is shown for failures esptool did not explain
const UnexpectedErrorMessage = "unexpected error, maybe you chose invalid files, or files which overlap"

// FatalError is esptool's own fatal error report
type FatalError struct {
	Message string
	Err     error
}

func (e *FatalError) Error() string { return e.Message }
func (e *FatalError) Unwrap() error { return e.Err }

// SerialError is a failure of the serial connection to the chip
type SerialError struct {
	Message string
	Err     error
}

func (e *SerialError) Error() string { return e.Message }
func (e *SerialError) Unwrap() error { return e.Err }

// UnexpectedError wraps any other failure, including esptool not starting
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	if e.Err == nil {
		return UnexpectedErrorMessage
	}
	return fmt.Sprintf("%s (%v)", UnexpectedErrorMessage, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// ClassifyError maps the result of an esptool run to FatalError,
// SerialError or UnexpectedError using the tail of its output. A nil err
// stays nil.
func ClassifyError(err error, output string) error {
	if err == nil {
		return nil
	}

	var fatal *FatalError
	var serial *SerialError
	var unexpected *UnexpectedError
	if errors.As(err, &fatal) || errors.As(err, &serial) || errors.As(err, &unexpected) {
		return err
	}

	if line := findLine(output, FatalErrorBanner); line != "" {
		return &FatalError{Message: line, Err: err}
	}
	for _, marker := range SerialErrorMarkers {
		if line := findLine(output, marker); line != "" {
			return &SerialError{Message: line, Err: err}
		}
	}
	return &UnexpectedError{Err: err}
}

// findLine returns the last output line containing marker
func findLine(output, marker string) string {
	idx := strings.LastIndex(output, marker)
	if idx < 0 {
		return ""
	}
	start := strings.LastIndexAny(output[:idx], "\r\n") + 1
	end := strings.IndexAny(output[idx:], "\r\n")
	if end < 0 {
		return strings.TrimSpace(output[start:])
	}
	return strings.TrimSpace(output[start : idx+end])
}
