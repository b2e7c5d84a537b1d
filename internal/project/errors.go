package project

import "fmt"

// LoadError reports a project or settings file that could not be used.
// Nothing from such a file is applied.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading project file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
