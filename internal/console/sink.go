package console

import (
	"fmt"
	"sync"
)

// DefaultBufferSize is the number of pending chunks a Sink holds before
// writers block
const DefaultBufferSize = 256

// Sink is an io.Writer that forwards every write as one chunk on a bounded
// channel. It is safe for concurrent use.
type Sink struct {
	ch     chan string
	mu     sync.RWMutex
	closed bool
}

// NewSink creates a sink holding up to size pending chunks
func NewSink(size int) *Sink {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Sink{ch: make(chan string, size)}
}

// Chunks returns the receive side drained by the owner of the displayed text
func (s *Sink) Chunks() <-chan string {
	return s.ch
}

// Write implements io.Writer. Writes after Close are discarded.
func (s *Sink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}
	s.ch <- string(p)
	return len(p), nil
}

// Println writes the operands followed by a newline
func (s *Sink) Println(a ...any) {
	fmt.Fprintln(s, a...)
}

// Printf writes a formatted message; a trailing newline is added if missing
func (s *Sink) Printf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	_, _ = s.Write([]byte(msg))
}

// Close ends the stream. Safe to call more than once.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
