package console

import (
	"strings"
	"sync"
)

// Buffer accumulates console text on the owning side of a Sink
type Buffer struct {
	mu       sync.Mutex
	text     string
	maxLines int
}

// NewBuffer creates a buffer keeping at most maxLines lines; zero keeps all
func NewBuffer(maxLines int) *Buffer {
	return &Buffer{maxLines: maxLines}
}

// Append folds chunk into the text and returns the new text
func (b *Buffer) Append(chunk string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = trimLines(Apply(b.text, chunk), b.maxLines)
	return b.text
}

// String returns the current text
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Reset clears the text
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = ""
}

// Drain applies every chunk from chunks until the channel is closed, calling
// onChange with the updated text after each chunk. Intended to run in its own
// goroutine.
func (b *Buffer) Drain(chunks <-chan string, onChange func(string)) {
	for chunk := range chunks {
		text := b.Append(chunk)
		if onChange != nil {
			onChange(text)
		}
	}
}

func trimLines(text string, maxLines int) string {
	if maxLines <= 0 {
		return text
	}
	n := strings.Count(text, "\n")
	if n < maxLines {
		return text
	}
	drop := n - maxLines + 1
	idx := 0
	for i := 0; i < drop; i++ {
		next := strings.IndexByte(text[idx:], '\n')
		if next < 0 {
			return text
		}
		idx += next + 1
	}
	return text[idx:]
}
