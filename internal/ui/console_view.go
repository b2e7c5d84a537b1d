package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/espdfu/espdfu/internal/console"
)

// ConsoleView is the read-only text area esptool output is shown in
type ConsoleView struct {
	label  *widget.Label
	scroll *container.Scroll
	buffer *console.Buffer

	// coalesces bursts of output into one UI update
	mu        sync.Mutex
	pending   string
	scheduled bool
}

// NewConsoleView creates an empty console
func NewConsoleView() *ConsoleView {
	v := &ConsoleView{
		label:  widget.NewLabel(""),
		buffer: console.NewBuffer(ConsoleMaxLines),
	}
	v.label.TextStyle = fyne.TextStyle{Monospace: true}
	v.label.Wrapping = fyne.TextWrapBreak
	v.scroll = container.NewVScroll(v.label)
	v.scroll.SetMinSize(fyne.NewSize(0, ConsoleMinHeight))
	return v
}

// Container returns the scrollable console
func (v *ConsoleView) Container() fyne.CanvasObject {
	return v.scroll
}

// Text returns what the console currently holds
func (v *ConsoleView) Text() string {
	return v.buffer.String()
}

// Attach starts draining sink into the view. It returns immediately; the
// drain ends when the sink is closed.
func (v *ConsoleView) Attach(sink *console.Sink) {
	go v.buffer.Drain(sink.Chunks(), v.schedule)
}

func (v *ConsoleView) schedule(text string) {
	v.mu.Lock()
	v.pending = text
	if v.scheduled {
		v.mu.Unlock()
		return
	}
	v.scheduled = true
	v.mu.Unlock()

	fyne.Do(func() {
		v.mu.Lock()
		text := v.pending
		v.scheduled = false
		v.mu.Unlock()

		v.label.SetText(text)
		v.scroll.ScrollToBottom()
	})
}
