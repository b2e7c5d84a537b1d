// Package console carries esptool output from the worker to the goroutine that
// owns the displayed text. Chunks travel over a bounded channel (Sink) and are
// folded into the text with Apply, which honours the backspace characters
// esptool uses to redraw its progress indicator.
package console
