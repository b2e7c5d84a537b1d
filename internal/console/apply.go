package console

import "strings"

// Backspace erases one previously displayed character
const Backspace = '\b'

// Apply appends chunk to current. Each backspace in chunk removes the last
// character accumulated so far, including characters from current; it never
// goes past the start of the text.
func Apply(current, chunk string) string {
	if !strings.ContainsRune(chunk, Backspace) {
		return current + chunk
	}

	out := []rune(current)
	for _, r := range chunk {
		if r == Backspace {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
