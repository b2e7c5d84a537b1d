package console

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		chunk    string
		expected string
	}{
		{"plain append", "Connecting", "....", "Connecting...."},
		{"progress redraw", "Writing...50%", "\b\b\b40%", "Writing...40%"},
		{"backspace within chunk", "", "abc\b\bd", "ad"},
		{"more backspaces than text", "ab", "\b\b\b\bxy", "xy"},
		{"only backspaces", "Writing at 0x00010000... (10 %)", "\b\b\b\b\b\b", "Writing at 0x00010000... ("},
		{"empty chunk", "keep", "", "keep"},
		{"multibyte runes", "Größe 1%", "\b\b2%", "Größe 2%"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := Apply(test.current, test.chunk)
			if result != test.expected {
				t.Errorf("Apply(%q, %q) = %q, expected %q", test.current, test.chunk, result, test.expected)
			}
		})
	}
}

func TestApply_ChunkSplitAcrossWrites(t *testing.T) {
	text := "Writing...50%"
	for _, chunk := range []string{"\b", "\b\b", "4", "0%"} {
		text = Apply(text, chunk)
	}
	if text != "Writing...40%" {
		t.Errorf("Expected %q, got %q", "Writing...40%", text)
	}
}
