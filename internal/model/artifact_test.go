package model

import "testing"

func TestParseOffset(t *testing.T) {
	tests := []struct {
		input   string
		want    uint32
		wantErr bool
	}{
		{"0x1000", 0x1000, false},
		{"0X8000", 0x8000, false},
		{"290000", 0x290000, false},
		{" 0x10000 ", 0x10000, false},
		{"", 0, true},
		{"0x", 0, true},
		{"0xZZ", 0, true},
		{"0x1FFFFFFFF", 0, true},
	}

	for _, test := range tests {
		got, err := ParseOffset(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseOffset(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseOffset(%q) = %#x, expected %#x", test.input, got, test.want)
		}
	}
}

func TestSlot_Ready(t *testing.T) {
	tests := []struct {
		slot     Slot
		expected bool
	}{
		{Slot{Include: false}, true},
		{Slot{Include: true, PathSet: false}, false},
		{Slot{Include: true, PathSet: true}, true},
	}

	for _, test := range tests {
		if test.slot.Ready() != test.expected {
			t.Errorf("Slot%+v.Ready() = %v, expected %v", test.slot, test.slot.Ready(), test.expected)
		}
	}
}

func TestParseBaudRate(t *testing.T) {
	for _, b := range BaudRates {
		got, err := ParseBaudRate(b.String())
		if err != nil || got != b {
			t.Errorf("ParseBaudRate(%s) = %v, %v", b, got, err)
		}
	}

	for _, bad := range []string{"", "fast", "12345", "-9600"} {
		if _, err := ParseBaudRate(bad); err == nil {
			t.Errorf("ParseBaudRate(%q) expected error", bad)
		}
	}
}

func TestDefaultBaudRateIsHighest(t *testing.T) {
	if DefaultBaudRate != BaudRates[len(BaudRates)-1] {
		t.Errorf("Default baud %v is not the highest rate", DefaultBaudRate)
	}
}
