package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BaudRate is one of the serial speeds esptool is offered
type BaudRate int

// BaudRates lists the selectable rates in ascending order
var BaudRates = []BaudRate{9600, 57600, 74880, 115200, 230400, 460800, 921600}

// DefaultBaudRate is the fastest supported rate
const DefaultBaudRate BaudRate = 921600

// String returns the decimal form used on the command line and in project files
func (b BaudRate) String() string {
	return strconv.Itoa(int(b))
}

// Valid reports whether b is one of BaudRates
func (b BaudRate) Valid() bool {
	for _, r := range BaudRates {
		if r == b {
			return true
		}
	}
	return false
}

// ParseBaudRate parses a decimal baud rate and rejects unsupported values
func ParseBaudRate(s string) (BaudRate, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid baud rate %q: %w", s, err)
	}
	b := BaudRate(n)
	if !b.Valid() {
		return 0, fmt.Errorf("unsupported baud rate %d", n)
	}
	return b, nil
}

// BaudRateStrings returns BaudRates formatted for selection widgets
func BaudRateStrings() []string {
	out := make([]string, 0, len(BaudRates))
	for _, b := range BaudRates {
		out = append(out, b.String())
	}
	return out
}
