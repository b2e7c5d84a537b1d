package platform

import (
	"fmt"
	"sort"

	"github.com/golang/glog"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortLister enumerates serial ports
type PortLister interface {
	ListPorts() ([]string, error)
}

// PortListerFunc adapts a function to PortLister
type PortListerFunc func() ([]string, error)

// ListPorts calls f
func (f PortListerFunc) ListPorts() ([]string, error) {
	return f()
}

// SerialPorts lists the serial ports of this machine
type SerialPorts struct{}

// ListPorts returns the sorted device names of all serial ports. Detailed USB
// enumeration is tried first; if it is unavailable the plain port list is used.
func (SerialPorts) ListPorts() ([]string, error) {
	return ListSerialPorts()
}

// ListSerialPorts returns the sorted device names of all serial ports
func ListSerialPorts() ([]string, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err == nil {
		names := make([]string, 0, len(details))
		for _, p := range details {
			if p == nil || p.Name == "" {
				continue
			}
			glog.V(1).Infof("found port %s (usb=%v vid=%s pid=%s serial=%s)", p.Name, p.IsUSB, p.VID, p.PID, p.SerialNumber)
			names = append(names, p.Name)
		}
		sort.Strings(names)
		return names, nil
	}
	glog.V(1).Infof("detailed port enumeration failed, falling back: %v", err)

	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
