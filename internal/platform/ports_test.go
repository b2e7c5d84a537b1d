package platform

import (
	"errors"
	"sort"
	"testing"
)

func TestPortListerFunc(t *testing.T) {
	var lister PortLister = PortListerFunc(func() ([]string, error) {
		return []string{"COM3"}, nil
	})
	ports, err := lister.ListPorts()
	if err != nil || len(ports) != 1 || ports[0] != "COM3" {
		t.Errorf("Unexpected result %v, %v", ports, err)
	}

	failing := PortListerFunc(func() ([]string, error) { return nil, errors.New("no access") })
	if _, err := failing.ListPorts(); err == nil {
		t.Error("Expected error to be passed through")
	}
}

func TestListSerialPorts_Sorted(t *testing.T) {
	ports, err := SerialPorts{}.ListPorts()
	if err != nil {
		t.Skipf("serial enumeration unavailable: %v", err)
	}
	if !sort.StringsAreSorted(ports) {
		t.Errorf("Expected sorted port list, got %v", ports)
	}
}
