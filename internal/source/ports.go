package source

import (
	"errors"
	"fmt"
	"strings"
)

// PortInfo describes a serial port.
type PortInfo struct {
	Name         string `json:"name"`
	IsUSB        bool   `json:"is_usb"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Product      string `json:"product,omitempty"`
}

// HardwareID formats the USB identity of the port, or "n/a".
func (p PortInfo) HardwareID() string {
	if !p.IsUSB {
		return "n/a"
	}
	id := fmt.Sprintf("USB VID:PID=%s:%s", strings.ToUpper(p.VID), strings.ToUpper(p.PID))
	if p.SerialNumber != "" {
		id += " SER=" + p.SerialNumber
	}
	return id
}

func (p PortInfo) String() string {
	return p.Name + "\t" + p.Product + "\t" + p.HardwareID()
}

// preferredNames are substrings of typical USB CDC device names.
var preferredNames = []string{"ACM", "USB", "cu.", "COM"}

// SelectPort picks the first port whose name looks like a USB serial
// adapter, falling back to the first port listed.
func SelectPort(ports []PortInfo) (string, bool) {
	for _, p := range ports {
		for _, s := range preferredNames {
			if strings.Contains(p.Name, s) {
				return p.Name, true
			}
		}
	}
	if len(ports) > 0 {
		return ports[0].Name, true
	}
	return "", false
}

// AutoDetect enumerates ports and selects one with SelectPort. Every
// failure is a *Error.
func AutoDetect() (string, error) {
	return autoDetect(ListPorts)
}

func autoDetect(list func() ([]PortInfo, error)) (string, error) {
	ports, err := list()
	if err != nil {
		var srcErr *Error
		if errors.As(err, &srcErr) {
			return "", err
		}
		return "", NewError(ErrCodeNoPort, "failed to enumerate serial ports", err)
	}
	name, ok := SelectPort(ports)
	if !ok {
		return "", NewError(ErrCodeNoPort, "no serial port found; use --port or --stdin/--file", nil)
	}
	return name, nil
}
