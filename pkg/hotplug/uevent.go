// Package hotplug reports kernel device events for serial ports.
//
// On Linux it listens to NETLINK_KOBJECT_UEVENT directly, so it needs
// neither cgo nor udev. Other platforms return ErrUnsupported.
package hotplug

import (
	"bytes"
	"errors"
	"strings"
)

// ErrUnsupported is returned by NewMonitor where uevents do not exist.
var ErrUnsupported = errors.New("hotplug: not supported on this platform")

// Kernel uevent actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionChange = "change"
	ActionBind   = "bind"
	ActionUnbind = "unbind"
)

// SubsystemTTY carries serial device nodes such as ttyACM0 and ttyUSB0.
const SubsystemTTY = "tty"

// Event is one kernel uevent.
type Event struct {
	Action    string            // "add", "remove", ...
	KObj      string            // /devices/pci0000:00/.../tty/ttyACM0
	Subsystem string            // "tty"
	DevName   string            // "ttyACM0"
	Env       map[string]string // every KEY=VALUE of the message
}

// Node returns the device node path, or "" when the event has none.
func (e Event) Node() string {
	if e.DevName == "" {
		return ""
	}
	return "/dev/" + e.DevName
}

// serialPrefixes are tty device names backed by USB or UART hardware rather
// than virtual consoles.
var serialPrefixes = []string{"ttyACM", "ttyUSB", "ttyAMA", "ttyS", "rfcomm"}

// IsSerialPort reports whether the event concerns a serial port node.
func (e Event) IsSerialPort() bool {
	if e.Subsystem != SubsystemTTY {
		return false
	}
	for _, p := range serialPrefixes {
		if strings.HasPrefix(e.DevName, p) {
			return true
		}
	}
	return false
}

// ParseUEvent decodes a message of the form "ACTION@KOBJ\0KEY=VALUE\0...".
func ParseUEvent(data []byte) (Event, bool) {
	parts := bytes.Split(data, []byte{0})
	if len(parts) == 0 || len(parts[0]) == 0 {
		return Event{}, false
	}

	action, kobj, found := strings.Cut(string(parts[0]), "@")
	if !found || action == "" {
		return Event{}, false
	}

	ev := Event{
		Action: action,
		KObj:   kobj,
		Env:    make(map[string]string),
	}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(string(part), "=")
		if !ok || key == "" {
			continue
		}
		ev.Env[key] = value
		switch key {
		case "SUBSYSTEM":
			ev.Subsystem = value
		case "DEVNAME":
			ev.DevName = strings.TrimPrefix(value, "/dev/")
		}
	}
	return ev, true
}
