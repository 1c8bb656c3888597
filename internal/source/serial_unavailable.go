//go:build noserial

package source

import "context"

// SerialAvailable reports whether this build can open serial ports.
const SerialAvailable = false

var errSerialUnavailable = NewError(ErrCodeSerialUnavailable,
	"serial support not compiled in; use --stdin or --file", nil)

// Serial is a placeholder in builds without serial support.
type Serial struct{}

// OpenSerial always fails in builds without serial support.
func OpenSerial(string, int) (*Serial, error) {
	return nil, errSerialUnavailable
}

func (*Serial) Next(context.Context) (string, error) { return "", errSerialUnavailable }
func (*Serial) Close() error                         { return nil }
func (*Serial) Describe() string                     { return "serial:unavailable" }

// ListPorts always fails in builds without serial support.
func ListPorts() ([]PortInfo, error) {
	return nil, errSerialUnavailable
}
