//go:build !noserial

package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smazurov/ledviz/internal/logging"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialAvailable reports whether this build can open serial ports.
const SerialAvailable = true

// readTimeout bounds each Read so cancellation is noticed promptly.
const readTimeout = 50 * time.Millisecond

// Serial reads lines from a serial port.
type Serial struct {
	port   serial.Port
	name   string
	baud   int
	chunk  []byte
	lines  lineBuffer
	logger *slog.Logger
}

// OpenSerial opens name at the given baud rate, 8N1.
func OpenSerial(name string, baud int) (*Serial, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, NewError(ErrCodeOpenFailed, "failed to open serial port "+name, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, NewError(ErrCodeOpenFailed, "failed to set read timeout on "+name, err)
	}

	s := &Serial{
		port:   port,
		name:   name,
		baud:   baud,
		chunk:  make([]byte, 4096),
		logger: logging.GetLogger("source"),
	}
	s.logger.Info("Opened serial port", "port", name, "baud", baud)
	return s, nil
}

// Next blocks until a full line arrives, ctx is cancelled or the port fails.
func (s *Serial) Next(ctx context.Context) (string, error) {
	for {
		if line, ok := s.lines.next(); ok {
			return line, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := s.port.Read(s.chunk)
		if err != nil {
			return "", NewError(ErrCodeReadFailed, "failed to read "+s.name, err)
		}
		if n == 0 {
			continue
		}
		if !s.lines.write(s.chunk[:n]) {
			s.logger.Warn("Discarded oversized line", "port", s.name, "limit", MaxLineBytes)
		}
	}
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}

// Describe implements LineSource.
func (s *Serial) Describe() string {
	return fmt.Sprintf("serial:%s@%d", s.name, s.baud)
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, NewError(ErrCodeNoPort, "failed to enumerate serial ports", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return ports, nil
}
