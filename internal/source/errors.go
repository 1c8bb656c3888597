package source

import "fmt"

// Error is returned when a line source cannot be opened or read.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeNoPort            = "NO_PORT"
	ErrCodeSerialUnavailable = "SERIAL_UNAVAILABLE"
	ErrCodeOpenFailed        = "OPEN_FAILED"
	ErrCodeReadFailed        = "READ_FAILED"
)

// NewError creates a new source error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
