package events

// Event type constants for kelindar/event.
const (
	TypeFrameRendered uint32 = iota + 1
	TypeFrameRejected
	TypeConfigChanged
	TypePort
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// Rejection reasons carried by FrameRejectedEvent.
const (
	ReasonCountMismatch = "count_mismatch"
	ReasonNotAFrame     = "not_a_frame"
)

// FrameRenderedEvent is published after a frame reached the renderer.
type FrameRenderedEvent struct {
	Sequence uint64  `json:"sequence"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Rotation int     `json:"rotation"`
	FPS      float64 `json:"fps"`
}

// Type returns the event type identifier for FrameRenderedEvent.
func (e FrameRenderedEvent) Type() uint32 { return TypeFrameRendered }

// FrameRejectedEvent is published for every line that was not a usable frame.
type FrameRejectedEvent struct {
	Reason   string `json:"reason"`
	Expected int    `json:"expected"`
	Got      int    `json:"got"`
}

// Type returns the event type identifier for FrameRejectedEvent.
func (e FrameRejectedEvent) Type() uint32 { return TypeFrameRejected }

// ConfigChangedEvent is published when a directive changed the runtime configuration.
type ConfigChangedEvent struct {
	Config string   `json:"config"`
	Keys   []string `json:"keys"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Source string   `json:"source"`
}

// Type returns the event type identifier for ConfigChangedEvent.
func (e ConfigChangedEvent) Type() uint32 { return TypeConfigChanged }

// PortEvent represents a serial port appearing or disappearing.
type PortEvent struct {
	Action string `json:"action"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}

// Type returns the event type identifier for PortEvent.
func (e PortEvent) Type() uint32 { return TypePort }
