package metrics

import (
	"log/slog"

	"github.com/smazurov/ledviz/internal/events"
)

// Recorder subscribes to pipeline events and keeps the Prometheus metrics current.
type Recorder struct {
	eventBus *events.Bus
	unsubs   []func()
	logger   *slog.Logger
}

// NewRecorder creates a recorder for eventBus.
func NewRecorder(eventBus *events.Bus, logger *slog.Logger) *Recorder {
	return &Recorder{
		eventBus: eventBus,
		logger:   logger,
	}
}

// Start begins listening for pipeline events.
func (r *Recorder) Start() {
	r.unsubs = append(r.unsubs,
		r.eventBus.Subscribe(func(e events.FrameRenderedEvent) {
			IncLine(KindFrame)
			IncFramesRendered()
			SetFPS(e.FPS)
		}),
		r.eventBus.Subscribe(func(_ events.FrameRejectedEvent) {
			IncLine(KindRejected)
		}),
		r.eventBus.Subscribe(func(e events.ConfigChangedEvent) {
			IncLine(KindDirective)
			IncDirectivesApplied()
			SetGeometry(e.Width, e.Height)
		}),
		r.eventBus.Subscribe(func(e events.PortEvent) {
			IncPortEvent(e.Action)
		}),
	)
	r.logger.Debug("Metrics recorder started")
}

// Stop unsubscribes from all events.
func (r *Recorder) Stop() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
	r.logger.Debug("Metrics recorder stopped")
}
