// Package metrics provides Prometheus metrics for the frame pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Line kinds counted by lines_total.
const (
	KindFrame     = "frame"
	KindDirective = "directive"
	KindRejected  = "rejected"
)

var (
	linesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledviz",
		Subsystem: "pipeline",
		Name:      "lines_total",
		Help:      "Input lines by classification",
	}, []string{"kind"})

	framesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledviz",
		Subsystem: "pipeline",
		Name:      "frames_rendered_total",
		Help:      "Frames handed to the renderer",
	})

	directivesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledviz",
		Subsystem: "pipeline",
		Name:      "directives_applied_total",
		Help:      "Directives that changed the runtime configuration",
	})

	renderFPS = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledviz",
		Subsystem: "pipeline",
		Name:      "fps",
		Help:      "Most recently measured render rate",
	})

	matrixWidth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledviz",
		Subsystem: "pipeline",
		Name:      "matrix_width",
		Help:      "Configured input matrix width",
	})

	matrixHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledviz",
		Subsystem: "pipeline",
		Name:      "matrix_height",
		Help:      "Configured input matrix height",
	})

	portEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledviz",
		Subsystem: "source",
		Name:      "port_events_total",
		Help:      "Serial port hotplug events",
	}, []string{"action"})
)

// IncLine counts one input line of the given kind.
func IncLine(kind string) {
	linesTotal.WithLabelValues(kind).Inc()
}

// IncFramesRendered counts one rendered frame.
func IncFramesRendered() {
	framesRendered.Inc()
}

// IncDirectivesApplied counts one effective directive.
func IncDirectivesApplied() {
	directivesApplied.Inc()
}

// SetFPS records the current render rate.
func SetFPS(fps float64) {
	renderFPS.Set(fps)
}

// SetGeometry records the matrix dimensions.
func SetGeometry(width, height int) {
	matrixWidth.Set(float64(width))
	matrixHeight.Set(float64(height))
}

// IncPortEvent counts one hotplug event.
func IncPortEvent(action string) {
	portEvents.WithLabelValues(action).Inc()
}
