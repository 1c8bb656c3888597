package pipeline

import "time"

// fpsWindow is how often the measured rate is refreshed.
const fpsWindow = 500 * time.Millisecond

// fpsMeter measures the render rate over fixed windows.
type fpsMeter struct {
	now    func() time.Time
	start  time.Time
	frames int
	fps    float64
}

func newFPSMeter(now func() time.Time) fpsMeter {
	return fpsMeter{now: now, start: now()}
}

// tick records one frame and returns the latest measured rate.
func (m *fpsMeter) tick() float64 {
	m.frames++
	now := m.now()
	if dt := now.Sub(m.start); dt >= fpsWindow {
		m.fps = float64(m.frames) / dt.Seconds()
		m.frames = 0
		m.start = now
	}
	return m.fps
}
