package source

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/smazurov/ledviz/internal/frame"
	"github.com/smazurov/ledviz/internal/matrix"
)

// Pattern selects what the demo source draws.
type Pattern string

// Demo patterns.
const (
	PatternSwirl       Pattern = "swirl"
	PatternRainbow     Pattern = "rainbow"
	PatternCalibration Pattern = "calibration"
)

// Patterns lists the accepted pattern names.
var Patterns = []Pattern{PatternSwirl, PatternRainbow, PatternCalibration}

// ParsePattern accepts a pattern name in any case.
func ParsePattern(s string) (Pattern, bool) {
	p := Pattern(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Patterns {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// Calibration corner colors, matching the firmware test pattern.
var (
	CornerTopLeft     = frame.Pixel{G: 255}
	CornerTopRight    = frame.Pixel{R: 255}
	CornerBottomLeft  = frame.Pixel{B: 255}
	CornerBottomRight = frame.Pixel{R: 255, G: 255, B: 255}
	chaseColor        = frame.Pixel{R: 96, G: 96, B: 96}
)

// DefaultDemoFPS is the demo frame rate when none is given.
const DefaultDemoFPS = 30

// Demo synthesizes the line stream a device would send: one META line
// describing cfg, then FRAME lines at a fixed rate.
type Demo struct {
	cfg      matrix.Config
	pattern  Pattern
	interval time.Duration
	// Limit stops the stream with io.EOF after that many frames when positive.
	Limit int

	ticker  *time.Ticker
	started time.Time
	frames  int
	sentMap bool
}

// NewDemo creates a demo source. fps <= 0 selects DefaultDemoFPS.
func NewDemo(cfg matrix.Config, pattern Pattern, fps float64) *Demo {
	if fps <= 0 {
		fps = DefaultDemoFPS
	}
	return &Demo{
		cfg:      cfg,
		pattern:  pattern,
		interval: time.Duration(float64(time.Second) / fps),
	}
}

// Next implements LineSource.
func (d *Demo) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !d.sentMap {
		d.sentMap = true
		return d.cfg.Directive().String(), nil
	}
	if d.Limit > 0 && d.frames >= d.Limit {
		return "", io.EOF
	}

	if d.ticker == nil {
		d.ticker = time.NewTicker(d.interval)
		d.started = time.Now()
	} else {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-d.ticker.C:
		}
	}

	elapsed := time.Since(d.started)
	line := frame.EncodeLine(d.Physical(d.Canonical(d.frames, elapsed)))
	d.frames++
	return line, nil
}

// Close stops the frame ticker.
func (d *Demo) Close() error {
	if d.ticker != nil {
		d.ticker.Stop()
	}
	return nil
}

// Describe implements LineSource.
func (d *Demo) Describe() string {
	return "demo:" + string(d.pattern)
}

// Canonical draws frame n of the pattern, elapsed into the run, in
// row-major order.
func (d *Demo) Canonical(n int, elapsed time.Duration) frame.Buffer {
	g := d.cfg.Geometry
	buf := frame.NewBuffer(g.Width, g.Height)
	t := elapsed.Seconds()

	switch d.pattern {
	case PatternRainbow:
		span := float64(g.Width + g.Height)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				hue := math.Mod(float64(x+y)/span*360+t*90, 360)
				r, gr, b := colorful.Hsv(hue, 1, 1).Clamped().RGB255()
				buf.Set(x, y, frame.Pixel{R: r, G: gr, B: b})
			}
		}
	case PatternCalibration:
		area := g.Area()
		if area == 0 {
			break
		}
		// A chase dot walks the strip in physical order.
		x, y := d.coordOf(n % area)
		buf.Set(x, y, chaseColor)
		buf.Set(0, 0, CornerTopLeft)
		buf.Set(g.Width-1, 0, CornerTopRight)
		buf.Set(0, g.Height-1, CornerBottomLeft)
		buf.Set(g.Width-1, g.Height-1, CornerBottomRight)
	default:
		phase := t * 2
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				v := (float64(x+y) + phase) * 12
				buf.Set(x, y, frame.Pixel{
					R: wave(v * 0.12),
					G: wave(v*0.10 + 2.1),
					B: wave(v*0.14 + 4.2),
				})
			}
		}
	}
	return buf
}

// Physical lays buf out in the order the configured device would send it.
func (d *Demo) Physical(buf frame.Buffer) []frame.Pixel {
	if d.cfg.Order != matrix.OrderLED {
		return buf.Pixels
	}
	out := make([]frame.Pixel, len(buf.Pixels))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if i := d.cfg.Wiring.PhysicalIndex(x, y, buf.Width); i >= 0 && i < len(out) {
				out[i] = buf.At(x, y)
			}
		}
	}
	return out
}

// coordOf inverts the wiring for strip index i.
func (d *Demo) coordOf(i int) (int, int) {
	w := d.cfg.Geometry.Width
	x, y := i%w, i/w
	if d.cfg.Wiring == matrix.WiringSerpentine && y%2 == 1 {
		x = w - 1 - x
	}
	return x, y
}

func wave(v float64) uint8 {
	return uint8((1 + math.Sin(v)) * 127)
}

func (p Pattern) String() string { return string(p) }
