// Package pipeline drives the visualizer: it pulls lines from a source,
// applies configuration directives, turns frame lines into display buffers
// and hands them to a renderer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/smazurov/ledviz/internal/events"
	"github.com/smazurov/ledviz/internal/frame"
	"github.com/smazurov/ledviz/internal/logging"
	"github.com/smazurov/ledviz/internal/matrix"
	"github.com/smazurov/ledviz/internal/render"
	"github.com/smazurov/ledviz/internal/source"
	"golang.org/x/time/rate"
)

// Directive origins reported in ConfigChangedEvent.Source.
const (
	OriginStream = "stream"
	OriginFile   = "file"
)

// Renderer draws one processed frame.
type Renderer interface {
	Render(buf frame.Buffer, header string) error
}

// Options tune the driver.
type Options struct {
	// Stats prefixes each frame with a status header.
	Stats bool
	// FPS caps the render rate. Zero or negative renders every frame immediately.
	FPS float64
}

type submitted struct {
	directive matrix.Directive
	origin    string
}

// Driver runs the line loop. The configuration is owned by the goroutine
// calling Run; other goroutines change it only through Submit.
type Driver struct {
	src      source.LineSource
	renderer Renderer
	bus      *events.Bus
	opts     Options
	cfg      matrix.Config
	limiter  *rate.Limiter
	pending  chan submitted
	meter    fpsMeter
	sequence uint64
	logger   *slog.Logger
}

// New creates a driver starting from cfg. bus may be nil.
func New(src source.LineSource, renderer Renderer, cfg matrix.Config, bus *events.Bus, opts Options) *Driver {
	d := &Driver{
		src:      src,
		renderer: renderer,
		bus:      bus,
		opts:     opts,
		cfg:      cfg,
		pending:  make(chan submitted, 4),
		meter:    newFPSMeter(time.Now),
		logger:   logging.GetLogger("pipeline"),
	}
	if opts.FPS > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(opts.FPS), 1)
	}
	return d
}

// Submit queues a directive from outside the stream, such as a config file
// reload. It is applied before the next line is processed.
func (d *Driver) Submit(dir matrix.Directive, origin string) {
	select {
	case d.pending <- submitted{directive: dir, origin: origin}:
	default:
		d.logger.Warn("Dropped directive, too many pending", "directive", dir.String(), "origin", origin)
	}
}

// Config returns the current configuration. Only call it from the Run
// goroutine or after Run returned.
func (d *Driver) Config() matrix.Config {
	return d.cfg
}

// Run processes lines until the source is exhausted or ctx is cancelled,
// both of which return nil. Source and renderer failures are returned.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("Waiting for FRAME lines", "source", d.src.Describe(), "config", d.cfg.String())

	for {
		d.applyPending()

		line, err := d.src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.logger.Info("Source exhausted", "source", d.src.Describe(), "frames", d.sequence)
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("line source %s: %w", d.src.Describe(), err)
		}

		if err := d.HandleLine(ctx, line); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (d *Driver) applyPending() {
	for {
		select {
		case s := <-d.pending:
			d.applyDirective(s.directive, s.origin)
		default:
			return
		}
	}
}

// HandleLine classifies and processes a single line. Only rendering and
// rate limiting can fail; malformed input is skipped.
func (d *Driver) HandleLine(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if dir, ok := matrix.ParseDirective(line); ok {
		d.applyDirective(dir, OriginStream)
		return nil
	}

	expected := d.cfg.Expected()
	pixels, ok := frame.ParseLine(line, expected)
	if !ok {
		d.reject(line, expected)
		return nil
	}

	buf := d.cfg.Process(pixels)

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	fps := d.meter.tick()

	var header string
	if d.opts.Stats {
		header = render.Header(buf.Width, buf.Height, d.src.Describe(), fps)
	}
	if err := d.renderer.Render(buf, header); err != nil {
		return err
	}

	d.sequence++
	d.bus.Publish(events.FrameRenderedEvent{
		Sequence: d.sequence,
		Width:    buf.Width,
		Height:   buf.Height,
		Rotation: d.cfg.Transform.Rotation,
		FPS:      fps,
	})
	return nil
}

func (d *Driver) applyDirective(dir matrix.Directive, origin string) {
	changed := d.cfg.Apply(dir)
	if len(changed) == 0 {
		d.logger.Debug("Directive left config unchanged", "directive", dir.String(), "origin", origin)
		return
	}

	d.logger.Info("Config updated", "config", d.cfg.String(), "keys", changed, "origin", origin)
	d.bus.Publish(events.ConfigChangedEvent{
		Config: d.cfg.String(),
		Keys:   changed,
		Width:  d.cfg.Geometry.Width,
		Height: d.cfg.Geometry.Height,
		Source: origin,
	})
}

func (d *Driver) reject(line string, expected int) {
	got := frame.CountTokens(line)
	reason := events.ReasonNotAFrame
	if strings.HasPrefix(line, frame.Prefix) || got > 0 {
		reason = events.ReasonCountMismatch
		d.logger.Debug(fmt.Sprintf("Ignored frame (expected %d tokens, got %d)", expected, got))
	} else {
		d.logger.Debug("Non-frame line", "line", line)
	}

	d.bus.Publish(events.FrameRejectedEvent{
		Reason:   reason,
		Expected: expected,
		Got:      got,
	})
}
