// Package render draws pixel buffers on a terminal, either as ANSI
// truecolor blocks or as ASCII luminance glyphs.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/smazurov/ledviz/internal/frame"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	reset       = "\x1b[0m"
)

// Glyphs is the 10-step ASCII brightness ramp, darkest first.
const Glyphs = " .,:;ox%#@"

// Options controls how frames are drawn.
type Options struct {
	ASCII      bool
	Grid       bool
	DoubleWide bool
}

// DefaultOptions draws colored double-wide cells with grid axes.
func DefaultOptions() Options {
	return Options{Grid: true, DoubleWide: true}
}

// Renderer writes frames to a terminal.
type Renderer struct {
	out   *bufio.Writer
	opts  Options
	clear bool
}

// New creates a renderer writing to w. The screen is cleared before each
// frame only when w is a terminal, so redirected output stays readable.
func New(w io.Writer, opts Options) *Renderer {
	return &Renderer{
		out:   bufio.NewWriterSize(w, 64*1024),
		opts:  opts,
		clear: IsTerminal(w),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render draws buf below an optional header line and flushes.
func (r *Renderer) Render(buf frame.Buffer, header string) error {
	if r.clear {
		r.out.WriteString(clearScreen)
	}
	r.out.WriteString(Format(buf, r.opts, header))
	r.out.WriteByte('\n')
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// Format returns the text for one frame without a trailing newline.
func Format(buf frame.Buffer, opts Options, header string) string {
	var sb strings.Builder
	lines := 0
	newline := func() {
		if lines > 0 {
			sb.WriteByte('\n')
		}
		lines++
	}

	if header != "" {
		newline()
		sb.WriteString(header)
	}

	rule := "  " + strings.Repeat("-", max(2*buf.Width-1, 0))
	if opts.Grid {
		newline()
		sb.WriteString("  ")
		for x := 0; x < buf.Width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(x))
		}
		newline()
		sb.WriteString(rule)
	}

	cell := " "
	if opts.DoubleWide {
		cell = "  "
	}
	for y := 0; y < buf.Height; y++ {
		newline()
		if opts.Grid {
			sb.WriteString(strconv.Itoa(y))
			sb.WriteByte('|')
		}
		for x := 0; x < buf.Width; x++ {
			p := buf.At(x, y)
			if opts.ASCII {
				sb.WriteByte(Glyph(p))
				continue
			}
			sb.WriteString(background(p))
			sb.WriteString(cell)
			sb.WriteString(reset)
		}
		if opts.Grid {
			sb.WriteByte('|')
		}
	}

	if opts.Grid {
		newline()
		sb.WriteString(rule)
	}
	return sb.String()
}

// Glyph maps a pixel's luminance onto Glyphs. The epsilon keeps full white
// on '@' despite the weights summing to just under one in floating point.
func Glyph(p frame.Pixel) byte {
	idx := int(p.Luminance()/255*float64(len(Glyphs)-1) + 1e-9)
	return Glyphs[min(max(idx, 0), len(Glyphs)-1)]
}

// Header formats the status line shown with --stats.
func Header(width, height int, source string, fps float64) string {
	return fmt.Sprintf("LEDViz %dx%d  src=%s  fps=%.1f", width, height, source, fps)
}

func background(p frame.Pixel) string {
	return "\x1b[48;2;" + strconv.Itoa(int(p.R)) + ";" + strconv.Itoa(int(p.G)) + ";" + strconv.Itoa(int(p.B)) + "m"
}
