// Package matrix maps LED strip data onto a canonical grid and applies the
// configured orientation.
package matrix

import (
	"strings"

	"github.com/smazurov/ledviz/internal/frame"
)

// MaxSide bounds each matrix dimension so a frame always fits in memory.
const MaxSide = 4096

// Geometry is the size of the LED matrix.
type Geometry struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Area returns the number of pixels in a frame.
func (g Geometry) Area() int {
	return g.Width * g.Height
}

// Valid reports whether both dimensions are in 1..MaxSide.
func (g Geometry) Valid() bool {
	return validSide(g.Width) && validSide(g.Height)
}

func validSide(n int) bool {
	return n > 0 && n <= MaxSide
}

// Order describes how tokens in a frame line are ordered.
type Order string

const (
	// OrderXY means tokens are already row-major.
	OrderXY Order = "xy"
	// OrderLED means tokens follow the physical strip.
	OrderLED Order = "led"
)

// ParseOrder matches s case-insensitively.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(OrderXY):
		return OrderXY, true
	case string(OrderLED):
		return OrderLED, true
	default:
		return "", false
	}
}

// Wiring is the physical layout of the strip across the panel.
type Wiring string

const (
	// WiringSerpentine reverses direction on every odd row.
	WiringSerpentine Wiring = "serpentine"
	// WiringProgressive runs left to right on every row.
	WiringProgressive Wiring = "progressive"
)

// ParseWiring matches s case-insensitively.
func ParseWiring(s string) (Wiring, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(WiringSerpentine):
		return WiringSerpentine, true
	case string(WiringProgressive):
		return WiringProgressive, true
	default:
		return "", false
	}
}

// PhysicalIndex returns the strip index of the LED at (x, y).
func (w Wiring) PhysicalIndex(x, y, width int) int {
	if w == WiringSerpentine && y%2 == 1 {
		return y*width + (width - 1 - x)
	}
	return y*width + x
}

// ToCanonical arranges pixels into a row-major buffer of size g.
//
// With OrderXY the pixels are taken as they are. With OrderLED each canonical
// slot is looked up through the wiring; slots whose strip index falls outside
// pixels stay black.
func ToCanonical(pixels []frame.Pixel, g Geometry, order Order, wiring Wiring) frame.Buffer {
	if order != OrderLED {
		if len(pixels) == g.Area() {
			return frame.Buffer{Width: g.Width, Height: g.Height, Pixels: pixels}
		}
		out := frame.NewBuffer(g.Width, g.Height)
		copy(out.Pixels, pixels)
		return out
	}

	out := frame.NewBuffer(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			src := wiring.PhysicalIndex(x, y, g.Width)
			if src >= 0 && src < len(pixels) {
				out.Set(x, y, pixels[src])
			}
		}
	}
	return out
}
