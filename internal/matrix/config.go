package matrix

import (
	"fmt"

	"github.com/smazurov/ledviz/internal/frame"
)

// Config is the runtime configuration shared by every pipeline stage.
// It is only changed through Apply.
type Config struct {
	Geometry  Geometry
	Order     Order
	Wiring    Wiring
	Transform Transform
	// ColorOrder is the strip's channel order as reported by the firmware.
	// It is informational; tokens are always RRGGBB.
	ColorOrder string
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Geometry: Geometry{Width: 8, Height: 8},
		Order:    OrderXY,
		Wiring:   WiringSerpentine,
	}
}

// Expected returns the token count a frame line must carry.
func (c Config) Expected() int {
	return c.Geometry.Area()
}

// Process maps physical-order pixels to a display-ready buffer.
func (c Config) Process(pixels []frame.Pixel) frame.Buffer {
	canonical := ToCanonical(pixels, c.Geometry, c.Order, c.Wiring)
	return c.Transform.Apply(canonical)
}

// Directive encodes the whole configuration as a directive.
func (c Config) Directive() Directive {
	d := Directive{
		{Key: KeyWidth, Value: fmt.Sprint(c.Geometry.Width)},
		{Key: KeyHeight, Value: fmt.Sprint(c.Geometry.Height)},
		{Key: KeyOrder, Value: string(c.Order)},
		{Key: KeyWiring, Value: string(c.Wiring)},
		{Key: KeyRotation, Value: fmt.Sprint(c.Transform.Rotation)},
		{Key: KeyFlipX, Value: boolFlag(c.Transform.FlipX)},
		{Key: KeyFlipY, Value: boolFlag(c.Transform.FlipY)},
	}
	if c.ColorOrder != "" {
		d = append(d, Setting{Key: KeyColor, Value: c.ColorOrder})
	}
	return d
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d, order=%s, wiring=%s, rot=%d, flipx=%t, flipy=%t",
		c.Geometry.Width, c.Geometry.Height, c.Order, c.Wiring,
		c.Transform.Rotation, c.Transform.FlipX, c.Transform.FlipY)
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
