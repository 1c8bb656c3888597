package matrix

import "github.com/smazurov/ledviz/internal/frame"

// Transform is the display orientation: a clockwise rotation followed by
// optional mirroring.
type Transform struct {
	Rotation int  `toml:"rotate"`
	FlipX    bool `toml:"flip_x"`
	FlipY    bool `toml:"flip_y"`
}

// NormalizeRotation folds deg into [0, 360) and returns it when it is a
// quarter turn. Any other angle maps to 0.
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 90, 180, 270:
		return deg
	default:
		return 0
	}
}

// Apply rotates and then flips buf.
func (t Transform) Apply(buf frame.Buffer) frame.Buffer {
	return Flip(Rotate(buf, t.Rotation), t.FlipX, t.FlipY)
}

// Rotate turns buf clockwise by deg degrees. Quarter turns of 90 and 270
// swap the output dimensions. Identity rotations return buf itself.
func Rotate(buf frame.Buffer, deg int) frame.Buffer {
	w, h := buf.Width, buf.Height

	switch NormalizeRotation(deg) {
	case 90:
		out := frame.NewBuffer(h, w)
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				out.Set(x, y, buf.At(y, h-1-x))
			}
		}
		return out
	case 180:
		out := frame.NewBuffer(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, y, buf.At(w-1-x, h-1-y))
			}
		}
		return out
	case 270:
		out := frame.NewBuffer(h, w)
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				out.Set(x, y, buf.At(w-1-y, x))
			}
		}
		return out
	default:
		return buf
	}
}

// Flip mirrors buf horizontally and/or vertically on its own dimensions.
// When neither flag is set buf is returned without copying.
func Flip(buf frame.Buffer, flipX, flipY bool) frame.Buffer {
	if !flipX && !flipY {
		return buf
	}

	w, h := buf.Width, buf.Height
	out := frame.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx, ny := x, y
			if flipX {
				nx = w - 1 - x
			}
			if flipY {
				ny = h - 1 - y
			}
			out.Set(nx, ny, buf.At(x, y))
		}
	}
	return out
}
