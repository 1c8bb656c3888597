package frame

// Buffer is a row-major pixel grid. Pixels always holds Width*Height entries
// indexed by y*Width + x with the origin at the top left.
type Buffer struct {
	Width  int
	Height int
	Pixels []Pixel
}

// NewBuffer allocates a black buffer of the given size.
func NewBuffer(width, height int) Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Buffer{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}
}

// Index returns the canonical slot for (x, y).
func (b Buffer) Index(x, y int) int {
	return y*b.Width + x
}

// At returns the pixel at (x, y).
func (b Buffer) At(x, y int) Pixel {
	return b.Pixels[b.Index(x, y)]
}

// Set stores p at (x, y).
func (b Buffer) Set(x, y int, p Pixel) {
	b.Pixels[b.Index(x, y)] = p
}

// Equal reports whether both buffers have the same dimensions and pixels.
func (b Buffer) Equal(other Buffer) bool {
	if b.Width != other.Width || b.Height != other.Height || len(b.Pixels) != len(other.Pixels) {
		return false
	}
	for i := range b.Pixels {
		if b.Pixels[i] != other.Pixels[i] {
			return false
		}
	}
	return true
}
