// Package frame decodes comma-separated RRGGBB frame lines into pixel buffers.
package frame

import (
	"fmt"
	"strings"
)

// Pixel is a single RGB color with 8 bits per channel.
type Pixel struct {
	R uint8
	G uint8
	B uint8
}

// Black is the zero pixel, used for unmapped slots.
var Black = Pixel{}

// DecodeToken parses a 6-digit hex color token, optionally prefixed with '#'.
// Surrounding whitespace is ignored. ok is false for anything else.
func DecodeToken(tok string) (p Pixel, ok bool) {
	tok = strings.TrimSpace(tok)
	tok = strings.TrimPrefix(tok, "#")
	if len(tok) != 6 {
		return Pixel{}, false
	}

	var ch [3]uint8
	for i := range ch {
		hi, hiOK := hexNibble(tok[2*i])
		lo, loOK := hexNibble(tok[2*i+1])
		if !hiOK || !loOK {
			return Pixel{}, false
		}
		ch[i] = hi<<4 | lo
	}
	return Pixel{R: ch[0], G: ch[1], B: ch[2]}, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Hex returns the pixel as an uppercase RRGGBB token.
func (p Pixel) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", p.R, p.G, p.B)
}

// Luminance returns the Rec. 709 weighted brightness in the range [0, 255].
func (p Pixel) Luminance() float64 {
	return 0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B)
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.R, p.G, p.B)
}
