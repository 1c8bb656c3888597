package frame

import "strings"

const (
	// Prefix optionally introduces a frame line.
	Prefix = "FRAME:"
	// StateMarker starts trailing metadata that is not pixel data.
	StateMarker = "STATE:"
)

// ParseLine decodes a frame line into pixels in the order they were sent.
//
// Malformed tokens are dropped individually, but the line as a whole is only
// accepted when exactly expected pixels decode. Anything else is not a frame
// and ok is false; a partial frame is never returned.
func ParseLine(line string, expected int) (pixels []Pixel, ok bool) {
	if expected <= 0 {
		return nil, false
	}

	toks := tokens(line)
	if len(toks) < expected {
		return nil, false
	}

	pixels = make([]Pixel, 0, expected)
	for _, tok := range toks {
		p, valid := DecodeToken(tok)
		if !valid {
			continue
		}
		if len(pixels) == expected {
			return nil, false
		}
		pixels = append(pixels, p)
	}

	if len(pixels) != expected {
		return nil, false
	}
	return pixels, true
}

// CountTokens returns how many tokens of line decode as colors.
func CountTokens(line string) int {
	n := 0
	for _, tok := range tokens(line) {
		if _, ok := DecodeToken(tok); ok {
			n++
		}
	}
	return n
}

// EncodeLine renders pixels as a FRAME: line.
func EncodeLine(pixels []Pixel) string {
	var sb strings.Builder
	sb.Grow(len(Prefix) + len(pixels)*7)
	sb.WriteString(Prefix)
	for i, p := range pixels {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Hex())
	}
	return sb.String()
}

// tokens strips the prefix and trailing metadata and returns the non-empty
// comma separated fields.
func tokens(line string) []string {
	line = strings.TrimPrefix(line, Prefix)
	if idx := strings.Index(line, StateMarker); idx >= 0 {
		line = line[:idx]
	}

	fields := strings.Split(line, ",")
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
