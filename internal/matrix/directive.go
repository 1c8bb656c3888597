package matrix

import (
	"strconv"
	"strings"
)

// DirectivePrefix introduces an in-band configuration line.
const DirectivePrefix = "META:"

// Directive keys. Keys are matched case-insensitively.
const (
	KeyWidth    = "W"
	KeyHeight   = "H"
	KeyOrder    = "ORDER"
	KeyWiring   = "WIRING"
	KeyRotation = "ROT"
	KeyFlipX    = "FLIPX"
	KeyFlipY    = "FLIPY"
	KeyColor    = "COLOR"
)

var colorOrders = map[string]bool{
	"RGB": true, "RBG": true, "GRB": true, "GBR": true, "BRG": true, "BGR": true,
}

// Setting is a single KEY=value pair of a directive.
type Setting struct {
	Key   string
	Value string
}

// Directive is an ordered list of settings from a META: line.
type Directive []Setting

// IsDirective reports whether line is a configuration line.
func IsDirective(line string) bool {
	return strings.HasPrefix(line, DirectivePrefix)
}

// ParseDirective splits a META: line into settings. Pairs without '=' are
// skipped. ok is false when line is not a directive at all.
func ParseDirective(line string) (d Directive, ok bool) {
	if !IsDirective(line) {
		return nil, false
	}

	body := strings.TrimPrefix(line, DirectivePrefix)
	for _, part := range strings.Split(body, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		d = append(d, Setting{Key: key, Value: strings.TrimSpace(value)})
	}
	return d, true
}

func (d Directive) String() string {
	parts := make([]string, len(d))
	for i, s := range d {
		parts[i] = s.Key + "=" + s.Value
	}
	return DirectivePrefix + strings.Join(parts, ",")
}

// Apply commits every recognized setting of d to c in one step and returns
// the keys whose value changed. Unknown keys are ignored and a malformed
// value leaves its field untouched without affecting the other settings.
// W and H outside 1..MaxSide count as malformed.
func (c *Config) Apply(d Directive) []string {
	next := *c

	for _, s := range d {
		switch strings.ToUpper(s.Key) {
		case KeyWidth:
			if n, ok := sideValue(s.Value); ok {
				next.Geometry.Width = n
			}
		case KeyHeight:
			if n, ok := sideValue(s.Value); ok {
				next.Geometry.Height = n
			}
		case KeyOrder:
			if o, ok := ParseOrder(s.Value); ok {
				next.Order = o
			}
		case KeyWiring:
			if w, ok := ParseWiring(s.Value); ok {
				next.Wiring = w
			}
		case KeyRotation:
			if n, err := strconv.Atoi(s.Value); err == nil {
				next.Transform.Rotation = NormalizeRotation(n)
			}
		case KeyFlipX:
			next.Transform.FlipX = truthy(s.Value)
		case KeyFlipY:
			next.Transform.FlipY = truthy(s.Value)
		case KeyColor:
			if v := strings.ToUpper(s.Value); colorOrders[v] {
				next.ColorOrder = v
			}
		}
	}

	changed := diff(*c, next)
	*c = next
	return changed
}

func diff(prev, next Config) []string {
	var keys []string
	if prev.Geometry.Width != next.Geometry.Width {
		keys = append(keys, KeyWidth)
	}
	if prev.Geometry.Height != next.Geometry.Height {
		keys = append(keys, KeyHeight)
	}
	if prev.Order != next.Order {
		keys = append(keys, KeyOrder)
	}
	if prev.Wiring != next.Wiring {
		keys = append(keys, KeyWiring)
	}
	if prev.Transform.Rotation != next.Transform.Rotation {
		keys = append(keys, KeyRotation)
	}
	if prev.Transform.FlipX != next.Transform.FlipX {
		keys = append(keys, KeyFlipX)
	}
	if prev.Transform.FlipY != next.Transform.FlipY {
		keys = append(keys, KeyFlipY)
	}
	if prev.ColorOrder != next.ColorOrder {
		keys = append(keys, KeyColor)
	}
	return keys
}

func sideValue(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || !validSide(n) {
		return 0, false
	}
	return n, true
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true":
		return true
	default:
		return false
	}
}
