package matrix

import (
	"reflect"
	"testing"
)

func TestParseDirective(t *testing.T) {
	d, ok := ParseDirective("META:W=4, h = 4 ,ORDER=led,junk,=x,WIRING=progressive")
	if !ok {
		t.Fatal("META line not recognised")
	}
	want := Directive{
		{Key: "W", Value: "4"},
		{Key: "H", Value: "4"},
		{Key: "ORDER", Value: "led"},
		{Key: "WIRING", Value: "progressive"},
	}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("ParseDirective = %v, want %v", d, want)
	}

	if _, ok := ParseDirective("FRAME:000000"); ok {
		t.Error("frame line parsed as directive")
	}
	if _, ok := ParseDirective("meta:W=1"); ok {
		t.Error("lowercase prefix accepted")
	}
	if d, ok := ParseDirective("META:"); !ok || len(d) != 0 {
		t.Errorf("empty directive = %v, %v", d, ok)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    func(c *Config)
		changed []string
	}{
		{
			name: "geometry and mapping",
			line: "META:W=4,H=4,ORDER=led,WIRING=progressive",
			want: func(c *Config) {
				c.Geometry = Geometry{Width: 4, Height: 4}
				c.Order = OrderLED
				c.Wiring = WiringProgressive
			},
			changed: []string{KeyWidth, KeyHeight, KeyOrder, KeyWiring},
		},
		{
			name: "case insensitive keys",
			line: "META:w=16,rot=90,flipx=TRUE",
			want: func(c *Config) {
				c.Geometry.Width = 16
				c.Transform.Rotation = 90
				c.Transform.FlipX = true
			},
			changed: []string{KeyWidth, KeyRotation, KeyFlipX},
		},
		{
			name: "malformed width keeps width but applies height",
			line: "META:W=abc,H=5",
			want: func(c *Config) {
				c.Geometry.Height = 5
			},
			changed: []string{KeyHeight},
		},
		{
			name:    "non positive sizes ignored",
			line:    "META:W=0,H=-3",
			want:    func(_ *Config) {},
			changed: nil,
		},
		{
			name:    "oversized sides ignored",
			line:    "META:W=2147483648,H=4097",
			want:    func(_ *Config) {},
			changed: nil,
		},
		{
			name: "largest side accepted",
			line: "META:W=4096,H=1",
			want: func(c *Config) {
				c.Geometry = Geometry{Width: MaxSide, Height: 1}
			},
			changed: []string{KeyWidth, KeyHeight},
		},
		{
			name:    "unknown keys and values ignored",
			line:    "META:FOO=1,ORDER=yx,WIRING=zigzag,ROT=left,COLOR=XYZ",
			want:    func(_ *Config) {},
			changed: nil,
		},
		{
			name: "rotation snapped",
			line: "META:ROT=-90",
			want: func(c *Config) {
				c.Transform.Rotation = 270
			},
			changed: []string{KeyRotation},
		},
		{
			name: "odd rotation is identity",
			line: "META:ROT=45",
			want: func(_ *Config) {},
		},
		{
			name: "color order",
			line: "META:COLOR=grb",
			want: func(c *Config) {
				c.ColorOrder = "GRB"
			},
			changed: []string{KeyColor},
		},
		{
			name: "last duplicate wins",
			line: "META:W=3,W=6",
			want: func(c *Config) {
				c.Geometry.Width = 6
			},
			changed: []string{KeyWidth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			want := DefaultConfig()
			tt.want(&want)

			d, ok := ParseDirective(tt.line)
			if !ok {
				t.Fatalf("ParseDirective(%q) failed", tt.line)
			}
			changed := cfg.Apply(d)

			if cfg != want {
				t.Errorf("config = %+v, want %+v", cfg, want)
			}
			if !reflect.DeepEqual(changed, tt.changed) {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
		})
	}
}

func TestApply_FlipTokens(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"True", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"yes", false},
		{"", false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Transform.FlipY = !tt.want
		cfg.Apply(Directive{{Key: KeyFlipY, Value: tt.value}})
		if cfg.Transform.FlipY != tt.want {
			t.Errorf("FLIPY=%q -> %v, want %v", tt.value, cfg.Transform.FlipY, tt.want)
		}
	}
}

func TestApply_AbsentFlipUnchanged(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transform.FlipX = true
	cfg.Apply(Directive{{Key: KeyWidth, Value: "2"}})
	if !cfg.Transform.FlipX {
		t.Error("FLIPX cleared by a directive that did not mention it")
	}
}

func TestConfigDirectiveRoundTrip(t *testing.T) {
	src := Config{
		Geometry:   Geometry{Width: 12, Height: 5},
		Order:      OrderLED,
		Wiring:     WiringProgressive,
		Transform:  Transform{Rotation: 180, FlipX: true},
		ColorOrder: "GRB",
	}

	line := src.Directive().String()
	if line != "META:W=12,H=5,ORDER=led,WIRING=progressive,ROT=180,FLIPX=1,FLIPY=0,COLOR=GRB" {
		t.Fatalf("Directive().String() = %q", line)
	}

	d, ok := ParseDirective(line)
	if !ok {
		t.Fatal("encoded directive did not parse")
	}
	dst := DefaultConfig()
	dst.Apply(d)
	if dst != src {
		t.Errorf("round trip = %+v, want %+v", dst, src)
	}
}

func TestConfigProcess(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(Directive{
		{Key: KeyWidth, Value: "3"},
		{Key: KeyHeight, Value: "2"},
		{Key: KeyOrder, Value: "led"},
		{Key: KeyRotation, Value: "90"},
	})
	if cfg.Expected() != 6 {
		t.Fatalf("Expected() = %d, want 6", cfg.Expected())
	}

	strip := gradient(6)
	got := cfg.Process(strip)
	want := Rotate(ToCanonical(strip, cfg.Geometry, OrderLED, WiringSerpentine), 90)
	if !got.Equal(want) {
		t.Error("Process differs from map + rotate")
	}
	if got.Width != 2 || got.Height != 3 {
		t.Errorf("processed size %dx%d, want 2x3", got.Width, got.Height)
	}
}
