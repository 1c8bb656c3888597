package cmd

import (
	"fmt"

	"github.com/smazurov/ledviz/internal/config"
	"github.com/smazurov/ledviz/internal/logging"
	"github.com/smazurov/ledviz/internal/matrix"
	"github.com/smazurov/ledviz/internal/render"
	"github.com/spf13/pflag"
)

// Options for the CLI - flat structure with toml mapping. Field names map to
// flag names in kebab case ("NoDoubleWide" is --no-double-wide).
type Options struct {
	Config string

	// Matrix settings
	Width      int    `toml:"matrix.width" env:"WIDTH"`
	Height     int    `toml:"matrix.height" env:"HEIGHT"`
	InputOrder string `toml:"matrix.input_order" env:"INPUT_ORDER"`
	Wiring     string `toml:"matrix.wiring" env:"WIRING"`
	Rotate     int    `toml:"matrix.rotate" env:"ROTATE"`
	FlipX      bool   `toml:"matrix.flip_x" env:"FLIP_X"`
	FlipY      bool   `toml:"matrix.flip_y" env:"FLIP_Y"`

	// Input source settings
	Port  string `toml:"serial.port" env:"PORT"`
	Baud  int    `toml:"serial.baud" env:"BAUD"`
	File  string
	Stdin bool

	// Render settings
	Ascii        bool    `toml:"render.ascii" env:"ASCII"`
	NoGrid       bool    `toml:"render.no_grid" env:"NO_GRID"`
	NoDoubleWide bool    `toml:"render.no_double_wide" env:"NO_DOUBLE_WIDE"`
	Stats        bool    `toml:"render.stats" env:"STATS"`
	Fps          float64 `toml:"render.fps" env:"FPS"`

	// Logging settings
	Verbose   bool   `env:"VERBOSE"`
	LogLevel  string `toml:"logging.level" env:"LOG_LEVEL"`
	LogFormat string `toml:"logging.format" env:"LOG_FORMAT"`

	MetricsAddr string `toml:"metrics.addr" env:"METRICS_ADDR"`
	WatchConfig bool   `toml:"config.watch" env:"WATCH_CONFIG"`
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() *Options {
	def := matrix.DefaultConfig()
	return &Options{
		Config:     config.DefaultPath,
		Width:      def.Geometry.Width,
		Height:     def.Geometry.Height,
		InputOrder: string(def.Order),
		Wiring:     string(def.Wiring),
		Baud:       115200,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// addSharedFlags registers flags common to every command that renders.
func addSharedFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.Config, "config", "c", o.Config, "Path to configuration file")

	fs.IntVar(&o.Width, "width", o.Width, "Matrix width (X)")
	fs.IntVar(&o.Height, "height", o.Height, "Matrix height (Y)")
	fs.StringVar(&o.InputOrder, "input-order", o.InputOrder,
		"How incoming tokens are ordered: xy=row-major scan, led=physical strip order")
	fs.StringVar(&o.Wiring, "wiring", o.Wiring, "LED wiring pattern, serpentine or progressive (used with --input-order=led)")
	fs.IntVar(&o.Rotate, "rotate", o.Rotate, "Rotate clockwise: 0, 90, 180 or 270")
	fs.BoolVar(&o.FlipX, "flip-x", o.FlipX, "Mirror image horizontally")
	fs.BoolVar(&o.FlipY, "flip-y", o.FlipY, "Mirror image vertically")

	fs.BoolVar(&o.Ascii, "ascii", o.Ascii, "Use ASCII glyphs instead of ANSI colors")
	fs.BoolVar(&o.NoGrid, "no-grid", o.NoGrid, "Hide grid axes")
	fs.BoolVar(&o.NoDoubleWide, "no-double-wide", o.NoDoubleWide, "Use 1 char per pixel width")
	fs.BoolVar(&o.Stats, "stats", o.Stats, "Display FPS stats header")
	fs.Float64Var(&o.Fps, "fps", o.Fps, "Limit render rate (frames per second)")

	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "Log non-frame lines and rejected frames")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Global logging level (debug, info, warn, error)")
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, "Logging format (text, json)")

	fs.StringVar(&o.MetricsAddr, "metrics-addr", o.MetricsAddr, "Serve Prometheus metrics on this address, e.g. :9101")
	fs.BoolVar(&o.WatchConfig, "watch-config", o.WatchConfig, "Apply edits to the [matrix] section of the config file while running")
}

// MatrixConfig validates the matrix settings.
func (o *Options) MatrixConfig() (matrix.Config, error) {
	cfg := matrix.DefaultConfig()

	g := matrix.Geometry{Width: o.Width, Height: o.Height}
	if !g.Valid() {
		return cfg, fmt.Errorf("invalid matrix size %dx%d (each side 1..%d)", o.Width, o.Height, matrix.MaxSide)
	}
	order, ok := matrix.ParseOrder(o.InputOrder)
	if !ok {
		return cfg, fmt.Errorf("invalid input order %q (want xy or led)", o.InputOrder)
	}
	wiring, ok := matrix.ParseWiring(o.Wiring)
	if !ok {
		return cfg, fmt.Errorf("invalid wiring %q (want serpentine or progressive)", o.Wiring)
	}
	switch o.Rotate {
	case 0, 90, 180, 270:
	default:
		return cfg, fmt.Errorf("invalid rotation %d (want 0, 90, 180 or 270)", o.Rotate)
	}

	cfg.Geometry = g
	cfg.Order = order
	cfg.Wiring = wiring
	cfg.Transform = matrix.Transform{Rotation: o.Rotate, FlipX: o.FlipX, FlipY: o.FlipY}
	return cfg, nil
}

// RenderOptions converts the render flags.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		ASCII:      o.Ascii,
		Grid:       !o.NoGrid,
		DoubleWide: !o.NoDoubleWide,
	}
}

// LoggingConfig merges the level flags with per-module levels from the
// [logging] table. --verbose forces the pipeline and source modules to debug.
func (o *Options) LoggingConfig() logging.Config {
	cfg := config.LoadLoggingConfig(o.Config)
	cfg.Level = o.LogLevel
	cfg.Format = o.LogFormat
	if o.Verbose {
		cfg.Modules["pipeline"] = "debug"
		cfg.Modules["source"] = "debug"
	}
	return cfg
}
