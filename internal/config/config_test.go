package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

// testOptions mirrors the shape of the CLI options struct.
type testOptions struct {
	Config string

	Width     int      `toml:"matrix.width" env:"WIDTH"`
	Wiring    string   `toml:"matrix.wiring" env:"WIRING"`
	FlipX     bool     `toml:"matrix.flip_x" env:"FLIP_X"`
	Fps       float64  `toml:"render.fps" env:"FPS"`
	Port      string   `toml:"serial.port" env:"PORT"`
	Tags      []string `toml:"extra.tags" env:"TAGS"`
	Untracked string
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledviz.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeConfig(t, `
[matrix]
width = 16
wiring = "progressive"
flip_x = true

[render]
fps = 30

[serial]
port = "/dev/ttyACM0"

[extra]
tags = ["a", "b"]
`)
	opts := &testOptions{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := testOptions{
		Config: path,
		Width:  16,
		Wiring: "progressive",
		FlipX:  true,
		Fps:    30,
		Port:   "/dev/ttyACM0",
		Tags:   []string{"a", "b"},
	}
	if !reflect.DeepEqual(*opts, want) {
		t.Errorf("opts = %+v, want %+v", *opts, want)
	}
}

func TestLoadConfigFloatFromTOML(t *testing.T) {
	path := writeConfig(t, "[render]\nfps = 12.5\n")
	opts := &testOptions{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatal(err)
	}
	if opts.Fps != 12.5 {
		t.Errorf("Fps = %v, want 12.5", opts.Fps)
	}
}

func TestLoadConfigFromEnvVars(t *testing.T) {
	t.Setenv("LEDVIZ_WIDTH", "32")
	t.Setenv("LEDVIZ_FLIP_X", "true")
	t.Setenv("LEDVIZ_FPS", "24.5")
	t.Setenv("LEDVIZ_PORT", "/dev/ttyUSB1")
	t.Setenv("LEDVIZ_TAGS", " x , y ")

	opts := &testOptions{}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatal(err)
	}

	if opts.Width != 32 || !opts.FlipX || opts.Fps != 24.5 || opts.Port != "/dev/ttyUSB1" {
		t.Errorf("env not applied: %+v", *opts)
	}
	if !reflect.DeepEqual(opts.Tags, []string{"x", "y"}) {
		t.Errorf("Tags = %v", opts.Tags)
	}
}

func TestLoadConfigEnvOverridesToml(t *testing.T) {
	path := writeConfig(t, "[matrix]\nwidth = 16\nwiring = \"progressive\"\n")
	t.Setenv("LEDVIZ_WIDTH", "4")

	opts := &testOptions{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatal(err)
	}
	if opts.Width != 4 {
		t.Errorf("Width = %d, want env value 4", opts.Width)
	}
	if opts.Wiring != "progressive" {
		t.Errorf("Wiring = %q, want TOML value", opts.Wiring)
	}
}

func TestLoadConfigCLIWins(t *testing.T) {
	path := writeConfig(t, "[matrix]\nwidth = 16\n[render]\nfps = 30\n")
	t.Setenv("LEDVIZ_WIDTH", "4")

	opts := &testOptions{Config: path}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&opts.Width, "width", 8, "")
	cmd.Flags().Float64Var(&opts.Fps, "fps", 0, "")
	if err := cmd.Flags().Parse([]string{"--width", "64"}); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatal(err)
	}
	if opts.Width != 64 {
		t.Errorf("Width = %d, want CLI value 64", opts.Width)
	}
	if opts.Fps != 30 {
		t.Errorf("Fps = %v, want TOML value for an unset flag", opts.Fps)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	opts := &testOptions{Config: filepath.Join(t.TempDir(), "absent.toml")}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig should not fail for missing file: %v", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[matrix\ninvalid toml syntax\n")
	if err := LoadConfig(&testOptions{Config: path}, nil); err == nil {
		t.Fatal("LoadConfig should fail for invalid TOML")
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := map[string]string{
		"Port":         "port",
		"NoDoubleWide": "no-double-wide",
		"FlipX":        "flip-x",
		"MetricsAddr":  "metrics-addr",
		"InputOrder":   "input-order",
	}
	for in, want := range tests {
		if got := fieldNameToFlag(in); got != want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"matrix": map[string]any{
			"inner": map[string]any{"value": "deep"},
			"width": int64(8),
		},
		"root": "top",
	}

	tests := []struct {
		path string
		want any
	}{
		{"root", "top"},
		{"matrix.width", int64(8)},
		{"matrix.inner.value", "deep"},
		{"missing", nil},
		{"root.child", nil},
		{"matrix.missing", nil},
	}
	for _, tt := range tests {
		if got := getNestedValue(data, tt.path); got != tt.want {
			t.Errorf("getNestedValue(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSetFieldValueIgnoresWrongTypes(t *testing.T) {
	opts := &testOptions{Width: 8, Fps: 10}
	v := reflect.ValueOf(opts).Elem()

	setFieldValue(v.FieldByName("Width"), "sixteen")
	setFieldValue(v.FieldByName("Fps"), "fast")
	setFieldValueFromString(v.FieldByName("Width"), "abc")
	setFieldValueFromString(v.FieldByName("FlipX"), "maybe")

	if opts.Width != 8 || opts.Fps != 10 || opts.FlipX {
		t.Errorf("mismatched values were applied: %+v", *opts)
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "warn"
format = "json"
pipeline = "debug"
source = "error"
`)
	cfg := LoadLoggingConfig(path)

	if cfg.Level != "warn" || cfg.Format != "json" {
		t.Errorf("level/format = %q/%q", cfg.Level, cfg.Format)
	}
	want := map[string]string{"pipeline": "debug", "source": "error"}
	if !reflect.DeepEqual(cfg.Modules, want) {
		t.Errorf("modules = %v, want %v", cfg.Modules, want)
	}
}

func TestLoadLoggingConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.toml")} {
		cfg := LoadLoggingConfig(path)
		if cfg.Level != "info" || cfg.Format != "text" || len(cfg.Modules) != 0 {
			t.Errorf("LoadLoggingConfig(%q) = %+v", path, cfg)
		}
	}
}
