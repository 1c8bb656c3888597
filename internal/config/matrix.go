package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/ledviz/internal/matrix"
)

// MatrixSection is the [matrix] table of the config file. Pointer fields
// distinguish keys that are absent from keys set to their zero value.
type MatrixSection struct {
	Width      *int    `toml:"width"`
	Height     *int    `toml:"height"`
	InputOrder *string `toml:"input_order"`
	Wiring     *string `toml:"wiring"`
	Rotate     *int    `toml:"rotate"`
	FlipX      *bool   `toml:"flip_x"`
	FlipY      *bool   `toml:"flip_y"`
}

// Directive converts the keys present in the section into a directive, so
// file edits go through the same path as in-band META: lines.
func (s MatrixSection) Directive() matrix.Directive {
	var d matrix.Directive
	add := func(key, value string) {
		d = append(d, matrix.Setting{Key: key, Value: value})
	}
	if s.Width != nil {
		add(matrix.KeyWidth, strconv.Itoa(*s.Width))
	}
	if s.Height != nil {
		add(matrix.KeyHeight, strconv.Itoa(*s.Height))
	}
	if s.InputOrder != nil {
		add(matrix.KeyOrder, *s.InputOrder)
	}
	if s.Wiring != nil {
		add(matrix.KeyWiring, *s.Wiring)
	}
	if s.Rotate != nil {
		add(matrix.KeyRotation, strconv.Itoa(*s.Rotate))
	}
	if s.FlipX != nil {
		add(matrix.KeyFlipX, strconv.FormatBool(*s.FlipX))
	}
	if s.FlipY != nil {
		add(matrix.KeyFlipY, strconv.FormatBool(*s.FlipY))
	}
	return d
}

// LoadMatrixDirective reads the [matrix] table of path. It is the loader
// handed to the config watcher.
func LoadMatrixDirective(path string) (matrix.Directive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var doc struct {
		Matrix MatrixSection `toml:"matrix"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return doc.Matrix.Directive(), nil
}
