// Package source supplies the text lines the visualizer consumes: stdin,
// recorded files, serial ports and a synthetic demo generator.
package source

import "context"

// MaxLineBytes bounds a single line; longer lines are dropped and reading
// continues. A 64x64 matrix needs about 28 KiB, 1500x1500 about 15 MiB.
const MaxLineBytes = 16 << 20

// LineSource is a lazy, ordered sequence of lines with terminators removed.
// Next returns io.EOF once the sequence is exhausted; any other error is
// fatal for the run.
type LineSource interface {
	Next(ctx context.Context) (string, error)
	Close() error
	// Describe names the source for status output, e.g. "serial:/dev/ttyACM0@115200".
	Describe() string
}
