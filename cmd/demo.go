package cmd

import (
	"fmt"
	"strings"

	"github.com/smazurov/ledviz/internal/source"
	"github.com/spf13/cobra"
)

// CreateDemoCmd creates the demo command, which renders a synthetic pattern
// through the full pipeline without hardware.
func CreateDemoCmd(opts *Options) *cobra.Command {
	var patternName string
	var frames int

	names := make([]string, len(source.Patterns))
	for i, p := range source.Patterns {
		names[i] = string(p)
	}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a demo pattern (no input needed)",
		Long: `Generates the line stream a device would send, a META line followed by ` +
			`FRAME lines, and renders it with the current matrix and render settings. ` +
			`The calibration pattern lights the corners green (top left), red (top right), ` +
			`blue (bottom left) and white (bottom right) and walks a dot along the strip.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			pattern, ok := source.ParsePattern(patternName)
			if !ok {
				return fmt.Errorf("unknown pattern %q (want %s)", patternName, strings.Join(names, ", "))
			}

			demo := source.NewDemo(cfg, pattern, opts.Fps)
			demo.Limit = frames
			return run(cmd, opts, cfg, demo)
		},
	}

	cmd.Flags().StringVar(&patternName, "pattern", string(source.PatternSwirl),
		"Pattern to draw: "+strings.Join(names, ", "))
	cmd.Flags().IntVar(&frames, "frames", 0, "Stop after this many frames (0 runs until interrupted)")
	return cmd
}
