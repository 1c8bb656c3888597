package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/smazurov/ledviz/internal/config"
	"github.com/smazurov/ledviz/internal/events"
	"github.com/smazurov/ledviz/internal/logging"
	"github.com/smazurov/ledviz/internal/matrix"
	"github.com/smazurov/ledviz/internal/metrics"
	"github.com/smazurov/ledviz/internal/metrics/exporters"
	"github.com/smazurov/ledviz/internal/pipeline"
	"github.com/smazurov/ledviz/internal/render"
	"github.com/smazurov/ledviz/internal/source"
	"github.com/spf13/cobra"
)

// CreateRootCmd creates the ledviz command, which visualizes frames from a
// serial port, stdin or a recorded file.
func CreateRootCmd() *cobra.Command {
	opts := DefaultOptions()

	cmd := &cobra.Command{
		Use:   "ledviz",
		Short: "Terminal visualizer for LED matrix frames",
		Long: `Reads FRAME lines of comma separated RRGGBB tokens from a microcontroller ` +
			`and draws them in the terminal. META lines sent by the firmware reconfigure ` +
			`size, ordering, wiring, rotation and mirroring on the fly.`,
		Example: `  ledviz --width 8 --height 8
  ledviz -p /dev/ttyACM0 -b 115200 --input-order led
  some_program | ledviz --stdin --ascii
  ledviz --file frames.txt --rotate 90 --stats`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			src, err := openSource(opts)
			if err != nil {
				return err
			}
			return run(cmd, opts, cfg, src)
		},
	}

	addSharedFlags(cmd.PersistentFlags(), opts)
	cmd.Flags().StringVarP(&opts.Port, "port", "p", opts.Port, "Serial port (auto-detect by default, or $LEDVIZ_PORT)")
	cmd.Flags().IntVarP(&opts.Baud, "baud", "b", opts.Baud, "Serial baud rate")
	cmd.Flags().StringVar(&opts.File, "file", opts.File, "Read frames from a file path")
	cmd.Flags().BoolVar(&opts.Stdin, "stdin", opts.Stdin, "Read frames from stdin")
	cmd.MarkFlagsMutuallyExclusive("stdin", "file", "port")

	cmd.AddCommand(
		CreateDemoCmd(opts),
		CreatePortsCmd(opts),
		CreateVersionCmd(),
	)
	return cmd
}

// setup loads configuration, initializes logging and validates the matrix
// settings.
func setup(cmd *cobra.Command, opts *Options) (matrix.Config, error) {
	loadErr := config.LoadConfig(opts, cmd)
	logging.Initialize(opts.LoggingConfig())
	if loadErr != nil {
		return matrix.Config{}, loadErr
	}
	return opts.MatrixConfig()
}

// openSource picks the input: stdin, then file, then serial.
func openSource(opts *Options) (source.LineSource, error) {
	switch {
	case opts.Stdin:
		return source.Stdin(), nil
	case opts.File != "":
		return source.OpenFile(opts.File)
	}

	port := opts.Port
	if port == "" {
		detected, err := source.AutoDetect()
		if err != nil {
			return nil, err
		}
		logging.GetLogger("source").Info("Auto-detected serial port", "port", detected)
		port = detected
	}
	return source.OpenSerial(port, opts.Baud)
}

// run drives src until it ends, fails or the process is interrupted.
func run(cmd *cobra.Command, opts *Options, cfg matrix.Config, src source.LineSource) error {
	defer src.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.New()
	recorder := metrics.NewRecorder(eventBus, logging.GetLogger("metrics"))
	recorder.Start()
	defer recorder.Stop()
	metrics.SetGeometry(cfg.Geometry.Width, cfg.Geometry.Height)

	if opts.MetricsAddr != "" {
		metricsLogger := logging.GetLogger("metrics")
		go func() {
			if err := exporters.Serve(ctx, opts.MetricsAddr, metricsLogger); err != nil {
				metricsLogger.Error("Metrics server failed", "addr", opts.MetricsAddr, "error", err)
			}
		}()
	}

	renderer := render.New(cmd.OutOrStdout(), opts.RenderOptions())
	driver := pipeline.New(src, renderer, cfg, eventBus, pipeline.Options{
		Stats: opts.Stats,
		FPS:   opts.Fps,
	})

	if opts.WatchConfig {
		watcher := config.NewConfigWatcher(opts.Config, config.LoadMatrixDirective, logging.GetLogger("config"))
		watcher.OnReload(func(d matrix.Directive) {
			driver.Submit(d, pipeline.OriginFile)
		})
		if err := watcher.Start(); err != nil {
			logging.GetLogger("config").Warn("Config watching disabled", "path", opts.Config, "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	// Reads from stdin cannot be interrupted, so the driver runs on its own
	// goroutine and an interrupt returns without waiting for it.
	done := make(chan error, 1)
	go func() {
		done <- driver.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logging.GetLogger("pipeline").Info("Interrupted, shutting down")
		return nil
	}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := CreateRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		var srcErr *source.Error
		if errors.As(err, &srcErr) {
			return 2
		}
		return 1
	}
	return 0
}
