package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/smazurov/ledviz/internal/config"
	"github.com/smazurov/ledviz/internal/events"
	"github.com/smazurov/ledviz/internal/logging"
	"github.com/smazurov/ledviz/internal/metrics"
	"github.com/smazurov/ledviz/internal/metrics/exporters"
	"github.com/smazurov/ledviz/internal/source"
	"github.com/smazurov/ledviz/pkg/hotplug"
	"github.com/spf13/cobra"
)

// CreatePortsCmd creates the ports command.
func CreatePortsCmd(opts *Options) *cobra.Command {
	var watch bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List available serial ports",
		Long: `Lists serial ports with their USB identity. With --watch, keeps running and ` +
			`prints serial devices as they are plugged in or removed (Linux only).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadErr := config.LoadConfig(opts, cmd)
			logging.Initialize(opts.LoggingConfig())
			if loadErr != nil {
				return loadErr
			}

			ports, err := source.ListPorts()
			if err != nil {
				return err
			}
			if err := printPorts(cmd.OutOrStdout(), ports, jsonOutput); err != nil {
				return err
			}

			if !watch {
				return nil
			}
			return watchPorts(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Follow serial port hotplug events")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the port list as JSON")
	return cmd
}

func printPorts(out io.Writer, ports []source.PortInfo, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if ports == nil {
			ports = []source.PortInfo{}
		}
		return enc.Encode(ports)
	}

	if len(ports) == 0 {
		fmt.Fprintln(out, "No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(out, p.String())
	}
	return nil
}

func watchPorts(cmd *cobra.Command, opts *Options) error {
	logger := logging.GetLogger("ports")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor, err := hotplug.NewMonitor(hotplug.SubsystemTTY)
	if err != nil {
		return fmt.Errorf("cannot watch serial ports: %w", err)
	}
	defer monitor.Close()

	eventBus := events.New()
	recorder := metrics.NewRecorder(eventBus, logging.GetLogger("metrics"))
	recorder.Start()
	defer recorder.Stop()
	if opts.MetricsAddr != "" {
		go func() {
			if err := exporters.Serve(ctx, opts.MetricsAddr, logging.GetLogger("metrics")); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	portEvents := make(chan any, 16)
	unsubscribe := events.SubscribeToChannel[events.PortEvent](eventBus, portEvents)
	defer unsubscribe()

	raw := make(chan hotplug.Event, 16)
	runErr := make(chan error, 1)
	go func() {
		runErr <- monitor.Run(ctx, raw)
	}()

	logger.Info("Watching for serial port changes")
	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-raw:
			if !ok {
				if err := <-runErr; err != nil && ctx.Err() == nil {
					return fmt.Errorf("hotplug monitor: %w", err)
				}
				return nil
			}
			if !ev.IsSerialPort() {
				continue
			}
			switch ev.Action {
			case hotplug.ActionAdd, hotplug.ActionRemove:
			default:
				continue
			}
			logger.Debug("Serial port event", "action", ev.Action, "node", ev.Node(), "kobj", ev.KObj)
			eventBus.Publish(events.PortEvent{Action: ev.Action, Name: ev.DevName, Path: ev.Node()})

		case e := <-portEvents:
			if pe, ok := e.(events.PortEvent); ok {
				fmt.Fprintf(out, "%s\t%s\n", pe.Action, pe.Path)
			}
		}
	}
}
