// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package. Records go to stderr, because
// stdout is where frames are drawn, and additionally to the systemd journal
// when journald is reachable.
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"pipeline": "debug",  // Per-module overrides
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("source")
//	logger.Info("Opened serial port", "port", "/dev/ttyACM0", "baud", 115200)
//
// # Modules
//
//	pipeline - line classification, directives, rejected frames
//	source   - serial, file, stdin and demo line sources
//	render   - terminal output
//	config   - config file loading and hot reload
//	metrics  - Prometheus endpoint
//	ports    - serial port discovery and hotplug
//
// # Viewing Logs
//
// When the journal is available:
//
//	journalctl -t ledviz -f
//	journalctl -t ledviz MODULE=pipeline
//
// # Configuration
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	pipeline = "debug"
package logging
