package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/armview/internal/config"
	"github.com/san-kum/armview/internal/telemetry"
	"github.com/san-kum/armview/internal/viz"
)

var (
	configFile   string
	preset       string
	torque       float64
	startAngle   float64
	releaseAngle float64
	transport    string
	endpoint     string
	serialPort   string
	baud         int
	outDir       string
	exportTo     []string
	recordFile   string
	themeName    string
	logLevel     string
	logFormat    string
	logFile      string
	frameRate    int
	plain        bool
	headless     bool
	interactive  bool
	// replay only
	replayInterval time.Duration
	// config init only
	force bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "armview",
		Short:        "live telemetry viewer for the rotating-arm ball launcher",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runLive,
	}
	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "configure the launcher and follow one run",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(runCmd)

	replayCmd := &cobra.Command{
		Use:   "replay [file.jsonl]",
		Short: "play a recorded telemetry file through the live pipeline",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	addRunFlags(replayCmd)
	replayCmd.Flags().DurationVar(&replayInterval, "interval", 33*time.Millisecond, "delay between recorded messages (0 = as fast as possible)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list experiment presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTORQUE\tSTART\tRELEASE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.1f°\t%.1f°\n", name, p.MotorTorque, p.StartAngleDeg, p.ReleaseAngleDeg)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, replayCmd, presetsCmd, configCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset experiment ("+strings.Join(config.ListPresets(), ", ")+")")
	f.Float64Var(&torque, "torque", config.DefaultTorque, "motor torque")
	f.Float64Var(&startAngle, "start", config.DefaultStartAngle, "start angle in degrees")
	f.Float64Var(&releaseAngle, "release", config.DefaultReleaseAngle, "release angle in degrees")
	f.StringVar(&transport, "transport", config.DefaultTransport, "telemetry transport (ws|serial)")
	f.StringVar(&endpoint, "endpoint", config.DefaultEndpoint, "websocket endpoint")
	f.StringVar(&serialPort, "serial-port", "", "serial device (serial transport)")
	f.IntVar(&baud, "baud", config.DefaultBaud, "serial baud rate")
	f.StringVar(&outDir, "out", config.DefaultOutputDir, "output directory for exports and logs")
	f.StringSliceVar(&exportTo, "export", nil, "export formats at run end (html,png,svg,csv,json,all)")
	f.StringVar(&recordFile, "record", "", "record raw telemetry to a jsonl file")
	f.StringVar(&themeName, "theme", config.DefaultTheme, "tui theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	f.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	f.StringVar(&logFormat, "log-format", "text", "log format (text|json)")
	f.StringVar(&logFile, "log-file", "", "log file (default <out>/armview.log while the tui is active)")
	f.IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	f.BoolVar(&plain, "plain", false, "draw the arm with the plain ascii renderer (with --headless)")
	f.BoolVar(&headless, "headless", false, "no tui")
	f.BoolVar(&interactive, "interactive", false, "edit the experiment in a form before the run")
}

// resolveConfig applies preset, then config file, then the flags the user
// actually set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Experiment = *p
	}

	if configFile != "" {
		if err := config.Merge(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	fl := cmd.Flags()
	if fl.Changed("torque") {
		cfg.Experiment.MotorTorque = torque
	}
	if fl.Changed("start") {
		cfg.Experiment.StartAngleDeg = startAngle
	}
	if fl.Changed("release") {
		cfg.Experiment.ReleaseAngleDeg = releaseAngle
	}
	if fl.Changed("transport") {
		cfg.Client.Transport = transport
	}
	if fl.Changed("endpoint") {
		cfg.Client.Endpoint = endpoint
	}
	if fl.Changed("serial-port") {
		cfg.Client.SerialPort = serialPort
	}
	if fl.Changed("baud") {
		cfg.Client.Baud = baud
	}
	if fl.Changed("record") {
		cfg.Client.Record = recordFile
	}
	if fl.Changed("out") {
		cfg.Export.OutputDir = outDir
	}
	if fl.Changed("export") {
		cfg.Export.Formats = exportTo
	}
	if fl.Changed("theme") {
		cfg.View.Theme = themeName
	}
	if fl.Changed("fps") {
		cfg.View.FrameRate = frameRate
	}
	if fl.Changed("plain") {
		cfg.View.Plain = plain
	}
	if fl.Changed("headless") {
		cfg.View.Headless = headless
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if fl.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if fl.Changed("log-file") {
		cfg.Log.File = logFile
	}
	return cfg, nil
}

func newDialer(c config.ClientConfig) (telemetry.Dialer, error) {
	switch strings.ToLower(c.Transport) {
	case "ws", "websocket":
		return telemetry.NewWebSocketDialer(c.Endpoint), nil
	case "serial":
		return telemetry.NewSerialDialer(c.SerialPort, c.Baud), nil
	}
	return nil, fmt.Errorf("unknown transport: %s", c.Transport)
}
