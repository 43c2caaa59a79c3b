package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/armview/internal/attachment"
	"github.com/san-kum/armview/internal/config"
	"github.com/san-kum/armview/internal/export"
	"github.com/san-kum/armview/internal/logging"
	"github.com/san-kum/armview/internal/session"
	"github.com/san-kum/armview/internal/telemetry"
	"github.com/san-kum/armview/internal/tui"
	"github.com/san-kum/armview/internal/viewsync"
	"github.com/san-kum/armview/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if interactive {
		exp, ok, err := viz.RunForm(cfg.Experiment, viz.GetTheme(cfg.View.Theme))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		cfg.Experiment = exp
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	d, err := newDialer(cfg.Client)
	if err != nil {
		return err
	}
	return execute(cmd.Context(), cmd.OutOrStdout(), cfg, d)
}

func replayRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// the transport settings are irrelevant for a file
	if err := cfg.Experiment.Validate(); err != nil {
		return err
	}
	if cfg.View.FrameRate <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", cfg.View.FrameRate)
	}
	return execute(cmd.Context(), cmd.OutOrStdout(), cfg, telemetry.NewReplayDialer(args[0], replayInterval))
}

// execute runs one session with cfg and writes the requested exports.
// A run stopped by the user is not an error.
func execute(ctx context.Context, out io.Writer, cfg *config.Config, d telemetry.Dialer) error {
	formats, err := export.ParseFormats(cfg.Export.Formats)
	if err != nil {
		return err
	}

	useTUI := !cfg.View.Headless
	logOut, closeLog, err := openLog(cfg.Log, cfg.Export.OutputDir, useTUI)
	if err != nil {
		return err
	}
	defer closeLog()
	if _, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, logOut); err != nil {
		return err
	}

	if cfg.Client.Record != "" {
		f, err := os.Create(cfg.Client.Record)
		if err != nil {
			return fmt.Errorf("failed to create recording: %w", err)
		}
		defer f.Close()
		d = telemetry.NewRecordingDialer(d, f)
	}

	var res *session.Result
	var runErr error
	if useTUI {
		res, runErr = runTUI(ctx, cfg, d)
	} else {
		res, runErr = runHeadless(ctx, out, cfg, d)
	}
	if res == nil {
		return runErr
	}

	printSummary(out, res)

	if len(formats) > 0 {
		paths, err := export.New(cfg.Export.OutputDir).Write(res, formats)
		for _, p := range paths {
			fmt.Fprintf(out, "exported %s\n", p)
		}
		if err != nil {
			return errors.Join(runErr, err)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func runTUI(ctx context.Context, cfg *config.Config, d telemetry.Dialer) (*session.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := viz.NewLive(cfg.Experiment, viz.GetTheme(cfg.View.Theme), cfg.View.FrameRate, cancel)
	p := tea.NewProgram(m, tea.WithAltScreen())

	var (
		res    *session.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, runErr = session.Run(ctx, session.Options{
			Dialer:     d,
			Experiment: cfg.Experiment,
			Views:      viz.NewSync(p),
			OnRelease: func(ev attachment.ReleaseEvent) {
				p.Send(viz.ReleaseMsg(ev))
			},
		})
		p.Send(viz.DoneMsg{Result: res, Err: runErr})
	}()

	_, err := p.Run()
	cancel()
	<-done
	if err != nil {
		return res, err
	}
	return res, runErr
}

func runHeadless(ctx context.Context, out io.Writer, cfg *config.Config, d telemetry.Dialer) (*session.Result, error) {
	opts := session.Options{
		Dialer:     d,
		Experiment: cfg.Experiment,
		OnRelease: func(ev attachment.ReleaseEvent) {
			slog.Info("armview: ball released", "theta", ev.Theta, "launch_speed", ev.LaunchSpeed)
		},
	}

	if cfg.View.Plain {
		r := tui.NewLiveRenderer(out, cfg.View.FrameRate, isTerminal(out))
		charts := viewsync.NewCharts()
		opts.Views = viewsync.New(r, charts.Trajectory, charts.XTime, charts.YTime)
		opts.OnRelease = func(ev attachment.ReleaseEvent) {
			slog.Info("armview: ball released", "theta", ev.Theta, "launch_speed", ev.LaunchSpeed)
			r.SetStatus(fmt.Sprintf("released at %.3f rad", ev.Theta))
		}
		r.Start()
		defer r.Stop()
	}

	return session.Run(ctx, opts)
}

// isTerminal reports whether w is an interactive terminal. Anything else
// gets frames without cursor and clear-screen codes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openLog picks the log destination. The tui owns the terminal, so its
// logs go to a file.
func openLog(lc config.LogConfig, outDir string, useTUI bool) (io.Writer, func(), error) {
	path := lc.File
	if path == "" {
		if !useTUI {
			return os.Stderr, func() {}, nil
		}
		path = filepath.Join(outDir, "armview.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func printSummary(w io.Writer, res *session.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "RUN\t%s\n", res.ID)
	fmt.Fprintf(tw, "END\t%s after %.2fs\n", res.End, res.Duration().Seconds())
	fmt.Fprintf(tw, "STATE\t%s\n", res.State)
	fmt.Fprintf(tw, "SAMPLES\t%d\n", len(res.Samples))
	fmt.Fprintf(tw, "FRAMES\t%d received, %d partial, %d dropped\n", res.Received, res.Partial, res.Dropped)
	fmt.Fprintf(tw, "OMEGA\tpeak %.3f rad/s, mean %.3f rad/s\n", res.Stats.PeakOmega, res.Stats.MeanOmega)
	if ev := res.Release; ev != nil {
		at := "-"
		if ev.HasTime {
			at = fmt.Sprintf("%.3fs", ev.Time)
		}
		fmt.Fprintf(tw, "RELEASE\tt=%s theta=%.3f rad v=%.3f m/s\n", at, ev.Theta, ev.LaunchSpeed)
	}
	tw.Flush()
}
