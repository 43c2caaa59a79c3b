// Package export writes the artifacts of a finished run: interactive HTML
// charts, PNG and SVG plots, the trajectory as CSV and a JSON summary.
// Everything goes under <dir>/<run id>/ and is never read back by armview.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/armview/internal/session"
)

type Format string

const (
	HTML Format = "html"
	PNG  Format = "png"
	SVG  Format = "svg"
	CSV  Format = "csv"
	JSON Format = "json"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// AllFormats lists every supported format in write order.
var AllFormats = []Format{JSON, CSV, SVG, PNG, HTML}

// ParseFormats accepts names like "html,png" (already split) and "all".
// Duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool)
	var out []Format
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if n == "all" {
			return AllFormats, nil
		}
		f := Format(n)
		switch f {
		case HTML, PNG, SVG, CSV, JSON:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, n)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Exporter writes run artifacts below a base directory.
type Exporter struct {
	baseDir string
}

func New(baseDir string) *Exporter {
	return &Exporter{baseDir: baseDir}
}

// RunDir is where the artifacts of res are written.
func (e *Exporter) RunDir(res *session.Result) string {
	return filepath.Join(e.baseDir, res.ID)
}

// Write creates the run directory and one or more files per format. It
// returns the paths written; on error the files written so far are kept.
func (e *Exporter) Write(res *session.Result, formats []Format) ([]string, error) {
	if len(formats) == 0 {
		return nil, nil
	}
	dir := e.RunDir(res)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("export: create run dir: %w", err)
	}

	var written []string
	for _, f := range formats {
		paths, err := e.writeFormat(dir, f, res)
		written = append(written, paths...)
		if err != nil {
			return written, fmt.Errorf("export: %s: %w", f, err)
		}
	}
	slog.Info("export: run written", "dir", dir, "files", len(written))
	return written, nil
}

func (e *Exporter) writeFormat(dir string, f Format, res *session.Result) ([]string, error) {
	switch f {
	case JSON:
		p := filepath.Join(dir, "run.json")
		return []string{p}, writeFile(p, func(file *os.File) error { return WriteSummary(file, res) })
	case CSV:
		p := filepath.Join(dir, "trajectory.csv")
		return []string{p}, writeFile(p, func(file *os.File) error { return WriteCSV(file, res.Samples) })
	case SVG:
		p := filepath.Join(dir, "trajectory.svg")
		svg := TrajectoryToSVG(res.Samples, 600, 600, "#00ffff")
		return []string{p}, os.WriteFile(p, []byte(svg), 0644)
	case PNG:
		traj := filepath.Join(dir, "trajectory.png")
		if err := WriteTrajectoryPNG(traj, res); err != nil {
			return nil, err
		}
		series := filepath.Join(dir, "position.png")
		return []string{traj, series}, WritePositionPNG(series, res)
	case HTML:
		p := filepath.Join(dir, "charts.html")
		return []string{p}, writeFile(p, func(file *os.File) error { return WriteHTML(file, res) })
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
