// Package metrics derives per-run figures from the telemetry stream.
package metrics

import "github.com/san-kum/armview/internal/telemetry"

// Metric folds every decoded frame of a run into a single value.
type Metric interface {
	Name() string
	Observe(f telemetry.Frame)
	Value() float64
	Reset()
}

// Standard returns the metrics recorded for every run.
func Standard() []Metric {
	return []Metric{
		NewPeakOmega(),
		NewMeanOmega(),
		NewThetaCoverage(),
		NewFrameRate(),
	}
}

// Collect reads every metric into a name-keyed map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
