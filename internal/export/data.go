package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/san-kum/armview/internal/session"
	"github.com/san-kum/armview/internal/trajectory"
)

// RunSummary is the run.json document.
type RunSummary struct {
	ID           string         `json:"id"`
	Started      time.Time      `json:"started"`
	Ended        time.Time      `json:"ended"`
	MotorTorque  float64        `json:"motor_torque"`
	StartAngle   float64        `json:"start_angle"`
	ReleaseAngle float64        `json:"release_angle"`
	State        string         `json:"state"`
	EndReason    string         `json:"end_reason"`
	Samples      int            `json:"samples"`
	Frames       int            `json:"frames"`
	Partial      int            `json:"partial_frames"`
	Dropped      int            `json:"dropped_frames"`
	Release      *ReleaseRecord `json:"release,omitempty"`
	Stats        StatsRecord    `json:"stats"`
}

type ReleaseRecord struct {
	Time        *float64 `json:"time,omitempty"`
	Theta       float64  `json:"theta"`
	Omega       *float64 `json:"omega,omitempty"`
	LaunchSpeed float64  `json:"launch_speed"`
}

type StatsRecord struct {
	PeakOmega     float64 `json:"peak_omega"`
	MeanOmega     float64 `json:"mean_omega"`
	ThetaCoverage float64 `json:"theta_coverage"`
	FrameRate     float64 `json:"frame_rate"`
}

// Summarize converts a result into its JSON document.
func Summarize(res *session.Result) RunSummary {
	s := RunSummary{
		ID:           res.ID,
		Started:      res.Started,
		Ended:        res.Ended,
		MotorTorque:  res.Experiment.MotorTorque,
		StartAngle:   res.Experiment.StartAngleDeg,
		ReleaseAngle: res.Experiment.ReleaseAngleDeg,
		State:        res.State.String(),
		EndReason:    res.End.String(),
		Samples:      len(res.Samples),
		Frames:       res.Frames,
		Partial:      res.Partial,
		Dropped:      res.Dropped,
		Stats: StatsRecord{
			PeakOmega:     res.Stats.PeakOmega,
			MeanOmega:     res.Stats.MeanOmega,
			ThetaCoverage: res.Stats.ThetaCoverage,
			FrameRate:     res.Stats.FrameRate,
		},
	}
	if ev := res.Release; ev != nil {
		r := &ReleaseRecord{Theta: ev.Theta, LaunchSpeed: ev.LaunchSpeed}
		if ev.HasTime {
			t := ev.Time
			r.Time = &t
		}
		if ev.HasOmega {
			w := ev.Omega
			r.Omega = &w
		}
		s.Release = r
	}
	return s
}

func WriteSummary(w io.Writer, res *session.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summarize(res))
}

// WriteCSV writes one row per sample with a time,x,y header.
func WriteCSV(w io.Writer, samples []trajectory.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "x", "y"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.X, 'f', 6, 64),
			strconv.FormatFloat(s.Y, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
