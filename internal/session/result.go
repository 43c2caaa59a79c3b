package session

import (
	"time"

	"github.com/san-kum/armview/internal/attachment"
	"github.com/san-kum/armview/internal/config"
	"github.com/san-kum/armview/internal/trajectory"
)

// EndReason records why the telemetry stream stopped.
type EndReason int

const (
	EndClosed EndReason = iota
	EndLost
	EndCanceled
)

func (r EndReason) String() string {
	switch r {
	case EndClosed:
		return "closed"
	case EndLost:
		return "connection lost"
	case EndCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

type Stats struct {
	PeakOmega     float64
	MeanOmega     float64
	ThetaCoverage float64
	FrameRate     float64
}

// Result is what a finished run leaves behind.
type Result struct {
	ID         string
	Experiment config.Experiment
	Started    time.Time
	Ended      time.Time
	End        EndReason

	Samples []trajectory.Sample
	State   attachment.State
	Release *attachment.ReleaseEvent
	Stats   Stats

	Frames   int
	Partial  int
	Dropped  int
	Received int
}

// Duration is the wall-clock length of the run.
func (r *Result) Duration() time.Duration { return r.Ended.Sub(r.Started) }

// Result snapshots the session.
func (s *Session) Result() *Result {
	return &Result{
		ID:         s.ID,
		Experiment: s.Experiment,
		Started:    s.Started,
		Ended:      time.Now(),
		Samples:    s.log.Samples(),
		State:      s.controller.State(),
		Release:    s.controller.Event(),
		Stats:      s.Stats(),
		Frames:     s.frames,
		Partial:    s.partial,
	}
}
