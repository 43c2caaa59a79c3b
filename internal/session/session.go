// Package session runs one experiment: it owns the telemetry channel, the
// attachment state machine and the trajectory log for the lifetime of a run
// and feeds every accepted sample to the views.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/armview/internal/attachment"
	"github.com/san-kum/armview/internal/config"
	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/metrics"
	"github.com/san-kum/armview/internal/telemetry"
	"github.com/san-kum/armview/internal/trajectory"
	"github.com/san-kum/armview/internal/viewsync"
)

// FreeFlight takes over the ball once it leaves the arm. Begin is called
// once with the release event; Observe receives every later frame.
type FreeFlight interface {
	Begin(ev attachment.ReleaseEvent)
	Observe(f telemetry.Frame)
}

// Session is the state of a single run. It is owned by one goroutine and
// carries no locks.
type Session struct {
	ID         string
	Experiment config.Experiment
	Started    time.Time

	controller *attachment.Controller
	log        *trajectory.Log
	views      *viewsync.Sync
	freeFlight FreeFlight
	metrics    []metrics.Metric
	listeners  []attachment.Listener

	frames  int
	partial int
}

// New creates a session ready to accept frames. A nil views value records
// into a private set of charts.
func New(exp config.Experiment, views *viewsync.Sync, ff FreeFlight) *Session {
	if views == nil {
		c := viewsync.NewCharts()
		views = viewsync.New(nil, c.Trajectory, c.XTime, c.YTime)
	}
	s := &Session{
		Experiment: exp,
		log:        trajectory.New(),
		views:      views,
		freeFlight: ff,
		metrics:    metrics.Standard(),
	}
	s.Reset()
	return s
}

// OnRelease registers a listener that survives Reset.
func (s *Session) OnRelease(l attachment.Listener) {
	s.listeners = append(s.listeners, l)
	s.controller.OnRelease(l)
}

// Reset discards everything recorded so far and starts a fresh run
// identity: empty log, Attached state, cleared views.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.Started = time.Now()
	s.log.Reset()
	s.views.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}
	s.frames, s.partial = 0, 0

	s.controller = attachment.New(s.Experiment.StartAngleDeg, s.Experiment.ReleaseAngleDeg)
	s.controller.OnRelease(s.release)
	for _, l := range s.listeners {
		s.controller.OnRelease(l)
	}
}

func (s *Session) release(ev attachment.ReleaseEvent) {
	s.log.Seal()
	if s.freeFlight != nil {
		s.freeFlight.Begin(ev)
	}
}

// Step processes one frame to completion. Omega drives the speed readout,
// theta drives the arm, and while the ball is attached a frame carrying both
// theta and time becomes one trajectory sample.
func (s *Session) Step(f telemetry.Frame) {
	s.frames++
	if !f.HasTime() || !f.HasTheta() || !f.HasOmega() {
		s.partial++
	}
	for _, m := range s.metrics {
		m.Observe(f)
	}

	if f.HasOmega() {
		s.views.SetSpeed(*f.Omega)
	}

	if s.controller.State() == attachment.Released {
		if f.HasTheta() {
			s.views.SetArm(kinematics.PoseFor(*f.Theta))
		}
		if s.freeFlight != nil {
			s.freeFlight.Observe(f)
		}
		return
	}

	state := s.controller.Observe(f)
	if !f.HasTheta() {
		return
	}
	s.views.SetArm(kinematics.PoseFor(*f.Theta))
	if state == attachment.Released || !f.HasTime() {
		return
	}

	x, y := kinematics.Resolve(*f.Theta)
	sample := trajectory.Sample{Time: *f.Time, X: x, Y: y}
	if err := s.log.Append(sample); err != nil {
		return
	}
	s.views.Push(sample)
}

func (s *Session) State() attachment.State { return s.controller.State() }

// Log is the trajectory of the current run.
func (s *Session) Log() *trajectory.Log { return s.log }

func (s *Session) Frames() int { return s.frames }

func (s *Session) Partial() int { return s.partial }

// Stats summarizes the frames seen so far.
func (s *Session) Stats() Stats {
	m := metrics.Collect(s.metrics)
	return Stats{
		PeakOmega:     m[metrics.PeakOmegaName],
		MeanOmega:     m[metrics.MeanOmegaName],
		ThetaCoverage: m[metrics.ThetaCoverageName],
		FrameRate:     m[metrics.FrameRateName],
	}
}
