// Package attachment decides, frame by frame, whether the ball is still
// held by the arm.
package attachment

import (
	"log/slog"

	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/telemetry"
)

type State int

const (
	Attached State = iota
	Released
)

func (s State) String() string {
	switch s {
	case Attached:
		return "attached"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// ReleaseEvent describes the frame at which the ball left the arm.
type ReleaseEvent struct {
	Time     float64
	HasTime  bool
	Theta    float64
	Omega    float64
	HasOmega bool
	// LaunchSpeed is the tangential ball speed at release in m/s, zero
	// when the frame carried no omega.
	LaunchSpeed float64
}

// Listener is notified once per run when the ball is released.
type Listener func(ReleaseEvent)

// Controller is the per-run attachment state machine. It starts Attached and
// moves to Released at most once. A new run gets a new Controller.
type Controller struct {
	start     float64
	release   float64
	forward   bool
	state     State
	lastOmega *float64
	event     *ReleaseEvent
	listeners []Listener
}

// New converts the configured angles from degrees once. The arm travels
// from start towards release; the ball is released when theta reaches or
// passes release in that direction.
func New(startDeg, releaseDeg float64) *Controller {
	start, release := kinematics.Radians(startDeg), kinematics.Radians(releaseDeg)
	return &Controller{
		start:   start,
		release: release,
		forward: release >= start,
		state:   Attached,
	}
}

func (c *Controller) OnRelease(l Listener) { c.listeners = append(c.listeners, l) }

func (c *Controller) State() State { return c.state }

// Event returns the release event, or nil while attached.
func (c *Controller) Event() *ReleaseEvent { return c.event }

// Observe evaluates one frame and returns the state after it. Frames
// without theta leave the state unchanged.
func (c *Controller) Observe(f telemetry.Frame) State {
	if f.HasOmega() {
		c.lastOmega = f.Omega
	}
	if c.state == Released || !f.HasTheta() {
		return c.state
	}
	if !c.crossed(*f.Theta) {
		return c.state
	}

	c.state = Released
	ev := ReleaseEvent{Theta: *f.Theta}
	if f.HasTime() {
		ev.Time, ev.HasTime = *f.Time, true
	}
	if c.lastOmega != nil {
		ev.Omega, ev.HasOmega = *c.lastOmega, true
		ev.LaunchSpeed = kinematics.TangentialSpeed(ev.Omega)
	}
	c.event = &ev

	slog.Info("attachment: ball released",
		"time", ev.Time,
		"theta", ev.Theta,
		"release_angle", c.release,
		"launch_speed", ev.LaunchSpeed)

	for _, l := range c.listeners {
		l(ev)
	}
	return c.state
}

func (c *Controller) crossed(theta float64) bool {
	if c.forward {
		return theta >= c.release
	}
	return theta <= c.release
}
