package metrics

import "github.com/san-kum/armview/internal/telemetry"

const (
	ThetaCoverageName = "theta_coverage"
	FrameRateName     = "frame_rate"
)

// ThetaCoverage is the fraction of frames that carried theta. A launcher
// that streams mostly partial frames shows up here before it shows up in
// the charts.
type ThetaCoverage struct {
	frames    int
	withTheta int
}

func NewThetaCoverage() *ThetaCoverage { return &ThetaCoverage{} }

func (c *ThetaCoverage) Name() string { return ThetaCoverageName }

func (c *ThetaCoverage) Observe(f telemetry.Frame) {
	c.frames++
	if f.HasTheta() {
		c.withTheta++
	}
}

func (c *ThetaCoverage) Value() float64 {
	if c.frames == 0 {
		return 1.0
	}
	return float64(c.withTheta) / float64(c.frames)
}

func (c *ThetaCoverage) Reset() {
	c.frames = 0
	c.withTheta = 0
}

// FrameRate is the number of timestamped frames per second of server time.
type FrameRate struct {
	first, last float64
	count       int
}

func NewFrameRate() *FrameRate { return &FrameRate{} }

func (r *FrameRate) Name() string { return FrameRateName }

func (r *FrameRate) Observe(f telemetry.Frame) {
	if !f.HasTime() {
		return
	}
	if r.count == 0 {
		r.first = *f.Time
	}
	r.last = *f.Time
	r.count++
}

func (r *FrameRate) Value() float64 {
	span := r.last - r.first
	if r.count < 2 || span <= 0 {
		return 0
	}
	return float64(r.count-1) / span
}

func (r *FrameRate) Reset() {
	r.first, r.last = 0, 0
	r.count = 0
}
