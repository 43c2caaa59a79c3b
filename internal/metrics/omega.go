package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/armview/internal/telemetry"
)

const (
	PeakOmegaName = "peak_omega"
	MeanOmegaName = "mean_omega"
)

// PeakOmega is the largest absolute angular speed reported during the run.
type PeakOmega struct {
	speeds []float64
}

func NewPeakOmega() *PeakOmega { return &PeakOmega{} }

func (p *PeakOmega) Name() string { return PeakOmegaName }

func (p *PeakOmega) Observe(f telemetry.Frame) {
	if f.HasOmega() {
		p.speeds = append(p.speeds, math.Abs(*f.Omega))
	}
}

func (p *PeakOmega) Value() float64 {
	if len(p.speeds) == 0 {
		return 0
	}
	return floats.Max(p.speeds)
}

func (p *PeakOmega) Reset() { p.speeds = p.speeds[:0] }

// MeanOmega averages the signed omega values of frames that carried one.
type MeanOmega struct {
	values []float64
}

func NewMeanOmega() *MeanOmega { return &MeanOmega{} }

func (m *MeanOmega) Name() string { return MeanOmegaName }

func (m *MeanOmega) Observe(f telemetry.Frame) {
	if f.HasOmega() {
		m.values = append(m.values, *f.Omega)
	}
}

func (m *MeanOmega) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return stat.Mean(m.values, nil)
}

func (m *MeanOmega) Reset() { m.values = m.values[:0] }
