package viewsync

import (
	"strconv"

	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/trajectory"
)

// SceneSink is the 3D view of the arm and ball.
type SceneSink interface {
	SetArmAngle(thetaRender float64)
	SetBallPosition(x, y float64)
	SetAngularSpeed(omega float64)
}

// ChartPoint is one element of a chart series. Label is the category-axis
// text for time series and empty for the trajectory scatter.
type ChartPoint struct {
	Label string
	X, Y  float64
}

type ChartSink interface {
	Append(p ChartPoint)
	Clear()
}

type Sync struct {
	scene      SceneSink
	trajectory ChartSink
	xTime      ChartSink
	yTime      ChartSink
	n          int
}

// New wires the four views of a run. A nil scene is replaced by a no-op.
func New(scene SceneSink, trajectory, xTime, yTime ChartSink) *Sync {
	if scene == nil {
		scene = NopScene{}
	}
	return &Sync{scene: scene, trajectory: trajectory, xTime: xTime, yTime: yTime}
}

// SetArm rotates the arm in the scene.
func (s *Sync) SetArm(p kinematics.Pose) {
	s.scene.SetArmAngle(p.ThetaRender)
}

// SetSpeed updates the angular speed readout.
func (s *Sync) SetSpeed(omega float64) {
	s.scene.SetAngularSpeed(omega)
}

// Push delivers one accepted sample to every view.
func (s *Sync) Push(sample trajectory.Sample) {
	label := TimeLabel(sample.Time)
	s.scene.SetBallPosition(sample.X, sample.Y)
	s.trajectory.Append(ChartPoint{X: sample.X, Y: sample.Y})
	s.xTime.Append(ChartPoint{Label: label, X: sample.Time, Y: sample.X})
	s.yTime.Append(ChartPoint{Label: label, X: sample.Time, Y: sample.Y})
	s.n++
}

// Len is the number of samples pushed since the last Reset.
func (s *Sync) Len() int { return s.n }

// Reset clears every chart for a new run.
func (s *Sync) Reset() {
	s.trajectory.Clear()
	s.xTime.Clear()
	s.yTime.Clear()
	s.n = 0
}

// TimeLabel formats a timestamp for the shared time axis.
func TimeLabel(t float64) string {
	return strconv.FormatFloat(t, 'f', 2, 64)
}

type NopScene struct{}

func (NopScene) SetArmAngle(float64)          {}
func (NopScene) SetBallPosition(_, _ float64) {}
func (NopScene) SetAngularSpeed(float64)      {}
