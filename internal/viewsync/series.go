package viewsync

// Series is an in-memory chart sink. Exporters read it after a run.
type Series struct {
	Name   string
	points []ChartPoint
}

func NewSeries(name string) *Series {
	return &Series{Name: name, points: make([]ChartPoint, 0, 256)}
}

func (s *Series) Append(p ChartPoint) { s.points = append(s.points, p) }
func (s *Series) Clear()              { s.points = s.points[:0] }
func (s *Series) Len() int            { return len(s.points) }

// Points returns a copy of the recorded points.
func (s *Series) Points() []ChartPoint {
	out := make([]ChartPoint, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Series) Labels() []string {
	out := make([]string, len(s.points))
	for i, p := range s.points {
		out[i] = p.Label
	}
	return out
}

func (s *Series) Values() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Y
	}
	return out
}

// Charts bundles the recorded series of a run.
type Charts struct {
	Trajectory *Series
	XTime      *Series
	YTime      *Series
}

func NewCharts() *Charts {
	return &Charts{
		Trajectory: NewSeries("Ball Trajectory"),
		XTime:      NewSeries("X Position"),
		YTime:      NewSeries("Y Position"),
	}
}

type teeScene []SceneSink

// TeeScene duplicates every scene update to all sinks.
func TeeScene(sinks ...SceneSink) SceneSink { return teeScene(sinks) }

func (t teeScene) SetArmAngle(v float64) {
	for _, s := range t {
		s.SetArmAngle(v)
	}
}

func (t teeScene) SetBallPosition(x, y float64) {
	for _, s := range t {
		s.SetBallPosition(x, y)
	}
}

func (t teeScene) SetAngularSpeed(v float64) {
	for _, s := range t {
		s.SetAngularSpeed(v)
	}
}

// SceneState remembers the latest scene values.
type SceneState struct {
	ArmAngle float64
	BallX    float64
	BallY    float64
	Omega    float64
	HasBall  bool
	HasOmega bool
}

func (s *SceneState) SetArmAngle(v float64) { s.ArmAngle = v }
func (s *SceneState) SetBallPosition(x, y float64) {
	s.BallX, s.BallY, s.HasBall = x, y, true
}
func (s *SceneState) SetAngularSpeed(v float64) { s.Omega, s.HasOmega = v, true }
