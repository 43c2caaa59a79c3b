package viewsync

import (
	"testing"

	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/trajectory"
)

func newTestSync() (*Sync, *SceneState, *Charts) {
	scene := &SceneState{}
	charts := NewCharts()
	return New(scene, charts.Trajectory, charts.XTime, charts.YTime), scene, charts
}

func TestPushKeepsSinksAligned(t *testing.T) {
	s, scene, charts := newTestSync()

	samples := []trajectory.Sample{
		{Time: 0, X: 0.17, Y: 0},
		{Time: 0.1, X: 0.162, Y: -0.05},
		{Time: 0.2, X: 0.118, Y: -0.122},
	}
	for i, sample := range samples {
		s.Push(sample)
		if charts.XTime.Len() != charts.Trajectory.Len() || charts.YTime.Len() != charts.Trajectory.Len() {
			t.Fatalf("sinks misaligned after %d pushes", i+1)
		}
		if charts.Trajectory.Len() != i+1 {
			t.Fatalf("expected %d points, got %d", i+1, charts.Trajectory.Len())
		}
	}

	traj, xs, ys := charts.Trajectory.Points(), charts.XTime.Points(), charts.YTime.Points()
	for i, sample := range samples {
		if traj[i].X != sample.X || traj[i].Y != sample.Y {
			t.Errorf("trajectory[%d] = %+v, want (%v, %v)", i, traj[i], sample.X, sample.Y)
		}
		if xs[i].X != sample.Time || xs[i].Y != sample.X {
			t.Errorf("x(t)[%d] = %+v", i, xs[i])
		}
		if ys[i].X != sample.Time || ys[i].Y != sample.Y {
			t.Errorf("y(t)[%d] = %+v", i, ys[i])
		}
		if xs[i].Label != ys[i].Label {
			t.Errorf("time labels differ at %d: %q vs %q", i, xs[i].Label, ys[i].Label)
		}
	}

	if s.Len() != 3 {
		t.Errorf("expected Len 3, got %d", s.Len())
	}
	if !scene.HasBall || scene.BallX != 0.118 || scene.BallY != -0.122 {
		t.Errorf("scene ball not at last sample: %+v", scene)
	}
}

func TestTimeLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{0.1, "0.10"},
		{1.005, "1.00"},
		{12.345, "12.35"},
	}
	for _, tt := range tests {
		if got := TimeLabel(tt.in); got != tt.want {
			t.Errorf("TimeLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetArmDoesNotTouchCharts(t *testing.T) {
	s, scene, charts := newTestSync()
	s.SetArm(kinematics.PoseFor(0.5))
	s.SetSpeed(3.2)

	if scene.ArmAngle != -0.5 {
		t.Errorf("expected mirrored arm angle -0.5, got %v", scene.ArmAngle)
	}
	if !scene.HasOmega || scene.Omega != 3.2 {
		t.Errorf("expected omega 3.2, got %+v", scene)
	}
	if charts.Trajectory.Len() != 0 || s.Len() != 0 {
		t.Error("arm and speed updates must not add chart points")
	}
}

func TestReset(t *testing.T) {
	s, _, charts := newTestSync()
	s.Push(trajectory.Sample{Time: 0})
	s.Push(trajectory.Sample{Time: 1})
	s.Reset()

	if s.Len() != 0 || charts.Trajectory.Len() != 0 || charts.XTime.Len() != 0 || charts.YTime.Len() != 0 {
		t.Error("reset must empty every sink")
	}
}

func TestNilSceneIsAllowed(t *testing.T) {
	charts := NewCharts()
	s := New(nil, charts.Trajectory, charts.XTime, charts.YTime)
	s.SetArm(kinematics.PoseFor(1))
	s.Push(trajectory.Sample{Time: 0})
	if charts.Trajectory.Len() != 1 {
		t.Error("expected one point")
	}
}

func TestSeriesAccessors(t *testing.T) {
	s := NewSeries("x")
	s.Append(ChartPoint{Label: "0.00", Y: 1})
	s.Append(ChartPoint{Label: "0.10", Y: 2})

	if got := s.Values(); len(got) != 2 || got[1] != 2 {
		t.Errorf("unexpected values %v", got)
	}
	if got := s.Labels(); got[0] != "0.00" || got[1] != "0.10" {
		t.Errorf("unexpected labels %v", got)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("expected series cleared")
	}
}

func TestTeeScene(t *testing.T) {
	s1, s2 := &SceneState{}, &SceneState{}
	scene := TeeScene(s1, s2)
	scene.SetArmAngle(1)
	scene.SetBallPosition(2, 3)
	scene.SetAngularSpeed(4)
	if *s1 != *s2 || s2.BallY != 3 {
		t.Errorf("scene tee diverged: %+v vs %+v", s1, s2)
	}
}
