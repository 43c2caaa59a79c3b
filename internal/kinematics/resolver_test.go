package kinematics

import (
	"math"
	"testing"
)

func TestRenderAngleMirrorsPhysicsFrame(t *testing.T) {
	for _, theta := range []float64{0, 0.3, -0.3, math.Pi / 2, -math.Pi, 7.5} {
		if got := RenderAngle(theta); got != -theta {
			t.Errorf("RenderAngle(%v) = %v, want %v", theta, got, -theta)
		}
		if got := PoseFor(theta).ThetaRender; got != -theta {
			t.Errorf("PoseFor(%v).ThetaRender = %v, want %v", theta, got, -theta)
		}
	}
}

func TestResolveSignConvention(t *testing.T) {
	tests := []float64{0, 0.1, 0.3, 0.8, math.Pi / 4, -1.2, math.Pi, 2 * math.Pi, 12.34}

	for _, theta := range tests {
		x, y := Resolve(theta)
		wantX := ArmLength * math.Cos(-theta)
		wantY := ArmLength * math.Sin(-theta)
		if x != wantX || y != wantY {
			t.Errorf("Resolve(%v) = (%v, %v), want (%v, %v)", theta, x, y, wantX, wantY)
		}
	}
}

func TestResolveQuadrants(t *testing.T) {
	// positive physics angle lands below the x-axis in the render frame
	_, y := Resolve(math.Pi / 2)
	if math.Abs(y+ArmLength) > 1e-12 {
		t.Errorf("Resolve(pi/2) y = %v, want %v", y, -ArmLength)
	}

	x, y := Resolve(0)
	if x != ArmLength || y != 0 {
		t.Errorf("Resolve(0) = (%v, %v), want (%v, 0)", x, y, ArmLength)
	}
}

func TestResolveStaysOnCircle(t *testing.T) {
	for theta := -10.0; theta <= 10.0; theta += 0.37 {
		x, y := Resolve(theta)
		r := math.Hypot(x, y)
		if math.Abs(r-ArmLength) > 1e-12 {
			t.Errorf("radius at theta=%v is %v, want %v", theta, r, ArmLength)
		}
	}
}

func TestTangentialSpeed(t *testing.T) {
	if got := TangentialSpeed(-10); math.Abs(got-1.7) > 1e-12 {
		t.Errorf("TangentialSpeed(-10) = %v, want 1.7", got)
	}
}

func TestAngleConversion(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Radians(180) = %v", got)
	}
	if got := Degrees(math.Pi / 4); math.Abs(got-45) > 1e-12 {
		t.Errorf("Degrees(pi/4) = %v", got)
	}
}
