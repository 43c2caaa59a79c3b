package kinematics

import "math"

// ArmLength is the pivot-to-ball distance in meters.
const ArmLength = 0.17

// Pose is the arm orientation in the render frame.
type Pose struct {
	ThetaRender float64
}

// RenderAngle converts a physics-frame angle to the render frame.
func RenderAngle(theta float64) float64 {
	return -theta
}

// PoseFor returns the render pose for a physics-frame angle.
func PoseFor(theta float64) Pose {
	return Pose{ThetaRender: RenderAngle(theta)}
}

// Resolve returns the ball position for an arm angle given in radians.
func Resolve(theta float64) (x, y float64) {
	tr := RenderAngle(theta)
	return ArmLength * math.Cos(tr), ArmLength * math.Sin(tr)
}

// TangentialSpeed is the ball speed along the arm's circle at angular
// speed omega.
func TangentialSpeed(omega float64) float64 {
	return math.Abs(omega) * ArmLength
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
