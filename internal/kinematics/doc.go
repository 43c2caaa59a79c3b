// Package kinematics maps the arm angle reported by the launcher to the
// ball's Cartesian position in the render frame.
//
// The render frame is the physics frame mirrored about the x-axis:
//
//	thetaRender = -theta
//	x = ArmLength * cos(thetaRender)
//	y = ArmLength * sin(thetaRender)
//
// Every view (3D scene, trajectory scatter, x(t) and y(t) charts) consumes
// positions from [Resolve], so flipping the sign here flips all of them.
package kinematics
