// Package viz is the full-screen terminal interface of armview, built on
// Bubble Tea.
//
//   - [Live]: the run view. A 3D wireframe of the arm and ball, the ball
//     trajectory as a Braille scatter plot and the x(t) and y(t) series.
//   - [Form]: preset selection and experiment parameter editing before a run.
//   - [Canvas]: Braille pixel canvas shared by the scene and the scatter plot.
//
// The run itself happens outside the Bubble Tea loop. [NewSync] returns a
// viewsync.Sync whose sinks forward every update to the program as a message,
// so the views see samples in exactly the order the session pushed them.
//
// # Key Bindings
//
//	x/X y/Y z/Z - Rotate the scene camera
//	+/-         - Zoom
//	T           - Cycle color themes
//	?           - Show help overlay
//	Q           - Stop the run / quit
package viz
