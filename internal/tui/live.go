// Package tui renders a run as plain ASCII frames for terminals where the
// full-screen interface is unwanted (--headless --plain, pipes, CI logs).
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/armview/internal/kinematics"
)

const (
	width       = 61
	height      = 21
	radius      = 8.0
	trailLen    = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type point struct{ x, y int }

// LiveRenderer draws the arm, the ball and its recent trail. It implements
// viewsync.SceneSink and redraws at most frameRate times a second.
type LiveRenderer struct {
	w         io.Writer
	frameRate int
	ansi      bool
	lastFrame time.Time
	now       func() time.Time

	canvas [][]rune
	trail  []point

	arm      float64
	ballX    float64
	ballY    float64
	hasBall  bool
	omega    float64
	hasOmega bool
	status   string
}

// NewLiveRenderer writes frames to w. With ansi set, each frame clears the
// screen first; otherwise frames are appended one after another.
func NewLiveRenderer(w io.Writer, frameRate int, ansi bool) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 10
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		w:         w,
		frameRate: frameRate,
		ansi:      ansi,
		now:       time.Now,
		canvas:    canvas,
		trail:     make([]point, 0, trailLen),
		status:    "attached",
	}
}

func (r *LiveRenderer) SetArmAngle(thetaRender float64) {
	r.arm = thetaRender
	r.maybeDraw()
}

func (r *LiveRenderer) SetBallPosition(x, y float64) {
	r.ballX, r.ballY, r.hasBall = x, y, true
	r.trail = append(r.trail, r.toScreen(x, y))
	if len(r.trail) > trailLen {
		r.trail = r.trail[1:]
	}
	r.maybeDraw()
}

func (r *LiveRenderer) SetAngularSpeed(omega float64) {
	r.omega, r.hasOmega = omega, true
}

// SetStatus replaces the state text shown under the frame.
func (r *LiveRenderer) SetStatus(s string) { r.status = s }

func (r *LiveRenderer) Start() {
	if r.ansi {
		fmt.Fprint(r.w, hideCursor)
	}
}

// Stop draws the final frame and restores the cursor.
func (r *LiveRenderer) Stop() {
	r.Flush()
	if r.ansi {
		fmt.Fprint(r.w, showCursor)
	}
}

// Flush draws the current state regardless of the frame rate.
func (r *LiveRenderer) Flush() {
	r.lastFrame = r.now()
	r.draw()
	r.render()
}

func (r *LiveRenderer) maybeDraw() {
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.draw()
	r.render()
}

// toScreen maps a render-frame position in meters to a cell. Cells are
// about twice as tall as they are wide, so x is stretched.
func (r *LiveRenderer) toScreen(x, y float64) point {
	cx, cy := width/2, height/2
	sx := cx + int(math.Round(2*radius*x/kinematics.ArmLength))
	sy := cy - int(math.Round(radius*y/kinematics.ArmLength))
	return point{sx, sy}
}

func (r *LiveRenderer) draw() {
	r.clear()

	for i := 0; i < 48; i++ {
		a := float64(i) * 2 * math.Pi / 48
		p := r.toScreen(kinematics.ArmLength*math.Cos(a), kinematics.ArmLength*math.Sin(a))
		r.set(p.x, p.y, '.')
	}

	for i, pt := range r.trail {
		if i < len(r.trail)/2 {
			r.set(pt.x, pt.y, '.')
		} else {
			r.set(pt.x, pt.y, 'o')
		}
	}

	pivot := r.toScreen(0, 0)
	tip := r.toScreen(kinematics.ArmLength*math.Cos(r.arm), kinematics.ArmLength*math.Sin(r.arm))
	r.line(pivot.x, pivot.y, tip.x, tip.y, '#')
	r.set(pivot.x, pivot.y, '+')

	if r.hasBall {
		b := r.toScreen(r.ballX, r.ballY)
		r.set(b.x, b.y, 'O')
	}
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Frame returns the last drawn canvas without any terminal control codes.
func (r *LiveRenderer) Frame() string {
	var b strings.Builder
	for _, row := range r.canvas {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *LiveRenderer) render() {
	var b strings.Builder
	if r.ansi {
		b.WriteString(clearScreen)
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	line := fmt.Sprintf("  %s  arm=%.1f°", r.status, kinematics.Degrees(-r.arm))
	if r.hasOmega {
		line += fmt.Sprintf("  ω=%.2f rad/s", r.omega)
	}
	if r.hasBall {
		line += fmt.Sprintf("  ball=(%.3f, %.3f) m", r.ballX, r.ballY)
	}
	b.WriteString(line + "\n")

	fmt.Fprint(r.w, b.String())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
