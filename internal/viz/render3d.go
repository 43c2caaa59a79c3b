package viz

import (
	"math"
	"sort"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera is a fixed-distance perspective camera looking down -Z at the
// origin. The scene is rotated in front of it rather than the camera moving.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera looks at the launcher from slightly above, so the plane of the
// arm reads as a disc.
func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, RotX: -0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to screen pixels of a sw x sh surface.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe          { return &Wireframe{Edges: make([]Edge, 0, 64)} }
func (w *Wireframe) AddEdge(s, e Vec3)  { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()             { w.Edges = w.Edges[:0] }
func (w *Wireframe) Merge(o *Wireframe) { w.Edges = append(w.Edges, o.Edges...) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near onto the canvas pixels.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// Scene geometry is in arm lengths: the arm tip sweeps the unit circle in
// the z=0 plane and the motor shaft runs down -z from the pivot.
const (
	sceneSegments = 32
	shaftLength   = 0.6
	ballSize      = 0.09
)

// LauncherWireframe is the static part of the scene: reach circle, motor
// shaft and a tick at the release angle (render frame, radians).
func LauncherWireframe(releaseRender float64) *Wireframe {
	w := NewWireframe()
	for i := 0; i < sceneSegments; i++ {
		a1 := float64(i) * 2 * math.Pi / sceneSegments
		a2 := float64(i+1) * 2 * math.Pi / sceneSegments
		if i%2 == 0 {
			w.AddEdge(Vec3{math.Cos(a1), math.Sin(a1), 0}, Vec3{math.Cos(a2), math.Sin(a2), 0})
		}
	}
	w.AddEdge(Vec3{0, 0, 0}, Vec3{0, 0, -shaftLength})
	c, s := math.Cos(releaseRender), math.Sin(releaseRender)
	w.AddEdge(Vec3{1.05 * c, 1.05 * s, 0}, Vec3{1.25 * c, 1.25 * s, 0})
	return w
}

// ArmWireframe is the arm at the given render angle.
func ArmWireframe(thetaRender float64) *Wireframe {
	w := NewWireframe()
	tip := Vec3{math.Cos(thetaRender), math.Sin(thetaRender), 0}
	w.AddEdge(Vec3{0, 0, 0}, tip)
	return w
}

// BallWireframe is a small three-axis cross at p.
func BallWireframe(p Vec3) *Wireframe {
	w := NewWireframe()
	w.AddEdge(p.Add(Vec3{-ballSize, 0, 0}), p.Add(Vec3{ballSize, 0, 0}))
	w.AddEdge(p.Add(Vec3{0, -ballSize, 0}), p.Add(Vec3{0, ballSize, 0}))
	w.AddEdge(p.Add(Vec3{0, 0, -ballSize}), p.Add(Vec3{0, 0, ballSize}))
	return w
}
