package export

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/session"
)

var (
	trajectoryColor = color.RGBA{R: 0, G: 160, B: 200, A: 255}
	xColor          = color.RGBA{R: 200, G: 40, B: 120, A: 255}
	yColor          = color.RGBA{R: 40, G: 140, B: 40, A: 255}
	releaseColor    = color.RGBA{R: 230, G: 160, B: 0, A: 255}
)

// WriteTrajectoryPNG plots the ball positions and, when the ball was
// released, the position at release.
func WriteTrajectoryPNG(path string, res *session.Result) error {
	p := plot.New()
	p.Title.Text = "Ball Trajectory"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	lim := kinematics.ArmLength * 1.2
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim

	pts := make(plotter.XYs, len(res.Samples))
	for i, s := range res.Samples {
		pts[i] = plotter.XY{X: s.X, Y: s.Y}
	}
	if len(pts) > 0 {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = trajectoryColor
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add("attached", sc)
	}

	if ev := res.Release; ev != nil {
		x, y := kinematics.Resolve(ev.Theta)
		rel, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
		if err != nil {
			return err
		}
		rel.GlyphStyle.Color = releaseColor
		rel.GlyphStyle.Radius = vg.Points(4)
		p.Add(rel)
		p.Legend.Add("release", rel)
	}

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// WritePositionPNG plots x(t) and y(t) on a shared time axis.
func WritePositionPNG(path string, res *session.Result) error {
	p := plot.New()
	p.Title.Text = "Ball Position"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "Position (m)"

	xs := make(plotter.XYs, len(res.Samples))
	ys := make(plotter.XYs, len(res.Samples))
	for i, s := range res.Samples {
		xs[i] = plotter.XY{X: s.Time, Y: s.X}
		ys[i] = plotter.XY{X: s.Time, Y: s.Y}
	}

	if len(res.Samples) > 0 {
		xLine, err := plotter.NewLine(xs)
		if err != nil {
			return err
		}
		xLine.Color = xColor
		xLine.Width = vg.Points(1)
		p.Add(xLine)
		p.Legend.Add("x(t)", xLine)

		yLine, err := plotter.NewLine(ys)
		if err != nil {
			return err
		}
		yLine.Color = yColor
		yLine.Width = vg.Points(1)
		p.Add(yLine)
		p.Legend.Add("y(t)", yLine)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
