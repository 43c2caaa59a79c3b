package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/trajectory"
)

// TrajectoryToSVG draws the sample path inside the arm's reach circle.
// The view is fixed to the reach of the arm so runs are comparable.
func TrajectoryToSVG(samples []trajectory.Sample, width, height int, strokeColor string) string {
	lim := kinematics.ArmLength * 1.2
	toX := func(x float64) float64 { return (x + lim) / (2 * lim) * float64(width) }
	toY := func(y float64) float64 { return float64(height) - (y+lim)/(2*lim)*float64(height) }
	rx := kinematics.ArmLength / (2 * lim) * float64(width)
	ry := kinematics.ArmLength / (2 * lim) * float64(height)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="none" stroke="#444466" stroke-dasharray="4 4"/>
`, width, height, width, height, toX(0), toY(0), rx, ry))

	if len(samples) >= 2 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
		for i, s := range samples {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(s.X), toY(s.Y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(s.X), toY(s.Y)))
			}
		}
		sb.WriteString(`"/>
`)
	}
	if n := len(samples); n > 0 {
		last := samples[n-1]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, toX(last.X), toY(last.Y), strokeColor))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
