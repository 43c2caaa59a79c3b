package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/session"
	"github.com/san-kum/armview/internal/viewsync"
)

// WriteHTML renders the three run charts (trajectory scatter, x(t), y(t))
// as one echarts page. The time series share the same category labels.
func WriteHTML(w io.Writer, res *session.Result) error {
	pad := kinematics.ArmLength * 1.2
	subtitle := fmt.Sprintf("run=%s samples=%d state=%s", res.ID, len(res.Samples), res.State)

	traj := make([]opts.ScatterData, 0, len(res.Samples))
	labels := make([]string, 0, len(res.Samples))
	xs := make([]opts.LineData, 0, len(res.Samples))
	ys := make([]opts.LineData, 0, len(res.Samples))
	for _, s := range res.Samples {
		traj = append(traj, opts.ScatterData{Value: []interface{}{s.X, s.Y}})
		labels = append(labels, viewsync.TimeLabel(s.Time))
		xs = append(xs, opts.LineData{Value: s.X})
		ys = append(ys, opts.LineData{Value: s.Y})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "armview run", Theme: "dark", Width: "600px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Ball Trajectory", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("trajectory", traj, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	page := components.NewPage()
	page.SetPageTitle("armview " + res.ID)
	page.AddCharts(scatter,
		timeSeries("X Position", "X (m)", labels, xs),
		timeSeries("Y Position", "Y (m)", labels, ys))
	return page.Render(w)
}

func timeSeries(title, axis string, labels []string, data []opts.LineData) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "600px", Height: "300px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: axis, NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(labels).AddSeries(title, data)
	return line
}
