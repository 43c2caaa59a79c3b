package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/armview/internal/attachment"
	"github.com/san-kum/armview/internal/config"
	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/session"
	"github.com/san-kum/armview/internal/viewsync"
)

const (
	sceneWidth   = 40
	sceneHeight  = 16
	plotWidth    = 40
	plotHeight   = 10
	graphWidth   = 36
	graphHeight  = 5
	omegaHistory = 120
)

// Chart identifies one of the three chart sinks.
type Chart int

const (
	TrajectoryChart Chart = iota
	XChart
	YChart
)

type (
	armMsg   float64
	ballMsg  struct{ x, y float64 }
	speedMsg float64
	pointMsg struct {
		chart Chart
		p     viewsync.ChartPoint
	}
	clearMsg Chart
	tickMsg  time.Time
)

// ReleaseMsg tells the view that the ball left the arm.
type ReleaseMsg attachment.ReleaseEvent

// DoneMsg ends the run shown by the view.
type DoneMsg struct {
	Result *session.Result
	Err    error
}

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

type sceneSink struct{ s Sender }

func (k sceneSink) SetArmAngle(v float64)        { k.s.Send(armMsg(v)) }
func (k sceneSink) SetBallPosition(x, y float64) { k.s.Send(ballMsg{x, y}) }
func (k sceneSink) SetAngularSpeed(v float64)    { k.s.Send(speedMsg(v)) }

type chartSink struct {
	s     Sender
	chart Chart
}

func (k chartSink) Append(p viewsync.ChartPoint) { k.s.Send(pointMsg{k.chart, p}) }
func (k chartSink) Clear()                       { k.s.Send(clearMsg(k.chart)) }

// NewSync returns a viewsync.Sync whose scene and charts are the Live model
// behind s. Extra scene sinks receive the same updates.
func NewSync(s Sender, extra ...viewsync.SceneSink) *viewsync.Sync {
	scene := viewsync.SceneSink(sceneSink{s})
	if len(extra) > 0 {
		scene = viewsync.TeeScene(append([]viewsync.SceneSink{scene}, extra...)...)
	}
	return viewsync.New(scene,
		chartSink{s, TrajectoryChart},
		chartSink{s, XChart},
		chartSink{s, YChart})
}

// Live is the Bubble Tea model of one run.
type Live struct {
	exp    config.Experiment
	theme  Theme
	styles styles
	fps    int
	cancel func()

	scene  *Canvas
	plot   *Canvas
	camera *Camera
	static *Wireframe

	arm      float64
	ball     Vec3
	hasBall  bool
	omega    float64
	hasOmega bool
	omegas   []float64

	charts *viewsync.Charts

	release *attachment.ReleaseEvent
	done    bool
	result  *session.Result
	err     error

	frame    int
	showHelp bool
}

// NewLive builds the run view. cancel is called when the user quits so
// the session can stop reading telemetry.
func NewLive(exp config.Experiment, theme Theme, fps int, cancel func()) Live {
	if fps <= 0 {
		fps = config.DefaultFrameRate
	}
	return Live{
		exp:    exp,
		theme:  theme,
		styles: newStyles(theme),
		fps:    fps,
		cancel: cancel,
		scene:  NewCanvas(sceneWidth, sceneHeight),
		plot:   NewCanvas(plotWidth, plotHeight),
		camera: NewCamera(),
		static: LauncherWireframe(kinematics.RenderAngle(kinematics.Radians(exp.ReleaseAngleDeg))),
		arm:    kinematics.RenderAngle(kinematics.Radians(exp.StartAngleDeg)),
		omegas: make([]float64, 0, omegaHistory),
		charts: viewsync.NewCharts(),
	}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Live) Init() tea.Cmd { return m.tick() }

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.frame++
		return m, m.tick()
	case armMsg:
		m.arm = float64(msg)
	case ballMsg:
		m.ball = Vec3{msg.x / kinematics.ArmLength, msg.y / kinematics.ArmLength, 0}
		m.hasBall = true
	case speedMsg:
		m.omega, m.hasOmega = float64(msg), true
		m.omegas = append(m.omegas, float64(msg))
		if len(m.omegas) > omegaHistory {
			m.omegas = m.omegas[1:]
		}
	case pointMsg:
		m.series(msg.chart).Append(msg.p)
	case clearMsg:
		m.series(Chart(msg)).Clear()
	case ReleaseMsg:
		ev := attachment.ReleaseEvent(msg)
		m.release = &ev
	case DoneMsg:
		m.done, m.result, m.err = true, msg.Result, msg.Err
	}
	return m, nil
}

func (m Live) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "enter":
		if m.done {
			return m, tea.Quit
		}
	case "?":
		m.showHelp = !m.showHelp
	case "t", "T":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	}
	return m, nil
}

func (m Live) series(c Chart) *viewsync.Series {
	switch c {
	case XChart:
		return m.charts.XTime
	case YChart:
		return m.charts.YTime
	default:
		return m.charts.Trajectory
	}
}

// Samples is the number of points held by each chart.
func (m Live) Samples() (traj, x, y int) {
	return m.charts.Trajectory.Len(), m.charts.XTime.Len(), m.charts.YTime.Len()
}

// lastTime is the time label of the newest sample, empty before the first.
func (m Live) lastTime() string {
	labels := m.charts.XTime.Labels()
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1]
}

func (m Live) drawScene() {
	m.scene.Clear()
	w := NewWireframe()
	w.Merge(m.static)
	w.Merge(ArmWireframe(m.arm))
	if m.hasBall {
		w.Merge(BallWireframe(m.ball))
	}
	Render3D(m.scene, w, m.camera)
}

func (m Live) drawPlot() {
	m.plot.Clear()
	lim := kinematics.ArmLength * 1.2
	pts := m.charts.Trajectory.Points()
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	Scatter(m.plot, Viewport{MinX: -lim, MaxX: lim, MinY: -lim, MaxY: lim}, xs, ys)
}

func (m Live) status() string {
	st := m.styles
	switch {
	case m.done && m.err != nil && m.result != nil:
		return st.bad.Render("ENDED: " + m.result.End.String())
	case m.done && m.err != nil:
		return st.bad.Render("FAILED: " + m.err.Error())
	case m.done:
		return st.muted.Render("ENDED") + st.keyHint.Render("  enter/q to close")
	case m.release != nil:
		return st.accent.Render("RELEASED")
	default:
		return st.ok.Render(AnimatedSpinner(m.frame) + " ATTACHED")
	}
}

// releaseProgress is how far the arm has travelled from start to release.
func (m Live) releaseProgress() float64 {
	span := m.exp.ReleaseAngleDeg - m.exp.StartAngleDeg
	if span == 0 {
		return 0
	}
	theta := kinematics.Degrees(-m.arm)
	return (theta - m.exp.StartAngleDeg) / span
}

func (m Live) View() string {
	m.drawScene()
	m.drawPlot()
	st := m.styles

	row := func(label, value string) string {
		return st.label.Render(label) + st.value.Render(value) + "\n"
	}

	var s strings.Builder
	s.WriteString(m.status() + "\n\n")
	if t := m.lastTime(); t != "" {
		s.WriteString(row("Time", t+"s"))
	}
	s.WriteString(row("Arm", fmt.Sprintf("%.1f°", kinematics.Degrees(-m.arm))))
	if m.hasOmega {
		s.WriteString(row("Speed", fmt.Sprintf("%.2f rad/s", m.omega)))
	} else {
		s.WriteString(row("Speed", "--"))
	}
	s.WriteString(row("Samples", fmt.Sprintf("%d", m.charts.Trajectory.Len())))
	s.WriteString("\n")
	s.WriteString(row("Torque", fmt.Sprintf("%.2f N·m", m.exp.MotorTorque)))
	s.WriteString(row("Start", fmt.Sprintf("%.1f°", m.exp.StartAngleDeg)))
	s.WriteString(row("Release", fmt.Sprintf("%.1f°", m.exp.ReleaseAngleDeg)))
	s.WriteString(st.label.Render("Progress") + st.ok.Render(ProgressBar(m.releaseProgress(), 20)) + "\n")
	if m.release != nil {
		s.WriteString("\n")
		s.WriteString(row("Released at", fmt.Sprintf("%.1f°", kinematics.Degrees(m.release.Theta))))
		if m.release.HasOmega {
			s.WriteString(st.label.Render("Launch") + st.accent.Render(fmt.Sprintf("%.3f m/s", m.release.LaunchSpeed)) + "\n")
		}
	}
	s.WriteString("\n" + st.muted.Render("ω ") + st.graph.Render(Sparkline(m.omegas, 28)) + "\n")
	if m.done && m.result != nil {
		s.WriteString(row("Peak ω", fmt.Sprintf("%.2f rad/s", m.result.Stats.PeakOmega)))
		s.WriteString(row("Dropped", fmt.Sprintf("%d", m.result.Dropped)))
	}
	s.WriteString(st.keyHint.Render("\nxyz:Rotate +/-:Zoom T:Theme\n?:Help Q:Quit"))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		st.scene.Render(m.scene.String()),
		st.panel.Render(s.String()))

	graphs := []string{st.plot.Render(m.plot.String())}
	if xs := m.charts.XTime.Values(); len(xs) > 1 {
		graphs = append(graphs, st.graph.Render(asciigraph.Plot(xs,
			asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Caption("x(t) [m]"))))
	}
	if ys := m.charts.YTime.Values(); len(ys) > 1 {
		graphs = append(graphs, st.graph.Render(asciigraph.Plot(ys,
			asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Caption("y(t) [m]"))))
	}
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, graphs...)

	view := st.header.Render("ARMVIEW") + "\n" + top + "\n" + bottom
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  x / X    - Tilt scene               ║
║  y / Y    - Turn scene               ║
║  z / Z    - Roll scene               ║
║  + / -    - Zoom                     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Stop run and quit        ║
╚══════════════════════════════════════╝`
