package session_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armview/internal/attachment"
	"github.com/san-kum/armview/internal/config"
	"github.com/san-kum/armview/internal/kinematics"
	"github.com/san-kum/armview/internal/session"
	"github.com/san-kum/armview/internal/telemetry"
	"github.com/san-kum/armview/internal/trajectory"
	"github.com/san-kum/armview/internal/viewsync"
)

var standard = config.Experiment{MotorTorque: 1.0, StartAngleDeg: 0, ReleaseAngleDeg: 45}

var _ = Describe("Run", func() {
	var (
		ctx    context.Context
		scene  *viewsync.SceneState
		charts *viewsync.Charts
		views  *viewsync.Sync
	)

	BeforeEach(func() {
		ctx = context.Background()
		scene = &viewsync.SceneState{}
		charts = viewsync.NewCharts()
		views = viewsync.New(scene, charts.Trajectory, charts.XTime, charts.YTime)
	})

	run := func(conn *scriptedConn, exp config.Experiment) (*session.Result, error) {
		return session.Run(ctx, session.Options{
			Dialer:     dialer(conn),
			Experiment: exp,
			Views:      views,
		})
	}

	It("sends the experiment once before reading frames", func() {
		conn := &scriptedConn{}
		_, err := run(conn, standard)
		Expect(err).NotTo(HaveOccurred())
		Expect(conn.sent).To(HaveLen(1))
		Expect(conn.sent[0]).To(MatchJSON(`{"motor_torque":1,"start_angle":0,"release_angle":45}`))
		Expect(conn.closed).To(BeTrue())
	})

	It("records frames until release and stops at the release frame", func() {
		conn := &scriptedConn{inbound: []string{
			`{"time": 0, "theta": 0}`,
			`{"time": 0.1, "theta": 0.3}`,
			`{"time": 0.2, "theta": 0.8}`,
		}}

		res, err := run(conn, standard)
		Expect(err).NotTo(HaveOccurred())

		x0, y0 := kinematics.Resolve(0)
		x1, y1 := kinematics.Resolve(0.3)
		Expect(res.Samples).To(Equal([]trajectory.Sample{
			{Time: 0, X: x0, Y: y0},
			{Time: 0.1, X: x1, Y: y1},
		}))
		Expect(res.State).To(Equal(attachment.Released))
		Expect(res.Release).NotTo(BeNil())
		Expect(res.Release.Theta).To(Equal(0.8))
		Expect(res.Release.Time).To(Equal(0.2))
		Expect(res.End).To(Equal(session.EndClosed))

		Expect(charts.Trajectory.Len()).To(Equal(2))
		Expect(charts.XTime.Len()).To(Equal(2))
		Expect(charts.YTime.Len()).To(Equal(2))
		Expect(scene.ArmAngle).To(Equal(-0.8))
		Expect(scene.BallX).To(Equal(x1))
		Expect(scene.BallY).To(Equal(y1))
	})

	It("ignores a frame without theta", func() {
		conn := &scriptedConn{inbound: []string{
			msg(0, 0.1),
			msg(0.5, 0.2),
			`{"time": 1.0}`,
		}}

		res, err := run(conn, standard)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(2))
		Expect(res.Partial).To(Equal(1))

		x, y := kinematics.Resolve(0.2)
		Expect(scene.BallX).To(Equal(x))
		Expect(scene.BallY).To(Equal(y))
		Expect(scene.ArmAngle).To(Equal(-0.2))
	})

	It("ends normally when the server closes before release", func() {
		conn := &scriptedConn{inbound: []string{
			msg(0, 0), msg(0.1, 0.1), msg(0.2, 0.2), msg(0.3, 0.3), msg(0.4, 0.4),
		}}

		res, err := run(conn, standard)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(5))
		Expect(res.State).To(Equal(attachment.Attached))
		Expect(res.Release).To(BeNil())
		Expect(res.End).To(Equal(session.EndClosed))
		Expect(res.Frames).To(Equal(5))
	})

	It("updates the speed readout only from frames carrying omega", func() {
		conn := &scriptedConn{inbound: []string{
			`{"omega": 1.5}`,
			`{"time": 0, "theta": 0.1}`,
		}}

		_, err := run(conn, standard)
		Expect(err).NotTo(HaveOccurred())
		Expect(scene.HasOmega).To(BeTrue())
		Expect(scene.Omega).To(Equal(1.5))
	})

	It("skips malformed messages and keeps going", func() {
		var dropped []error
		conn := &scriptedConn{inbound: []string{
			msg(0, 0),
			`not json`,
			`{"theta": "fast"}`,
			msg(0.1, 0.1),
		}}

		res, err := session.Run(ctx, session.Options{
			Dialer:     dialer(conn),
			Experiment: standard,
			Views:      views,
			OnDrop:     func(err error) { dropped = append(dropped, err) },
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(2))
		Expect(res.Dropped).To(Equal(2))
		Expect(res.Received).To(Equal(4))
		Expect(dropped).To(HaveLen(2))
		Expect(dropped[0]).To(MatchError(telemetry.ErrMalformedFrame))
	})

	It("returns the partial result when the connection drops", func() {
		conn := &scriptedConn{
			inbound: []string{msg(0, 0), msg(0.1, 0.1)},
			endErr:  errors.New("connection reset by peer"),
		}

		res, err := run(conn, standard)
		Expect(err).To(MatchError(telemetry.ErrConnectionLost))
		Expect(res).NotTo(BeNil())
		Expect(res.Samples).To(HaveLen(2))
		Expect(res.End).To(Equal(session.EndLost))
	})

	It("reports cancellation", func() {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()
		ctx = cctx

		conn := &scriptedConn{
			inbound:  []string{msg(0, 0), msg(0.1, 0.1), msg(0.2, 0.2)},
			cancel:   cancel,
			cancelAt: 2,
		}

		res, err := run(conn, standard)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.End).To(Equal(session.EndCanceled))
		Expect(res.Samples).To(HaveLen(2))
	})

	It("never dials with an invalid experiment", func() {
		dialed := false
		d := telemetry.DialerFunc(func(ctx context.Context) (telemetry.Conn, error) {
			dialed = true
			return &scriptedConn{}, nil
		})

		res, err := session.Run(ctx, session.Options{
			Dialer:     d,
			Experiment: config.Experiment{MotorTorque: math.NaN(), ReleaseAngleDeg: 45},
		})
		Expect(err).To(MatchError(config.ErrInvalid))
		Expect(res).To(BeNil())
		Expect(dialed).To(BeFalse())
	})

	It("surfaces a failed dial", func() {
		d := telemetry.DialerFunc(func(ctx context.Context) (telemetry.Conn, error) {
			return nil, errors.New("connection refused")
		})

		res, err := session.Run(ctx, session.Options{Dialer: d, Experiment: standard})
		Expect(err).To(MatchError(telemetry.ErrConnectionFailure))
		Expect(res).To(BeNil())
	})

	It("hands the ball to free flight once", func() {
		flight := &recordingFlight{}
		var events []attachment.ReleaseEvent
		conn := &scriptedConn{inbound: []string{
			msg(0, 0.2),
			msg(0.1, 0.9),
			msg(0.2, 1.2),
			`{"time": 0.3}`,
		}}

		res, err := session.Run(ctx, session.Options{
			Dialer:     dialer(conn),
			Experiment: standard,
			Views:      views,
			FreeFlight: flight,
			OnRelease:  func(ev attachment.ReleaseEvent) { events = append(events, ev) },
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(1))
		Expect(flight.begun).To(Equal(1))
		Expect(flight.event).To(Equal(0.9))
		Expect(flight.frames).To(Equal(2))
		Expect(events).To(HaveLen(1))
		Expect(events[0].LaunchSpeed).To(BeNumerically("~", 2.5*kinematics.ArmLength, 1e-12))

		Expect(scene.ArmAngle).To(Equal(-1.2))
		x, y := kinematics.Resolve(0.2)
		Expect(scene.BallX).To(Equal(x))
		Expect(scene.BallY).To(Equal(y))
	})

	It("tracks angular speed statistics", func() {
		conn := &scriptedConn{inbound: []string{
			`{"time": 0, "theta": 0, "omega": 1}`,
			`{"time": 0.5, "theta": 0.1, "omega": 3}`,
			`{"time": 1.0, "theta": 0.2, "omega": 5}`,
		}}

		res, err := run(conn, standard)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Stats.PeakOmega).To(Equal(5.0))
		Expect(res.Stats.MeanOmega).To(BeNumerically("~", 3.0, 1e-12))
		Expect(res.Stats.FrameRate).To(BeNumerically("~", 2.0, 1e-12))
		Expect(res.Stats.ThetaCoverage).To(Equal(1.0))
	})

	It("gives every run its own identity and clean charts", func() {
		first, err := run(&scriptedConn{inbound: []string{msg(0, 0), msg(0.1, 0.9)}}, standard)
		Expect(err).NotTo(HaveOccurred())
		second, err := run(&scriptedConn{inbound: []string{msg(0, 0.1)}}, standard)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.ID).NotTo(Equal(first.ID))
		Expect(second.State).To(Equal(attachment.Attached))
		Expect(second.Samples).To(HaveLen(1))
		Expect(charts.Trajectory.Len()).To(Equal(1))
		Expect(charts.XTime.Len()).To(Equal(1))
		Expect(charts.YTime.Len()).To(Equal(1))
	})
})

var _ = Describe("Session", func() {
	frame := func(t, theta float64) telemetry.Frame {
		return telemetry.Frame{Time: telemetry.Float(t), Theta: telemetry.Float(theta)}
	}

	It("resets to an empty, attached run regardless of history", func() {
		s := session.New(standard, nil, nil)
		for _, th := range []float64{0, 0.2, 0.5, 0.9, 1.1} {
			s.Step(frame(th, th))
		}
		Expect(s.State()).To(Equal(attachment.Released))
		Expect(s.Log().Len()).To(Equal(3))
		oldID := s.ID

		s.Reset()
		Expect(s.Log().Len()).To(BeZero())
		Expect(s.Log().Sealed()).To(BeFalse())
		Expect(s.State()).To(Equal(attachment.Attached))
		Expect(s.Frames()).To(BeZero())
		Expect(s.ID).NotTo(Equal(oldID))

		s.Step(frame(0, 0.1))
		Expect(s.Log().Len()).To(Equal(1))
	})

	It("keeps release listeners across resets", func() {
		calls := 0
		s := session.New(standard, nil, nil)
		s.OnRelease(func(attachment.ReleaseEvent) { calls++ })

		s.Step(frame(0, 1))
		s.Reset()
		s.Step(frame(0, 1))
		s.Step(frame(0.1, 1.2))
		Expect(calls).To(Equal(2))
	})

	It("appends nothing for a frame with theta but no time", func() {
		s := session.New(standard, nil, nil)
		s.Step(telemetry.Frame{Theta: telemetry.Float(0.3)})
		Expect(s.Log().Len()).To(BeZero())
		Expect(s.Partial()).To(Equal(1))
	})

	DescribeTable("log length equals frames processed while attached",
		func(release float64, thetas []float64, attached int) {
			exp := config.Experiment{MotorTorque: 1, StartAngleDeg: 0, ReleaseAngleDeg: release}
			s := session.New(exp, nil, nil)
			for i, th := range thetas {
				s.Step(frame(float64(i)*0.1, th))
			}
			Expect(s.Log().Len()).To(Equal(attached))
		},
		Entry("never released", 90.0, []float64{0, 0.1, 0.2, 0.3}, 4),
		Entry("released on first frame", 10.0, []float64{0.5, 0.6}, 0),
		Entry("released midway", 45.0, []float64{0, 0.4, 0.78, 0.79, 0.2}, 3),
		Entry("reverse rotation", -45.0, []float64{0, -0.5, -0.9, -0.1}, 2),
		Entry("oscillating below threshold", 60.0, []float64{0.5, -0.5, 0.5, -0.5}, 4),
	)
})
