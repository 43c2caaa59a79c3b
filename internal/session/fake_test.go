package session_test

import (
	"context"
	"fmt"
	"io"

	"github.com/san-kum/armview/internal/attachment"
	"github.com/san-kum/armview/internal/telemetry"
)

// scriptedConn plays back a fixed list of server messages, then ends with
// endErr or io.EOF.
type scriptedConn struct {
	inbound []string
	endErr  error
	sent    []string
	closed  bool
	// cancel, when set, is called instead of returning the message at
	// cancelAt.
	cancel   context.CancelFunc
	cancelAt int
	read     int
}

func (c *scriptedConn) Send(ctx context.Context, payload []byte) error {
	c.sent = append(c.sent, string(payload))
	return nil
}

func (c *scriptedConn) Receive(ctx context.Context) ([]byte, error) {
	if c.cancel != nil && c.read == c.cancelAt {
		c.cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.inbound) == 0 {
		if c.endErr != nil {
			return nil, c.endErr
		}
		return nil, io.EOF
	}
	msg := c.inbound[0]
	c.inbound = c.inbound[1:]
	c.read++
	return []byte(msg), nil
}

func (c *scriptedConn) Close() error {
	c.closed = true
	return nil
}

func dialer(c *scriptedConn) telemetry.Dialer {
	return telemetry.DialerFunc(func(ctx context.Context) (telemetry.Conn, error) {
		return c, nil
	})
}

func msg(t, theta float64) string {
	return fmt.Sprintf(`{"time": %g, "theta": %g, "omega": 2.5}`, t, theta)
}

// recordingFlight counts free-flight hand-offs.
type recordingFlight struct {
	begun  int
	event  float64
	frames int
}

func (r *recordingFlight) Begin(ev attachment.ReleaseEvent) {
	r.begun++
	r.event = ev.Theta
}

func (r *recordingFlight) Observe(f telemetry.Frame) { r.frames++ }
