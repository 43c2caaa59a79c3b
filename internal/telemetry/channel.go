package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/armview/internal/config"
)

const maxLoggedPayload = 120

// Channel is the telemetry stream of a single run.
//
// Channel is not safe for concurrent use; exactly one consumer calls Next.
type Channel struct {
	conn     Conn
	received int
	dropped  int
	done     bool
	onDrop   func(error)
}

// Option configures a Channel.
type Option func(*Channel)

// WithDropHandler registers a callback for every malformed message dropped by
// Next. The error is a *FrameError wrapping ErrMalformedFrame.
func WithDropHandler(fn func(error)) Option {
	return func(c *Channel) { c.onDrop = fn }
}

// Open dials the launcher and sends the experiment configuration. The
// returned error wraps ErrConnectionFailure.
func Open(ctx context.Context, d Dialer, exp config.Experiment, opts ...Option) (*Channel, error) {
	msg, err := EncodeConfig(exp)
	if err != nil {
		return nil, fmt.Errorf("%w: encode config: %w", ErrConnectionFailure, err)
	}

	conn, err := d.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}

	if err := conn.Send(ctx, msg); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: send config: %w", ErrConnectionFailure, err)
	}

	slog.Info("telemetry: channel open",
		"motor_torque", exp.MotorTorque,
		"start_angle", exp.StartAngleDeg,
		"release_angle", exp.ReleaseAngleDeg)

	c := &Channel{conn: conn}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Next blocks until the next well-formed frame arrives. Malformed messages
// are logged, counted and skipped.
//
// Next returns io.EOF when the server ends the stream, an error wrapping
// ErrConnectionLost when the connection drops, ctx.Err() on cancellation and
// ErrChannelClosed once the channel has ended.
func (c *Channel) Next(ctx context.Context) (Frame, error) {
	if c.done {
		return Frame{}, ErrChannelClosed
	}
	for {
		payload, err := c.conn.Receive(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				c.finish()
				return Frame{}, ctxErr
			}
			c.finish()
			if errors.Is(err, io.EOF) {
				slog.Info("telemetry: stream ended", "received", c.received, "dropped", c.dropped)
				return Frame{}, io.EOF
			}
			slog.Warn("telemetry: connection lost", "received", c.received, "error", err)
			return Frame{}, fmt.Errorf("%w: %w", ErrConnectionLost, err)
		}
		c.received++

		f, err := Decode(payload)
		if err != nil {
			c.dropped++
			ferr := &FrameError{Index: c.received, Payload: truncate(payload), Wrapped: err}
			slog.Warn("telemetry: dropping malformed frame",
				"index", ferr.Index,
				"payload", ferr.Payload,
				"error", err)
			if c.onDrop != nil {
				c.onDrop(ferr)
			}
			continue
		}
		return f, nil
	}
}

// Received is the number of inbound messages read so far, malformed ones
// included.
func (c *Channel) Received() int { return c.received }

// Dropped is the number of malformed messages skipped.
func (c *Channel) Dropped() int { return c.dropped }

// Done reports whether the stream has ended.
func (c *Channel) Done() bool { return c.done }

// Close releases the connection. It is safe to call more than once.
func (c *Channel) Close() error {
	if c.conn == nil {
		return nil
	}
	c.done = true
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Channel) finish() {
	c.done = true
}

func truncate(payload []byte) string {
	if len(payload) <= maxLoggedPayload {
		return string(payload)
	}
	return string(payload[:maxLoggedPayload]) + "..."
}
