package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// ReplayDialer serves a recorded run from a JSON-lines file. The outbound
// configuration is logged and discarded.
type ReplayDialer struct {
	Path string
	// Interval is the delay before each message, zero for as fast as
	// the consumer reads.
	Interval time.Duration
}

func NewReplayDialer(path string, interval time.Duration) *ReplayDialer {
	return &ReplayDialer{Path: path, Interval: interval}
}

func (d *ReplayDialer) Dial(ctx context.Context) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("open replay %s: %w", d.Path, err)
	}
	return &replayConn{lineConn: newLineConn(readOnly{f}), interval: d.Interval}, nil
}

type replayConn struct {
	*lineConn
	interval time.Duration
}

func (r *replayConn) Send(ctx context.Context, payload []byte) error {
	slog.Debug("telemetry: replay ignores outbound message", "payload", string(payload))
	return ctx.Err()
}

func (r *replayConn) Receive(ctx context.Context) ([]byte, error) {
	if r.interval > 0 {
		t := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return r.lineConn.Receive(ctx)
}

type readOnly struct {
	f *os.File
}

func (r readOnly) Read(p []byte) (int, error)  { return r.f.Read(p) }
func (r readOnly) Write(p []byte) (int, error) { return 0, fmt.Errorf("replay file is read-only") }
func (r readOnly) Close() error                { return r.f.Close() }
