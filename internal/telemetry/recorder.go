package telemetry

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
)

// RecordingDialer tees every inbound message of the wrapped dialer to w as
// JSON lines that ReplayDialer can read back.
type RecordingDialer struct {
	Dialer Dialer
	W      io.Writer
}

func NewRecordingDialer(d Dialer, w io.Writer) *RecordingDialer {
	return &RecordingDialer{Dialer: d, W: w}
}

func (d *RecordingDialer) Dial(ctx context.Context) (Conn, error) {
	conn, err := d.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	return &recordingConn{Conn: conn, w: d.W}, nil
}

type recordingConn struct {
	Conn
	mu     sync.Mutex
	w      io.Writer
	failed bool
}

func (r *recordingConn) Receive(ctx context.Context) ([]byte, error) {
	payload, err := r.Conn.Receive(ctx)
	if err != nil {
		return payload, err
	}
	r.record(payload)
	return payload, nil
}

func (r *recordingConn) record(payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed {
		return
	}
	line := bytes.ReplaceAll(bytes.TrimSpace(payload), []byte("\n"), []byte(" "))
	line = append(line, '\n')
	if _, err := r.w.Write(line); err != nil {
		// recording is best effort; the run itself continues
		r.failed = true
		slog.Warn("telemetry: recording disabled after write error", "error", err)
	}
}
