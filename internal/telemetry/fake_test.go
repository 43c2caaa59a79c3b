package telemetry

import (
	"context"
	"io"
)

// fakeConn replays scripted inbound messages and records outbound ones.
type fakeConn struct {
	inbound [][]byte
	endErr  error
	sent    [][]byte
	closed  bool
}

func (f *fakeConn) Send(ctx context.Context, payload []byte) error {
	f.sent = append(f.sent, append([]byte(nil), payload...))
	return nil
}

func (f *fakeConn) Receive(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.inbound) == 0 {
		if f.endErr != nil {
			return nil, f.endErr
		}
		return nil, io.EOF
	}
	msg := f.inbound[0]
	f.inbound = f.inbound[1:]
	return msg, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func dialFake(conn *fakeConn) Dialer {
	return DialerFunc(func(ctx context.Context) (Conn, error) { return conn, nil })
}

func lines(msgs ...string) [][]byte {
	out := make([][]byte, len(msgs))
	for i, m := range msgs {
		out[i] = []byte(m)
	}
	return out
}
