package telemetry

import "context"

// Conn is a message-oriented connection to the launcher.
//
// Receive returns io.EOF once the peer has ended the stream cleanly. Any
// other error is treated as a dropped connection.
type Conn interface {
	Send(ctx context.Context, payload []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}

// Dialer establishes a fresh Conn for each run.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context) (Conn, error) { return f(ctx) }
