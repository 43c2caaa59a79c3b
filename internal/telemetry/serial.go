package telemetry

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.bug.st/serial"
)

// SerialDialer talks to a launcher wired over USB serial. Messages are JSON
// objects separated by newlines in both directions.
type SerialDialer struct {
	Port string
	Baud int
}

func NewSerialDialer(port string, baud int) *SerialDialer {
	return &SerialDialer{Port: port, Baud: baud}
}

func (d *SerialDialer) Dial(ctx context.Context) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	port, err := serial.Open(d.Port, &serial.Mode{BaudRate: d.Baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.Port, err)
	}
	return newLineConn(port), nil
}

// lineConn frames a byte stream as newline-delimited messages.
type lineConn struct {
	rw   io.ReadWriteCloser
	scan *bufio.Scanner
}

func newLineConn(rw io.ReadWriteCloser) *lineConn {
	scan := bufio.NewScanner(rw)
	scan.Buffer(make([]byte, 0, 4096), defaultReadLimit)
	return &lineConn{rw: rw, scan: scan}
}

func (l *lineConn) Send(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, 0, len(payload)+1)
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	n, err := l.rw.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

func (l *lineConn) Receive(ctx context.Context) ([]byte, error) {
	// unblock the scanner if the run is canceled mid-read
	stop := context.AfterFunc(ctx, func() { l.rw.Close() })
	defer stop()

	for l.scan.Scan() {
		line := l.scan.Bytes()
		if len(line) == 0 {
			continue
		}
		out := make([]byte, len(line))
		copy(out, line)
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.scan.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (l *lineConn) Close() error {
	return l.rw.Close()
}
