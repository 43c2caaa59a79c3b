package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/coder/websocket"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultReadLimit   = 1 << 20
)

// WebSocketDialer connects to the launcher's websocket endpoint.
type WebSocketDialer struct {
	URL         string
	DialTimeout time.Duration
	ReadLimit   int64
}

func NewWebSocketDialer(url string) *WebSocketDialer {
	return &WebSocketDialer{
		URL:         url,
		DialTimeout: defaultDialTimeout,
		ReadLimit:   defaultReadLimit,
	}
}

func (d *WebSocketDialer) Dial(ctx context.Context) (Conn, error) {
	dialCtx := ctx
	if d.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, d.DialTimeout)
		defer cancel()
	}

	c, _, err := websocket.Dial(dialCtx, d.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", d.URL, err)
	}
	if d.ReadLimit > 0 {
		c.SetReadLimit(d.ReadLimit)
	}
	return &wsConn{c: c}, nil
}

type wsConn struct {
	c *websocket.Conn
}

func (w *wsConn) Send(ctx context.Context, payload []byte) error {
	return w.c.Write(ctx, websocket.MessageText, payload)
}

func (w *wsConn) Receive(ctx context.Context) ([]byte, error) {
	_, data, err := w.c.Read(ctx)
	if err != nil {
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return nil, io.EOF
		}
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return data, nil
}

func (w *wsConn) Close() error {
	if err := w.c.Close(websocket.StatusNormalClosure, "run ended"); err != nil {
		// peer may already be gone
		w.c.CloseNow()
	}
	return nil
}
