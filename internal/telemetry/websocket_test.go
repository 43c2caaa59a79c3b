package telemetry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// launcherServer accepts one websocket, reads the configuration and writes
// the scripted messages before closing with the given status.
func launcherServer(t *testing.T, msgs []string, status websocket.StatusCode, gotConfig chan<- string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		_, cfg, err := c.Read(ctx)
		if err != nil {
			t.Errorf("read config: %v", err)
			return
		}
		gotConfig <- string(cfg)

		for _, m := range msgs {
			if err := c.Write(ctx, websocket.MessageText, []byte(m)); err != nil {
				return
			}
		}
		c.Close(status, "done")
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketChannel(t *testing.T) {
	gotConfig := make(chan string, 1)
	srv := launcherServer(t, []string{
		`{"time":0,"theta":0,"omega":0}`,
		`{"time":0.1,"theta":0.3,"omega":4}`,
		`{oops`,
		`{"time":0.2,"theta":0.8,"omega":6}`,
	}, websocket.StatusNormalClosure, gotConfig)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := Open(ctx, NewWebSocketDialer(wsURL(srv)), standard)
	require.NoError(t, err)
	defer ch.Close()

	assert.JSONEq(t, `{"motor_torque":1,"start_angle":0,"release_angle":45}`, <-gotConfig)

	var thetas []float64
	for {
		f, err := ch.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		thetas = append(thetas, *f.Theta)
	}
	assert.Equal(t, []float64{0, 0.3, 0.8}, thetas)
	assert.Equal(t, 1, ch.Dropped())
}

func TestWebSocketAbnormalClose(t *testing.T) {
	gotConfig := make(chan string, 1)
	srv := launcherServer(t, []string{`{"theta":0.1}`}, websocket.StatusInternalError, gotConfig)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := Open(ctx, NewWebSocketDialer(wsURL(srv)), standard)
	require.NoError(t, err)
	defer ch.Close()

	_, err = ch.Next(ctx)
	require.NoError(t, err)

	_, err = ch.Next(ctx)
	assert.True(t, errors.Is(err, ErrConnectionLost), "got %v", err)
}

func TestWebSocketDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := wsURL(srv)
	srv.Close()

	_, err := Open(context.Background(), NewWebSocketDialer(url), standard)
	assert.True(t, errors.Is(err, ErrConnectionFailure))
}
