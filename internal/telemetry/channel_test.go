package telemetry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/armview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var standard = config.Experiment{MotorTorque: 1.0, StartAngleDeg: 0, ReleaseAngleDeg: 45}

func TestOpenSendsConfigOnce(t *testing.T) {
	conn := &fakeConn{}
	ch, err := Open(context.Background(), dialFake(conn), standard)
	require.NoError(t, err)
	defer ch.Close()

	require.Len(t, conn.sent, 1)
	assert.JSONEq(t, `{"motor_torque":1,"start_angle":0,"release_angle":45}`, string(conn.sent[0]))
}

func TestOpenDialFailure(t *testing.T) {
	d := DialerFunc(func(ctx context.Context) (Conn, error) {
		return nil, errors.New("connection refused")
	})
	_, err := Open(context.Background(), d, standard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionFailure))
}

type failingSend struct{ fakeConn }

func (f *failingSend) Send(ctx context.Context, payload []byte) error {
	return errors.New("broken pipe")
}

func TestOpenSendFailureClosesConn(t *testing.T) {
	conn := &failingSend{}
	d := DialerFunc(func(ctx context.Context) (Conn, error) { return conn, nil })
	_, err := Open(context.Background(), d, standard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionFailure))
	assert.True(t, conn.closed)
}

func TestNextPreservesOrderAndSkipsMalformed(t *testing.T) {
	conn := &fakeConn{inbound: lines(
		`{"time":0,"theta":0}`,
		`garbage`,
		`{"time":0.1,"theta":0.3}`,
		`[1]`,
		`{"time":0.2,"theta":0.8}`,
	)}
	var drops []error
	ch, err := Open(context.Background(), dialFake(conn), standard, WithDropHandler(func(err error) {
		drops = append(drops, err)
	}))
	require.NoError(t, err)

	var thetas []float64
	for {
		f, err := ch.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		thetas = append(thetas, *f.Theta)
	}

	assert.Equal(t, []float64{0, 0.3, 0.8}, thetas)
	assert.Equal(t, 5, ch.Received())
	assert.Equal(t, 2, ch.Dropped())
	require.Len(t, drops, 2)

	var ferr *FrameError
	require.True(t, errors.As(drops[0], &ferr))
	assert.Equal(t, 2, ferr.Index)
	assert.True(t, errors.Is(drops[1], ErrMalformedFrame))
}

func TestNextDeliversPartialFrames(t *testing.T) {
	conn := &fakeConn{inbound: lines(`{"time":1.0}`)}
	ch, err := Open(context.Background(), dialFake(conn), standard)
	require.NoError(t, err)

	f, err := ch.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, f.HasTheta())
	assert.Equal(t, 1.0, *f.Time)
}

func TestNextConnectionLost(t *testing.T) {
	conn := &fakeConn{inbound: lines(`{"theta":0}`), endErr: errors.New("reset by peer")}
	ch, err := Open(context.Background(), dialFake(conn), standard)
	require.NoError(t, err)

	_, err = ch.Next(context.Background())
	require.NoError(t, err)

	_, err = ch.Next(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionLost))
	assert.True(t, ch.Done())
}

func TestChannelIsNotRestartable(t *testing.T) {
	conn := &fakeConn{}
	ch, err := Open(context.Background(), dialFake(conn), standard)
	require.NoError(t, err)

	_, err = ch.Next(context.Background())
	assert.True(t, errors.Is(err, io.EOF))

	conn.inbound = lines(`{"theta":1}`)
	_, err = ch.Next(context.Background())
	assert.True(t, errors.Is(err, ErrChannelClosed))

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())
	assert.True(t, conn.closed)
}

func TestNextCanceled(t *testing.T) {
	conn := &fakeConn{inbound: lines(`{"theta":1}`)}
	ch, err := Open(context.Background(), dialFake(conn), standard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ch.Next(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRecordAndReplay(t *testing.T) {
	var buf bytes.Buffer
	conn := &fakeConn{inbound: lines(
		`{"time":0,"theta":0}`,
		"{\n\"time\":0.1,\n\"theta\":0.3}",
		`not json`,
	)}
	rec := NewRecordingDialer(dialFake(conn), &buf)

	ch, err := Open(context.Background(), rec, standard)
	require.NoError(t, err)
	for {
		if _, err := ch.Next(context.Background()); err != nil {
			break
		}
	}
	ch.Close()

	path := filepath.Join(t.TempDir(), "run.jsonl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	replay, err := Open(context.Background(), NewReplayDialer(path, 0), standard)
	require.NoError(t, err)
	defer replay.Close()

	var times []float64
	for {
		f, err := replay.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		times = append(times, *f.Time)
	}
	assert.Equal(t, []float64{0, 0.1}, times)
	assert.Equal(t, 1, replay.Dropped())
}

func TestReplayMissingFile(t *testing.T) {
	_, err := Open(context.Background(), NewReplayDialer("/nonexistent/run.jsonl", 0), standard)
	assert.True(t, errors.Is(err, ErrConnectionFailure))
}
