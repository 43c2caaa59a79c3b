package session

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/san-kum/armview/internal/attachment"
	"github.com/san-kum/armview/internal/config"
	"github.com/san-kum/armview/internal/telemetry"
	"github.com/san-kum/armview/internal/viewsync"
)

// Options describe one run.
type Options struct {
	Dialer     telemetry.Dialer
	Experiment config.Experiment
	// Views may be nil; the run is then recorded without being displayed.
	Views      *viewsync.Sync
	FreeFlight FreeFlight
	OnRelease  attachment.Listener
	// OnDrop sees every malformed message skipped by the channel.
	OnDrop func(error)
}

// Run validates the experiment, opens a telemetry channel and processes
// frames one at a time until the stream ends.
//
// An invalid experiment returns an error wrapping config.ErrInvalid and a
// failed connection one wrapping telemetry.ErrConnectionFailure; in both
// cases no result is produced. When the connection drops mid-run, or ctx is
// canceled, the partial result is returned together with the error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Experiment.Validate(); err != nil {
		return nil, err
	}

	s := New(opts.Experiment, opts.Views, opts.FreeFlight)
	if opts.OnRelease != nil {
		s.OnRelease(opts.OnRelease)
	}

	var chOpts []telemetry.Option
	if opts.OnDrop != nil {
		chOpts = append(chOpts, telemetry.WithDropHandler(opts.OnDrop))
	}
	ch, err := telemetry.Open(ctx, opts.Dialer, opts.Experiment, chOpts...)
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	slog.Info("session: run started", "id", s.ID)

	var runErr error
	end := EndClosed
	for {
		f, err := ch.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
			case ctx.Err() != nil:
				end, runErr = EndCanceled, err
			default:
				end, runErr = EndLost, err
			}
			break
		}
		s.Step(f)
	}

	res := s.Result()
	res.End = end
	res.Dropped = ch.Dropped()
	res.Received = ch.Received()

	slog.Info("session: run ended",
		"id", res.ID,
		"reason", res.End.String(),
		"samples", len(res.Samples),
		"state", res.State.String(),
		"dropped", res.Dropped,
		"partial", res.Partial)

	return res, runErr
}
