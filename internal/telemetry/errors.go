package telemetry

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailure indicates the channel could not be established or
	// the configuration could not be sent.
	ErrConnectionFailure = errors.New("telemetry: connection failure")

	// ErrConnectionLost indicates the connection dropped mid-run.
	ErrConnectionLost = errors.New("telemetry: connection lost")

	// ErrMalformedFrame indicates a payload that could not be decoded.
	ErrMalformedFrame = errors.New("telemetry: malformed frame")

	// ErrChannelClosed is returned by a channel that has already ended.
	ErrChannelClosed = errors.New("telemetry: channel closed")
)

// FrameError wraps a decode failure with the position of the message in the
// stream.
type FrameError struct {
	Index   int
	Payload string
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("message %d: %v", e.Index, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
