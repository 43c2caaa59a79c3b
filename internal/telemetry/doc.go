// Package telemetry owns the streaming connection to the launcher for one
// experiment run.
//
// A [Channel] is opened with [Open], which dials a [Dialer], sends the
// experiment configuration as the single outbound message and then yields
// [Frame] values in arrival order through [Channel.Next]:
//
//	ch, err := telemetry.Open(ctx, telemetry.NewWebSocketDialer(url), exp)
//	if err != nil {
//		return err
//	}
//	defer ch.Close()
//	for {
//		f, err := ch.Next(ctx)
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		...
//	}
//
// Channels are not restartable. When the connection ends the channel is
// spent and a new run must call [Open] again.
//
// Transports: [WebSocketDialer] (default, ws://localhost:8000/ws),
// [SerialDialer] (JSON lines over a serial port) and [ReplayDialer]
// (JSON lines from a recorded file).
package telemetry
