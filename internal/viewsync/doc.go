// Package viewsync fans accepted ball samples out to the views of a run.
//
// Three chart sinks receive one point per sample:
//
//   - trajectory: (x, y), insertion order significant
//   - x over time: (time, x)
//   - y over time: (time, y)
//
// Both time series carry the same time label. After N calls to
// [Sync.Push] every chart sink holds exactly N points and the i-th point of
// each came from the same telemetry frame. Sync keeps no buffer: a sample is
// delivered to every sink before Push returns.
package viewsync
