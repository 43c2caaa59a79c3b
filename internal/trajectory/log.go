// Package trajectory holds the ordered ball samples of one run.
package trajectory

import "errors"

// ErrSealed is returned when appending after the ball has been released.
var ErrSealed = errors.New("trajectory: log sealed after release")

// Sample is the ball position at one telemetry frame, render frame, meters.
type Sample struct {
	Time float64
	X, Y float64
}

// Log is an append-only sequence of samples. It grows without bound for the
// lifetime of a run and is only ever cleared as a whole by Reset.
type Log struct {
	samples []Sample
	sealed  bool
}

func New() *Log {
	return &Log{samples: make([]Sample, 0, 256)}
}

// Append adds s after every sample already in the log.
func (l *Log) Append(s Sample) error {
	if l.sealed {
		return ErrSealed
	}
	l.samples = append(l.samples, s)
	return nil
}

// Seal stops further appends; called when the ball is released.
func (l *Log) Seal() { l.sealed = true }

func (l *Log) Sealed() bool { return l.sealed }

// Reset empties the log for a new run.
func (l *Log) Reset() {
	l.samples = l.samples[:0]
	l.sealed = false
}

func (l *Log) Len() int { return len(l.samples) }

// Samples returns a copy of the log contents.
func (l *Log) Samples() []Sample {
	out := make([]Sample, len(l.samples))
	copy(out, l.samples)
	return out
}
