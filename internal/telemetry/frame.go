package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/san-kum/armview/internal/config"
)

// Frame is one telemetry message. Fields are nil when the server omitted
// them.
type Frame struct {
	Time  *float64 `json:"time,omitempty"`  // seconds since motor start
	Theta *float64 `json:"theta,omitempty"` // arm angle, radians, physics frame
	Omega *float64 `json:"omega,omitempty"` // rad/s
}

func (f Frame) HasTime() bool  { return f.Time != nil }
func (f Frame) HasTheta() bool { return f.Theta != nil }
func (f Frame) HasOmega() bool { return f.Omega != nil }

// Empty reports whether the frame carries none of the known fields.
func (f Frame) Empty() bool {
	return f.Time == nil && f.Theta == nil && f.Omega == nil
}

// Float returns a pointer to v, for building frames in code.
func Float(v float64) *float64 { return &v }

// Decode parses one inbound message. Only JSON objects are accepted;
// unknown keys are ignored.
func Decode(payload []byte) (Frame, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Frame{}, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedFrame)
	}
	var f Frame
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return f, nil
}

// ConfigMessage is the wire form of the experiment configuration.
type ConfigMessage struct {
	MotorTorque  float64 `json:"motor_torque"`
	StartAngle   float64 `json:"start_angle"`
	ReleaseAngle float64 `json:"release_angle"`
}

// EncodeConfig renders the single outbound message of a run.
func EncodeConfig(exp config.Experiment) ([]byte, error) {
	return json.Marshal(ConfigMessage{
		MotorTorque:  exp.MotorTorque,
		StartAngle:   exp.StartAngleDeg,
		ReleaseAngle: exp.ReleaseAngleDeg,
	})
}
