package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint     = "ws://localhost:8000/ws"
	DefaultTransport    = "ws"
	DefaultBaud         = 115200
	DefaultTorque       = 1.0
	DefaultStartAngle   = 0.0
	DefaultReleaseAngle = 45.0
	DefaultOutputDir    = ".armview"
	DefaultTheme        = "cyberpunk"
	DefaultFrameRate    = 30

	// MaxAngle bounds both configured angles in degrees.
	MaxAngle = 360.0
)

// ErrInvalid is returned by Validate for experiment parameters that cannot
// start a run.
var ErrInvalid = errors.New("config: invalid experiment parameters")

// Experiment is the configuration sent to the launcher once per run.
type Experiment struct {
	MotorTorque     float64 `yaml:"motor_torque"`
	StartAngleDeg   float64 `yaml:"start_angle"`
	ReleaseAngleDeg float64 `yaml:"release_angle"`
}

type ClientConfig struct {
	Transport  string `yaml:"transport"`
	Endpoint   string `yaml:"endpoint"`
	SerialPort string `yaml:"serial_port"`
	Baud       int    `yaml:"baud"`
	Record     string `yaml:"record"`
}

type ViewConfig struct {
	Theme     string `yaml:"theme"`
	FrameRate int    `yaml:"fps"`
	Headless  bool   `yaml:"headless"`
	Plain     bool   `yaml:"plain"`
}

type ExportConfig struct {
	OutputDir string   `yaml:"output_dir"`
	Formats   []string `yaml:"formats,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type Config struct {
	Experiment Experiment   `yaml:"experiment"`
	Client     ClientConfig `yaml:"client"`
	View       ViewConfig   `yaml:"view"`
	Export     ExportConfig `yaml:"export"`
	Log        LogConfig    `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Experiment: Experiment{
			MotorTorque:     DefaultTorque,
			StartAngleDeg:   DefaultStartAngle,
			ReleaseAngleDeg: DefaultReleaseAngle,
		},
		Client: ClientConfig{
			Transport: DefaultTransport,
			Endpoint:  DefaultEndpoint,
			Baud:      DefaultBaud,
		},
		View: ViewConfig{
			Theme:     DefaultTheme,
			FrameRate: DefaultFrameRate,
		},
		Export: ExportConfig{
			OutputDir: DefaultOutputDir,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Merge(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the keys present in the file at path onto cfg.
func Merge(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports whether the experiment can be sent to the launcher.
// The returned error wraps ErrInvalid.
func (e Experiment) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"motor_torque", e.MotorTorque},
		{"start_angle", e.StartAngleDeg},
		{"release_angle", e.ReleaseAngleDeg},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalid, f.name)
		}
	}
	if e.MotorTorque <= 0 {
		return fmt.Errorf("%w: motor_torque must be positive, got %g", ErrInvalid, e.MotorTorque)
	}
	if math.Abs(e.StartAngleDeg) > MaxAngle {
		return fmt.Errorf("%w: start_angle %g outside [-%g, %g]", ErrInvalid, e.StartAngleDeg, MaxAngle, MaxAngle)
	}
	if math.Abs(e.ReleaseAngleDeg) > MaxAngle {
		return fmt.Errorf("%w: release_angle %g outside [-%g, %g]", ErrInvalid, e.ReleaseAngleDeg, MaxAngle, MaxAngle)
	}
	if e.ReleaseAngleDeg == e.StartAngleDeg {
		return fmt.Errorf("%w: release_angle must differ from start_angle", ErrInvalid)
	}
	return nil
}

// Validate checks the experiment and the client settings needed to open a
// channel.
func (c *Config) Validate() error {
	if err := c.Experiment.Validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.Client.Transport) {
	case "ws", "websocket":
		if c.Client.Endpoint == "" {
			return fmt.Errorf("config: endpoint is required for websocket transport")
		}
	case "serial":
		if c.Client.SerialPort == "" {
			return fmt.Errorf("config: serial_port is required for serial transport")
		}
		if c.Client.Baud <= 0 {
			return fmt.Errorf("config: baud must be positive, got %d", c.Client.Baud)
		}
	default:
		return fmt.Errorf("config: unknown transport %q", c.Client.Transport)
	}
	if c.View.FrameRate <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.View.FrameRate)
	}
	return nil
}
