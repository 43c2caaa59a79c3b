package config

import "sort"

var Presets = map[string]*Experiment{
	"gentle": {
		MotorTorque: 0.5, StartAngleDeg: 0, ReleaseAngleDeg: 30,
	},
	"standard": {
		MotorTorque: 1.0, StartAngleDeg: 0, ReleaseAngleDeg: 45,
	},
	"steep": {
		MotorTorque: 2.0, StartAngleDeg: -30, ReleaseAngleDeg: 70,
	},
	"reverse": {
		MotorTorque: 1.0, StartAngleDeg: 0, ReleaseAngleDeg: -45,
	},
}

func GetPreset(name string) *Experiment {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	exp := *p
	return &exp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
