package config

import "github.com/seastate/currentsim/internal/gmprocess"

// Presets are ready-made sea states for the initial process models.
var Presets = map[string]*Config{
	"still": {
		Velocity: gmprocess.Model{Mean: 0, Min: 0, Max: 0, NoiseAmp: 0, Mu: 0},
		Angle:    gmprocess.Model{Mean: 0, Min: 0, Max: 0, NoiseAmp: 0, Mu: 0},
	},
	"calm": {
		Velocity: gmprocess.Model{Mean: 0.1, Min: 0.05, Max: 0.15, NoiseAmp: 0.005, Mu: 0.05},
		Angle:    gmprocess.Model{Mean: 0, Min: -0.1745, Max: 0.1745, NoiseAmp: 0.02, Mu: 0.1},
	},
	"moderate": {
		Velocity: gmprocess.Model{Mean: 0.6, Min: 0.4, Max: 0.8, NoiseAmp: 0.02, Mu: 0.05},
		Angle:    gmprocess.Model{Mean: 0, Min: -0.35, Max: 0.35, NoiseAmp: 0.05, Mu: 0.1},
	},
	"strong": {
		Velocity: gmprocess.Model{Mean: 1.5, Min: 1.0, Max: 2.0, NoiseAmp: 0.05, Mu: 0.03},
		Angle:    gmprocess.Model{Mean: 0, Min: -0.7, Max: 0.7, NoiseAmp: 0.1, Mu: 0.08},
	},
}

// GetPreset returns the named preset merged over the defaults, or nil when
// the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Velocity = p.Velocity
	cfg.Angle = p.Angle
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
