package config

import (
	"fmt"
	"sort"
)

// Presets are named overrides applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"silk": func(c *Config) {
		c.Trails = 120
		c.Size = 60
		c.Friction = 0.45
		c.LineWidth = 6
		c.Alpha = 0.02
	},
	"comet": func(c *Config) {
		c.Trails = 40
		c.Size = 30
		c.Tension = 0.97
		c.LineWidth = 14
		c.Alpha = 0.04
		c.Oscillator.Frequency = 0.004
	},
	"storm": func(c *Config) {
		c.Trails = 100
		c.Friction = 0.6
		c.Dampening = 0.05
		c.SpringMin = 0.35
		c.SpringMax = 0.5
		c.Oscillator.Amplitude = 180
		c.Oscillator.Offset = 180
		c.Oscillator.Frequency = 0.01
	},
}

// GetPreset returns a fresh config with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
