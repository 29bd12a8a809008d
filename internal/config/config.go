package config

import (
	"fmt"
	"os"

	"github.com/san-kum/trails/internal/engine"
	"github.com/san-kum/trails/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 60
	DefaultSurfaceID = "canvas"
)

type Config struct {
	Friction   float64          `yaml:"friction"`
	Trails     int              `yaml:"trails"`
	Size       int              `yaml:"size"`
	Dampening  float64          `yaml:"dampening"`
	Tension    float64          `yaml:"tension"`
	SpringMin  float64          `yaml:"spring_min"`
	SpringMax  float64          `yaml:"spring_max"`
	LineWidth  float64          `yaml:"line_width"`
	Alpha      float64          `yaml:"alpha"`
	Saturation float64          `yaml:"saturation"`
	Lightness  float64          `yaml:"lightness"`
	Margin     int              `yaml:"margin"`
	Seed       int64            `yaml:"seed"`
	FPS        int              `yaml:"fps"`
	SurfaceID  string           `yaml:"surface_id"`
	Oscillator OscillatorConfig `yaml:"oscillator"`
}

type OscillatorConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Offset    float64 `yaml:"offset"`
}

func DefaultConfig() *Config {
	return &Config{
		Friction:   physics.DefaultFriction,
		Trails:     engine.DefaultTrails,
		Size:       physics.DefaultSize,
		Dampening:  physics.DefaultDampening,
		Tension:    physics.DefaultTension,
		SpringMin:  engine.DefaultSpringMin,
		SpringMax:  engine.DefaultSpringMax,
		LineWidth:  engine.DefaultLineWidth,
		Alpha:      engine.DefaultAlpha,
		Saturation: engine.DefaultSaturation,
		Lightness:  engine.DefaultLightness,
		Margin:     engine.DefaultMargin,
		FPS:        DefaultFPS,
		SurfaceID:  DefaultSurfaceID,
		Oscillator: OscillatorConfig{
			Amplitude: engine.DefaultHueAmplitude,
			Frequency: engine.DefaultHueFrequency,
			Offset:    engine.DefaultHueOffset,
		},
	}
}

// Load reads a yaml file on top of the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the ranges the integrator and renderer rely on.
func (c *Config) Validate() error {
	switch {
	case c.Friction <= 0 || c.Friction >= 1:
		return boundsErr("friction", c.Friction, "(0, 1)")
	case c.Tension <= 0 || c.Tension >= 1:
		return boundsErr("tension", c.Tension, "(0, 1)")
	case c.Dampening < 0:
		return boundsErr("dampening", c.Dampening, ">= 0")
	case c.Trails < 1:
		return boundsErr("trails", float64(c.Trails), ">= 1")
	case c.Size < 2:
		return boundsErr("size", float64(c.Size), ">= 2")
	case c.SpringMin <= 0 || c.SpringMax <= 0:
		return boundsErr("spring_min/spring_max", c.SpringMin, "> 0")
	case c.LineWidth <= 0:
		return boundsErr("line_width", c.LineWidth, "> 0")
	case c.Alpha <= 0 || c.Alpha > 1:
		return boundsErr("alpha", c.Alpha, "(0, 1]")
	case c.Margin < 0:
		return boundsErr("margin", float64(c.Margin), ">= 0")
	case c.FPS < 1:
		return boundsErr("fps", float64(c.FPS), ">= 1")
	case c.Oscillator.Frequency <= 0:
		return boundsErr("oscillator.frequency", c.Oscillator.Frequency, "> 0")
	}
	return nil
}

// Options projects the config onto the engine.
func (c *Config) Options() engine.Options {
	return engine.Options{
		Chain: physics.ChainParams{
			Friction:  c.Friction,
			Size:      c.Size,
			Dampening: c.Dampening,
			Tension:   c.Tension,
		},
		Trails:     c.Trails,
		SpringMin:  c.SpringMin,
		SpringMax:  c.SpringMax,
		LineWidth:  c.LineWidth,
		Alpha:      c.Alpha,
		Saturation: c.Saturation,
		Lightness:  c.Lightness,
		Margin:     c.Margin,
		Oscillator: physics.OscillatorOptions{
			Amplitude: c.Oscillator.Amplitude,
			Frequency: c.Oscillator.Frequency,
			Offset:    c.Oscillator.Offset,
		},
	}
}

func boundsErr(field string, v float64, want string) error {
	return fmt.Errorf("%w: %s=%g, want %s", ErrParameterBounds, field, v, want)
}
