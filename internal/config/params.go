package config

import (
	"fmt"
	"sort"
)

// params maps the tunable chain and render parameters to their fields.
var params = map[string]func(*Config) *float64{
	"friction":   func(c *Config) *float64 { return &c.Friction },
	"dampening":  func(c *Config) *float64 { return &c.Dampening },
	"tension":    func(c *Config) *float64 { return &c.Tension },
	"spring_min": func(c *Config) *float64 { return &c.SpringMin },
	"spring_max": func(c *Config) *float64 { return &c.SpringMax },
	"line_width": func(c *Config) *float64 { return &c.LineWidth },
	"alpha":      func(c *Config) *float64 { return &c.Alpha },
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) GetParam(name string) (float64, error) {
	field, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return *field(c), nil
}

// SetParam sets a named parameter and revalidates. On error the config is
// left unchanged.
func (c *Config) SetParam(name string, value float64) error {
	field, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, ParamNames())
	}
	p := field(c)
	old := *p
	*p = value
	if err := c.Validate(); err != nil {
		*p = old
		return err
	}
	return nil
}
