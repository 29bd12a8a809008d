package config

import "errors"

var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("config: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name that does not exist.
	ErrUnknownPreset = errors.New("config: unknown preset")

	ErrUnknownParam = errors.New("config: unknown parameter")
)
