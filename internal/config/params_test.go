package config

import (
	"errors"
	"testing"
)

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.SetParam("friction", 0.3); err != nil {
		t.Fatalf("set friction: %v", err)
	}
	if cfg.Friction != 0.3 {
		t.Errorf("friction = %v, want 0.3", cfg.Friction)
	}
	v, err := cfg.GetParam("friction")
	if err != nil || v != 0.3 {
		t.Errorf("GetParam = %v, %v", v, err)
	}
	if cfg.Options().Chain.Friction != 0.3 {
		t.Errorf("options did not pick up friction")
	}
}

func TestSetParamRejects(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.SetParam("gravity", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if _, err := cfg.GetParam("gravity"); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	if err := cfg.SetParam("tension", 1.5); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if cfg.Tension != 0.99 {
		t.Errorf("tension changed to %v after a rejected set", cfg.Tension)
	}
}

func TestParamNames(t *testing.T) {
	names := ParamNames()
	if len(names) != len(params) {
		t.Fatalf("got %d names", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
