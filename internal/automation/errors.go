package automation

import "errors"

var (
	ErrEmptyScenario = errors.New("scenario has no frames")
	ErrUnknownEvent  = errors.New("unknown scenario event")
	ErrStepOrder     = errors.New("scenario steps out of order")
	ErrNotBound      = errors.New("renderer is not bound to a surface")
)
