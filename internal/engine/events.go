package engine

import (
	"fmt"

	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/surface"
)

// Event is a host input event consumed by Manager.Dispatch.
type Event interface {
	event()
}

// PointerMove reports the pointer at Pos in client coordinates.
type PointerMove struct {
	Pos physics.Vec2
}

// TouchStart reports that a touch began; Touches lists every active point.
type TouchStart struct {
	Touches []physics.Vec2
}

// TouchMove reports active touch points after movement.
type TouchMove struct {
	Touches []physics.Vec2
}

// Resize reports the new viewport size.
type Resize struct {
	Viewport surface.Size
}

// OrientationChange is handled like Resize.
type OrientationChange struct {
	Viewport surface.Size
}

type Focus struct{}

type Blur struct{}

func (PointerMove) event()       {}
func (TouchStart) event()        {}
func (TouchMove) event()         {}
func (Resize) event()            {}
func (OrientationChange) event() {}
func (Focus) event()             {}
func (Blur) event()              {}

// StrokeState tracks whether a stroke has begun since the last bind.
type StrokeState int

const (
	// Idle waits for the first movement; it spawns a new line batch.
	Idle StrokeState = iota
	// Stroking moves the anchor only.
	Stroking
)

func (s StrokeState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stroking:
		return "stroking"
	default:
		return fmt.Sprintf("StrokeState(%d)", int(s))
	}
}
