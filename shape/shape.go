// Package shape holds the scene objects animated by the engine. Every object
// satisfies Transformable: it can be snapshotted, restored, and interpolated
// between two snapshots in place.
package shape

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrStateMismatch is returned when a snapshot is handed to an object of a
// different kind.
var ErrStateMismatch = errors.New("shape: state does not match object")

// State is an opaque snapshot produced by Transformable.Snapshot.
type State interface{}

// Transformable is the contract every animated object satisfies.
type Transformable interface {
	Snapshot() State
	Restore(s State) error
	Interpolate(start, end State, alpha float64) error
}

// Rotatable objects can be turned about a point.
type Rotatable interface {
	RotateAbout(center Vec, radians float64)
}

// Fader objects have an opacity.
type Fader interface {
	Opacity() float64
	SetOpacity(o float64)
}

// Mover objects can be placed at a point.
type Mover interface {
	MoveTo(p Vec)
	Position() Vec
}

// Wheeled objects roll on wheels of a fixed radius.
type Wheeled interface {
	WheelRadius() float64
	RotateWheels(radians float64)
}

// Saver objects remember a state taken by SaveState.
type Saver interface {
	SaveState()
	SavedState() (State, bool)
}

// Targeted objects carry a pending target state built with GenerateTarget.
type Targeted interface {
	TargetState() (State, bool)
}

// Drawable objects can be partially drawn, as when a curve is traced.
type Drawable interface {
	DrawnProportion() float64
	SetDrawnProportion(p float64)
}

// Element is the renderer-facing description of an object at one instant.
type Element struct {
	Name    string         `json:"name"`
	Kind    string         `json:"kind"`
	Points  []Vec          `json:"points"`
	Color   colorful.Color `json:"-"`
	Hex     string         `json:"color"`
	Opacity float64        `json:"opacity"`
	Label   string         `json:"label,omitempty"`
}

// Renderable objects describe themselves as elements.
type Renderable interface {
	Elements() []Element
}

type memo struct {
	saved    State
	hasSaved bool
}

func (m *memo) remember(s State) {
	m.saved = s
	m.hasSaved = true
}

func (m *memo) recall() (State, bool) {
	return m.saved, m.hasSaved
}

func mismatch(want string, got State) error {
	return fmt.Errorf("%w: want %s, got %T", ErrStateMismatch, want, got)
}

// blendColor blends in HCL, returning the endpoints unchanged at 0 and 1.
func blendColor(a, b colorful.Color, t float64) colorful.Color {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	if a == b {
		return a
	}
	return a.BlendHcl(b, t).Clamped()
}

func element(name, kind string, points []Vec, c colorful.Color, opacity float64) Element {
	return Element{
		Name:    name,
		Kind:    kind,
		Points:  points,
		Color:   c,
		Hex:     c.Clamped().Hex(),
		Opacity: opacity,
	}
}
