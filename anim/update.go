package anim

import (
	"fmt"

	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

// UpdateFromAlphaFunc calls fn with the target and the current alpha on
// every step.
func UpdateFromAlphaFunc[T any](target T, fn func(target T, alpha float64), cfg Config) (*Base, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil update function", ErrUnsupportedTarget)
	}
	b, err := newBase(cfg, rate.Smooth, "update_from_alpha")
	if err != nil {
		return nil, err
	}
	b.onUpdate = func(alpha float64) error {
		fn(target, alpha)
		return nil
	}
	return &b, nil
}

// UpdateFromFunc calls fn with the target on every step, regardless of
// alpha. It keeps dependent objects, such as tracking lines, in sync with
// something else that is moving.
func UpdateFromFunc[T any](target T, fn func(target T), cfg Config) (*Base, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil update function", ErrUnsupportedTarget)
	}
	b, err := newBase(cfg, rate.Linear, "update_from_func")
	if err != nil {
		return nil, err
	}
	b.onUpdate = func(float64) error {
		fn(target)
		return nil
	}
	return &b, nil
}

// ShowCreation traces a drawable target from nothing to fully drawn.
func ShowCreation(target shape.Transformable, cfg Config) (*Base, error) {
	d, ok := target.(shape.Drawable)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot be drawn", ErrUnsupportedTarget, target)
	}
	b, err := newBase(cfg, rate.Smooth, "show_creation")
	if err != nil {
		return nil, err
	}
	d.SetDrawnProportion(0)
	b.onUpdate = func(alpha float64) error {
		d.SetDrawnProportion(alpha)
		return nil
	}
	return &b, nil
}

// A Rotation turns its target about a fixed point by alpha times a total
// angle, measured from the state captured when it began.
type Rotation struct {
	Base
	target  shape.Transformable
	about   shape.Vec
	radians float64
	start   shape.State
	also    func(alpha float64)
}

// Rotating turns target about a point by radians. The default rate is linear.
func Rotating(target shape.Transformable, about shape.Vec, radians float64, cfg Config) (*Rotation, error) {
	rot, ok := target.(shape.Rotatable)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot rotate", ErrUnsupportedTarget, target)
	}
	base, err := newBase(cfg, rate.Linear, "rotating")
	if err != nil {
		return nil, err
	}
	r := &Rotation{Base: base, target: target, about: about, radians: radians}
	r.start = target.Snapshot()
	r.onBegin = func() error {
		r.start = target.Snapshot()
		return nil
	}
	r.onUpdate = func(alpha float64) error {
		if err := target.Restore(r.start); err != nil {
			return err
		}
		rot.RotateAbout(about, alpha*radians)
		if r.also != nil {
			r.also(alpha)
		}
		return nil
	}
	return r, nil
}

// Also runs fn after each turn with the same alpha. Every tick restores the
// state captured at Begin first, so other changes to the target go here.
func (r *Rotation) Also(fn func(alpha float64)) *Rotation {
	r.also = fn
	return r
}

// Radians is the total turn at alpha 1.
func (r *Rotation) Radians() float64 { return r.radians }
