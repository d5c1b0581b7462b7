// Package anim describes continuous, time-parameterised mutation of scene
// objects and composes such mutations sequentially and in parallel.
//
// An Animation is stepped with the time elapsed since it began. It maps that
// time through its rate function to an alpha and mutates its target. Once the
// elapsed time reaches the duration the final alpha is applied exactly once
// and further steps are no-ops.
package anim

import (
	"errors"
	"fmt"
	"math"

	"github.com/matt-g-everett/derivanim/rate"
)

var (
	// ErrInvalidDuration is returned for a non-positive duration.
	ErrInvalidDuration = errors.New("anim: invalid duration")
	// ErrUnsupportedTarget is returned when a target lacks a capability the
	// animation needs.
	ErrUnsupportedTarget = errors.New("anim: unsupported target")
)

// An Animation is a time-parameterised mutation.
type Animation interface {
	Name() string
	// Duration is the run time in seconds.
	Duration() float64
	// Begin captures starting state. Step calls it on first use; compositions
	// call it when the animation becomes active.
	Begin() error
	// Step applies the state for the given elapsed time and reports whether
	// the animation has finished.
	Step(elapsed float64) bool
	Finished() bool
	// Err returns the first error raised while stepping.
	Err() error
}

// Retimable animations accept a run time and rate function from the play
// call that schedules them.
type Retimable interface {
	SetDuration(d float64) error
	SetRate(f rate.Func)
}

// Config holds the timing options shared by every animation.
type Config struct {
	// Name labels the animation in logs.
	Name string
	// Duration in seconds. Must be positive.
	Duration float64
	// Rate maps elapsed fraction to alpha. Nil selects the animation's
	// default, rate.Smooth for most leaves and rate.Linear for compositions.
	Rate rate.Func
}

// Seconds is shorthand for a Config with only a duration.
func Seconds(d float64) Config {
	return Config{Duration: d}
}

func validDuration(d float64) error {
	if !(d > 0) || math.IsInf(d, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidDuration, d)
	}
	return nil
}

// Base implements the timing shared by every leaf animation. The mutation
// itself is supplied as callbacks.
type Base struct {
	name     string
	duration float64
	rate     rate.Func
	alpha    float64
	begun    bool
	done     bool
	err      error

	onBegin  func() error
	onUpdate func(alpha float64) error
}

func newBase(cfg Config, defaultRate rate.Func, defaultName string) (Base, error) {
	if err := validDuration(cfg.Duration); err != nil {
		return Base{}, err
	}
	b := Base{name: cfg.Name, duration: cfg.Duration, rate: cfg.Rate}
	if b.rate == nil {
		b.rate = defaultRate
	}
	if b.name == "" {
		b.name = defaultName
	}
	return b, nil
}

// New creates an animation that calls update with each alpha.
func New(cfg Config, update func(alpha float64) error) (*Base, error) {
	b, err := newBase(cfg, rate.Smooth, "animation")
	if err != nil {
		return nil, err
	}
	b.onUpdate = update
	return &b, nil
}

// Wait is an animation that changes nothing for d seconds.
func Wait(d float64) (*Base, error) {
	return New(Config{Name: "wait", Duration: d, Rate: rate.Linear}, nil)
}

func (a *Base) Name() string { return a.name }
func (a *Base) Duration() float64 { return a.duration }
func (a *Base) Finished() bool { return a.done }
func (a *Base) Err() error { return a.err }

// Alpha is the most recently applied alpha.
func (a *Base) Alpha() float64 { return a.alpha }

// SetDuration implements Retimable.
func (a *Base) SetDuration(d float64) error {
	if err := validDuration(d); err != nil {
		return err
	}
	a.duration = d
	return nil
}

// SetRate implements Retimable. A nil f is ignored.
func (a *Base) SetRate(f rate.Func) {
	if f != nil {
		a.rate = f
	}
}

// Begin implements Animation.
func (a *Base) Begin() error {
	a.begun = true
	if a.onBegin == nil {
		return nil
	}
	if err := a.onBegin(); err != nil {
		a.fail(err)
		return err
	}
	return nil
}

// Step implements Animation.
func (a *Base) Step(elapsed float64) bool {
	if a.done {
		return true
	}
	if !a.begun {
		a.Begin()
	}

	finished := elapsed >= a.duration
	t := elapsed / a.duration
	switch {
	case finished:
		t = 1
	case t < 0:
		t = 0
	}
	a.alpha = a.rate(t)
	if a.onUpdate != nil {
		if err := a.onUpdate(a.alpha); err != nil {
			a.fail(err)
		}
	}
	a.done = finished
	return a.done
}

func (a *Base) fail(err error) {
	if a.err == nil {
		a.err = fmt.Errorf("%s: %w", a.name, err)
	}
}
