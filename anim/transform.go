package anim

import (
	"fmt"

	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

type prepareFunc func() (start, end shape.State, err error)

// An Interpolation moves a target between a start and an end snapshot. The
// snapshots are interpolated directly; whatever produced the end state is
// never re-run while the animation plays.
type Interpolation struct {
	Base
	target     shape.Transformable
	start, end shape.State
}

func newInterpolation(target shape.Transformable, cfg Config, name string, prepare prepareFunc, recapture bool) (*Interpolation, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ErrUnsupportedTarget)
	}
	base, err := newBase(cfg, rate.Smooth, name)
	if err != nil {
		return nil, err
	}
	it := &Interpolation{Base: base, target: target}
	if it.start, it.end, err = prepare(); err != nil {
		return nil, err
	}
	if recapture {
		it.onBegin = func() error {
			start, end, err := prepare()
			if err != nil {
				return err
			}
			it.start, it.end = start, end
			return nil
		}
	}
	it.onUpdate = it.update
	return it, nil
}

func (it *Interpolation) update(alpha float64) error {
	switch alpha {
	case 0:
		return it.target.Restore(it.start)
	case 1:
		return it.target.Restore(it.end)
	}
	return it.target.Interpolate(it.start, it.end, alpha)
}

// Start returns the captured starting snapshot.
func (it *Interpolation) Start() shape.State { return it.start }

// End returns the captured ending snapshot.
func (it *Interpolation) End() shape.State { return it.end }

// Target returns the animated object.
func (it *Interpolation) Target() shape.Transformable { return it.target }

// checkApplies makes sure end is a state target can take, leaving the target
// unchanged.
func checkApplies(target shape.Transformable, end shape.State) (shape.State, error) {
	start := target.Snapshot()
	if err := target.Restore(end); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTarget, err)
	}
	if err := target.Restore(start); err != nil {
		return nil, err
	}
	return start, nil
}

// Transform animates target from its state when the animation begins to end.
func Transform(target shape.Transformable, end shape.State, cfg Config) (*Interpolation, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ErrUnsupportedTarget)
	}
	return newInterpolation(target, cfg, "transform", func() (shape.State, shape.State, error) {
		start, err := checkApplies(target, end)
		return start, end, err
	}, true)
}

// TransformTo animates target into the current state of other.
func TransformTo(target, other shape.Transformable, cfg Config) (*Interpolation, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil transform destination", ErrUnsupportedTarget)
	}
	return Transform(target, other.Snapshot(), cfg)
}

// ApplyMethod captures the state produced by calling method on target and
// animates towards it. method runs when the animation is created and again
// when it begins; never while it plays.
func ApplyMethod(target shape.Transformable, method func() error, cfg Config) (*Interpolation, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ErrUnsupportedTarget)
	}
	if method == nil {
		return nil, fmt.Errorf("%w: nil method", ErrUnsupportedTarget)
	}
	return newInterpolation(target, cfg, "apply_method", func() (shape.State, shape.State, error) {
		start := target.Snapshot()
		if err := method(); err != nil {
			target.Restore(start)
			return nil, nil, err
		}
		end := target.Snapshot()
		if err := target.Restore(start); err != nil {
			return nil, nil, err
		}
		return start, end, nil
	}, true)
}

// MoveToTarget animates an object towards the target it generated.
func MoveToTarget(target shape.Transformable, cfg Config) (*Interpolation, error) {
	t, ok := target.(shape.Targeted)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no target", ErrUnsupportedTarget, target)
	}
	return newInterpolation(target, cfg, "move_to_target", func() (shape.State, shape.State, error) {
		end, ok := t.TargetState()
		if !ok {
			return nil, nil, fmt.Errorf("%w: target not generated", ErrUnsupportedTarget)
		}
		start, err := checkApplies(target, end)
		return start, end, err
	}, true)
}

// Restore animates an object back to the state it saved.
func Restore(target shape.Transformable, cfg Config) (*Interpolation, error) {
	s, ok := target.(shape.Saver)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot save state", ErrUnsupportedTarget, target)
	}
	return newInterpolation(target, cfg, "restore", func() (shape.State, shape.State, error) {
		end, ok := s.SavedState()
		if !ok {
			return nil, nil, fmt.Errorf("%w: no saved state", ErrUnsupportedTarget)
		}
		start, err := checkApplies(target, end)
		return start, end, err
	}, true)
}

// FadeOut animates the target's opacity to zero.
func FadeOut(target shape.Transformable, cfg Config) (*Interpolation, error) {
	f, ok := target.(shape.Fader)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot fade", ErrUnsupportedTarget, target)
	}
	if cfg.Name == "" {
		cfg.Name = "fade_out"
	}
	return ApplyMethod(target, func() error {
		f.SetOpacity(0)
		return nil
	}, cfg)
}

// FadeIn animates the target from transparent to its current opacity. The
// target is left transparent until the animation plays.
func FadeIn(target shape.Transformable, cfg Config) (*Interpolation, error) {
	f, ok := target.(shape.Fader)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot fade", ErrUnsupportedTarget, target)
	}
	return newInterpolation(target, cfg, "fade_in", func() (shape.State, shape.State, error) {
		end := target.Snapshot()
		f.SetOpacity(0)
		return target.Snapshot(), end, nil
	}, false)
}
