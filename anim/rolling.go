package anim

import (
	"fmt"

	"github.com/matt-g-everett/derivanim/shape"
)

// Rolling translates a wheeled object while turning its wheels so they roll
// without slipping: the total turn is -distance/radius. The turn is part of
// the interpolated end state, so the wheel angle is a linear function of the
// displacement whatever the rate function does to time.
type Rolling struct {
	*Interpolation
	distance float64
	radians  float64
}

// Roll moves target so its position lands on to, rolling its wheels.
func Roll(target shape.Transformable, to shape.Vec, cfg Config) (*Rolling, error) {
	m, ok := target.(shape.Mover)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot move", ErrUnsupportedTarget, target)
	}
	w, ok := target.(shape.Wheeled)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no wheels", ErrUnsupportedTarget, target)
	}
	radius := w.WheelRadius()
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: wheel radius %g", ErrUnsupportedTarget, radius)
	}
	if cfg.Name == "" {
		cfg.Name = "roll"
	}

	r := new(Rolling)
	it, err := ApplyMethod(target, func() error {
		r.distance = to.Dist(m.Position())
		r.radians = -r.distance / radius
		m.MoveTo(to)
		w.RotateWheels(r.radians)
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	r.Interpolation = it
	return r, nil
}

// Distance is the straight-line displacement of the target.
func (r *Rolling) Distance() float64 { return r.distance }

// Radians is the total wheel turn.
func (r *Rolling) Radians() float64 { return r.radians }
