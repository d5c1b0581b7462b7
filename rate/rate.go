// Package rate provides rate functions: pure mappings from normalised time to
// normalised progress used to time every animation.
package rate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when a squish interval is degenerate.
var ErrInvalidRange = errors.New("rate: invalid range")

// A Func maps elapsed-time fraction in [0,1] to an alpha. Values outside [0,1]
// are permitted so curves can overshoot.
type Func func(t float64) float64

// Linear is the identity rate function.
func Linear(t float64) float64 {
	return t
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SmoothWith returns a sigmoid ease with the given inflection, normalised so it
// runs exactly from 0 to 1.
func SmoothWith(inflection float64) Func {
	errOffset := sigmoid(-inflection / 2)
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return (sigmoid(inflection*(t-0.5)) - errOffset) / (1 - 2*errOffset)
	}
}

var smooth10 = SmoothWith(10)

// Smooth is the default ease in and out.
func Smooth(t float64) float64 {
	return smooth10(t)
}

// RushInto eases in and arrives at full speed.
func RushInto(t float64) float64 {
	return 2 * Smooth(t/2)
}

// RushFrom leaves at full speed and eases out.
func RushFrom(t float64) float64 {
	return 2*Smooth(t/2+0.5) - 1
}

// SlowInto decelerates along a quarter circle.
func SlowInto(t float64) float64 {
	return math.Sqrt(1 - (1-t)*(1-t))
}

// DoubleSmooth runs Smooth twice, once per half.
func DoubleSmooth(t float64) float64 {
	if t < 0.5 {
		return 0.5 * Smooth(2*t)
	}
	return 0.5 * (1 + Smooth(2*t-1))
}

// ThereAndBackWith runs f forward over [0,0.5] and mirrored back over [0.5,1].
func ThereAndBackWith(f Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return f(2 * t)
		}
		return f(2 * (1 - t))
	}
}

// ThereAndBack is Smooth out and back.
func ThereAndBack(t float64) float64 {
	if t < 0.5 {
		return Smooth(2 * t)
	}
	return Smooth(2 * (1 - t))
}

// Squish confines f to [t0,t1]. Outside the interval the result is held at
// f(0) before and f(1) after.
func Squish(f Func, t0, t1 float64) (Func, error) {
	if t0 == t1 || t1 < t0 {
		return nil, fmt.Errorf("%w: squish [%g,%g]", ErrInvalidRange, t0, t1)
	}
	if f == nil {
		f = Linear
	}
	return func(t float64) float64 {
		if t < t0 {
			return f(0)
		}
		if t > t1 {
			return f(1)
		}
		return f((t - t0) / (t1 - t0))
	}, nil
}

// MustSquish is like Squish but panics on a degenerate interval. It is meant
// for package-level curves with constant bounds.
func MustSquish(f Func, t0, t1 float64) Func {
	g, err := Squish(f, t0, t1)
	if err != nil {
		panic(err)
	}
	return g
}
