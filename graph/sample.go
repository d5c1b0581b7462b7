// Package graph samples scalar functions of time into plotted curves, derives
// companion curves by finite differences and maps data space to drawing space.
package graph

import (
	"fmt"
	"math"
	"sort"
)

// A Function is a scalar function with a declared closed domain.
type Function struct {
	F        func(t float64) float64
	Min, Max float64
}

// Func declares f on [min, max].
func Func(f func(float64) float64, min, max float64) Function {
	return Function{F: f, Min: min, Max: max}
}

// Unbounded declares f on the whole real line.
func Unbounded(f func(float64) float64) Function {
	return Function{F: f, Min: math.Inf(-1), Max: math.Inf(1)}
}

// Eval evaluates the function, failing with a DomainError outside its domain
// or when the value is not finite.
func (fn Function) Eval(t float64) (float64, error) {
	if math.IsNaN(t) || t < fn.Min || t > fn.Max {
		return 0, &DomainError{Input: t, Min: fn.Min, Max: fn.Max}
	}
	v := fn.F(t)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &DomainError{Input: t, Min: fn.Min, Max: fn.Max, Reason: fmt.Sprintf("value %g", v)}
	}
	return v, nil
}

// Point is one (t, f(t)) sample in data space.
type Point struct {
	T float64 `json:"t"`
	V float64 `json:"v"`
}

// Samples is an ordered run of samples with increasing T.
type Samples []Point

// Sample evaluates fn at n points uniformly spaced over [tMin, tMax]. The
// endpoints are evaluated at exactly tMin and tMax.
func Sample(fn Function, tMin, tMax float64, n int) (Samples, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrSampleCount, n)
	}
	if !(tMax > tMin) {
		return nil, &DomainError{Input: tMax, Min: tMin, Max: tMax, Reason: "empty sampling range"}
	}
	out := make(Samples, n)
	step := (tMax - tMin) / float64(n-1)
	for i := 0; i < n; i++ {
		t := tMin + float64(i)*step
		if i == n-1 {
			t = tMax
		}
		v, err := fn.Eval(t)
		if err != nil {
			return nil, err
		}
		out[i] = Point{T: t, V: v}
	}
	return out, nil
}

// Times returns the sample abscissae.
func (s Samples) Times() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.T
	}
	return out
}

// At linearly interpolates between samples. t outside the sampled range is a
// DomainError.
func (s Samples) At(t float64) (float64, error) {
	n := len(s)
	if n == 0 || t < s[0].T || t > s[n-1].T || math.IsNaN(t) {
		lo, hi := math.NaN(), math.NaN()
		if n > 0 {
			lo, hi = s[0].T, s[n-1].T
		}
		return 0, &DomainError{Input: t, Min: lo, Max: hi}
	}
	i := sort.Search(n, func(i int) bool { return s[i].T >= t })
	if s[i].T == t {
		return s[i].V, nil
	}
	a, b := s[i-1], s[i]
	frac := (t - a.T) / (b.T - a.T)
	return a.V*(1-frac) + b.V*frac, nil
}

// MaxDeviation is the largest gap between the piecewise-linear samples and
// fn, probed at probes evenly spaced points across the sampled range.
func (s Samples) MaxDeviation(fn Function, probes int) (float64, error) {
	if len(s) < 2 || probes < 2 {
		return 0, fmt.Errorf("%w: deviation needs at least 2 samples and probes", ErrSampleCount)
	}
	worst := 0.0
	tMin, tMax := s[0].T, s[len(s)-1].T
	for i := 0; i < probes; i++ {
		t := tMin + (tMax-tMin)*float64(i)/float64(probes-1)
		if i == probes-1 {
			t = tMax
		}
		approx, err := s.At(t)
		if err != nil {
			return 0, err
		}
		exact, err := fn.Eval(t)
		if err != nil {
			return 0, err
		}
		worst = math.Max(worst, math.Abs(approx-exact))
	}
	return worst, nil
}

// Derivative returns the forward difference g(t) = (f(t+dt) - f(t)) / dt.
// dt is used as given; it is never refined towards a limit. g is declared on
// [Min, Max-dt] so f is never evaluated outside its own domain; asking for g
// past that is a DomainError.
func Derivative(fn Function, dt float64) (Function, error) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return Function{}, fmt.Errorf("%w: %g", ErrInvalidStep, dt)
	}
	hi := fn.Max - dt
	if !(hi >= fn.Min) {
		return Function{}, fmt.Errorf("%w: %g is wider than the domain [%g, %g]", ErrInvalidStep, dt, fn.Min, fn.Max)
	}
	return Function{
		F: func(t float64) float64 {
			if t > hi {
				return math.NaN()
			}
			a, err := fn.Eval(t)
			if err != nil {
				return math.NaN()
			}
			// t+dt may land an ulp past Max.
			b, err := fn.Eval(math.Min(t+dt, fn.Max))
			if err != nil {
				return math.NaN()
			}
			return (b - a) / dt
		},
		Min: fn.Min,
		Max: hi,
	}, nil
}

// DefaultTolerance is the relative deviation CheckStep tolerates.
const DefaultTolerance = 0.05

// CheckStep compares the forward difference with step dt against the one
// with step dt/2 at each t. Points where they disagree by more than
// tolerance, relative to the refined estimate or 1 whichever is larger, are
// reported. Times outside the coarse derivative's domain are skipped.
func CheckStep(fn Function, dt float64, ts []float64, tolerance float64) ([]ConvergenceWarning, error) {
	coarse, err := Derivative(fn, dt)
	if err != nil {
		return nil, err
	}
	fine, err := Derivative(fn, dt/2)
	if err != nil {
		return nil, err
	}
	var out []ConvergenceWarning
	for _, t := range ts {
		e, err := coarse.Eval(t)
		if err != nil {
			continue
		}
		r, err := fine.Eval(t)
		if err != nil {
			continue
		}
		dev := math.Abs(e - r)
		if dev > tolerance*math.Max(1, math.Abs(r)) {
			out = append(out, ConvergenceWarning{T: t, Step: dt, Estimate: e, Refined: r, Deviation: dev})
		}
	}
	return out, nil
}
