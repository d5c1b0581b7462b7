package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStep is returned for a non-positive finite-difference step.
	ErrInvalidStep = errors.New("graph: invalid derivative step")
	// ErrSampleCount is returned when fewer than two samples are requested.
	ErrSampleCount = errors.New("graph: invalid sample count")
	// ErrInvalidAxes is returned for degenerate axis ranges or scales.
	ErrInvalidAxes = errors.New("graph: invalid axes")
)

// A DomainError reports a query outside where a function or curve is
// defined. It aborts that query only.
type DomainError struct {
	Input    float64
	Min, Max float64
	Reason   string
}

func (e *DomainError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("graph: %g outside domain: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("graph: %g outside domain [%g, %g]", e.Input, e.Min, e.Max)
}

// ConvergenceWarning flags a point where the finite-difference step is
// coarse relative to the curvature: halving the step moves the estimate by
// more than the tolerance. It is informational; the curve is still drawn.
type ConvergenceWarning struct {
	T         float64
	Step      float64
	Estimate  float64
	Refined   float64
	Deviation float64
}

func (w ConvergenceWarning) String() string {
	return fmt.Sprintf("derivative at t=%g with dt=%g is %g, half step gives %g (deviation %g)",
		w.T, w.Step, w.Estimate, w.Refined, w.Deviation)
}
