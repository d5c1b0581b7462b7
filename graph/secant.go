package graph

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/derivanim/shape"
)

// A Secant is the line through a curve at t and t+dt. As dt shrinks it
// approaches the tangent at t.
type Secant struct {
	// Line is the drawn secant, extended past both sample points.
	Line *shape.Path
	// Rise is the vertical leg from (t, f(t)) to (t+dt, f(t+dt)).
	Rise *shape.Path
	// Run is the horizontal leg from (t, f(t)) to (t+dt, f(t)).
	Run *shape.Path

	curve  *Curve
	t, dt  float64
	extend float64
}

// SecantLine builds the secant of c at t with step dt. The line is extended
// by extend drawing units past each sample point.
func (a *Axes) SecantLine(c *Curve, t, dt, extend float64, col colorful.Color) (*Secant, error) {
	s := &Secant{
		curve:  c,
		t:      t,
		extend: extend,
		Line:   shape.NewPath(c.Name+".secant", nil, col),
		Rise:   shape.NewPath(c.Name+".rise", nil, col),
		Run:    shape.NewPath(c.Name+".run", nil, col),
	}
	if err := s.Update(dt); err != nil {
		return nil, err
	}
	return s, nil
}

// Step returns the current dt.
func (s *Secant) Step() float64 { return s.dt }

// Slope is (f(t+dt) - f(t)) / dt in data units.
func (s *Secant) Slope() (float64, error) {
	d, err := Derivative(s.curve.fn, s.dt)
	if err != nil {
		return 0, err
	}
	return d.Eval(s.t)
}

// Update moves the second sample point to t+dt and redraws.
func (s *Secant) Update(dt float64) error {
	if !(dt > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidStep, dt)
	}
	v0, err := s.curve.fn.Eval(s.t)
	if err != nil {
		return err
	}
	v1, err := s.curve.fn.Eval(s.t + dt)
	if err != nil {
		return err
	}
	s.dt = dt

	ax := s.curve.axes
	p0 := ax.CoordsToPoint(s.t, v0)
	p1 := ax.CoordsToPoint(s.t+dt, v1)
	corner := ax.CoordsToPoint(s.t+dt, v0)

	dir := p1.Sub(p0)
	if n := dir.Norm(); n > 0 {
		dir = dir.Scale(s.extend / n)
	}
	s.Line.Points = []shape.Vec{p0.Sub(dir), p1.Add(dir)}
	s.Run.Points = []shape.Vec{p0, corner}
	s.Rise.Points = []shape.Vec{corner, p1}
	return nil
}

// Paths returns the secant's drawable parts.
func (s *Secant) Paths() []*shape.Path {
	return []*shape.Path{s.Line, s.Run, s.Rise}
}
