package graph

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/derivanim/shape"
)

// GraphConfig controls how a function is sampled and drawn.
type GraphConfig struct {
	Name string
	// SampleCount is the number of samples across the x range. Default 101.
	SampleCount int
	Color       colorful.Color
	// Tolerance is the ConvergenceWarning threshold for derivative graphs.
	// Default DefaultTolerance.
	Tolerance float64
}

// DefaultSampleCount is used when GraphConfig.SampleCount is zero.
const DefaultSampleCount = 101

// A Curve is a sampled function drawn on a set of axes. It is a Path, so it
// can be transformed, traced and faded like any other path.
type Curve struct {
	shape.Path
	axes     *Axes
	fn       Function
	samples  Samples
	warnings []ConvergenceWarning
}

// Graph samples fn across the axes' x range, clipped to fn's domain.
func (a *Axes) Graph(fn Function, cfg GraphConfig) (*Curve, error) {
	if fn.F == nil {
		return nil, fmt.Errorf("graph: nil function")
	}
	if cfg.SampleCount == 0 {
		cfg.SampleCount = DefaultSampleCount
	}
	lo, hi := clampRange(fn, a.cfg.XMin, a.cfg.XMax)
	samples, err := Sample(fn, lo, hi, cfg.SampleCount)
	if err != nil {
		return nil, err
	}
	return a.curve(fn, samples, cfg), nil
}

func (a *Axes) curve(fn Function, samples Samples, cfg GraphConfig) *Curve {
	points := make([]shape.Vec, len(samples))
	for i, s := range samples {
		points[i] = a.CoordsToPoint(s.T, s.V)
	}
	name := cfg.Name
	if name == "" {
		name = "graph"
	}
	c := new(Curve)
	c.Path = *shape.NewPath(name, points, cfg.Color)
	c.axes = a
	c.fn = fn
	c.samples = samples
	return c
}

// DerivativeGraph builds the forward-difference curve of base with step dt,
// sampled at exactly the base curve's sample times. Times past the
// derivative's domain take the last valid sample. Points where dt is coarse
// are recorded as warnings on the result.
func (a *Axes) DerivativeGraph(base *Curve, dt float64, cfg GraphConfig) (*Curve, error) {
	deriv, err := Derivative(base.fn, dt)
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = base.Name + "'"
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	ts := base.samples.Times()
	samples := make(Samples, len(ts))
	for i, t := range ts {
		v, err := deriv.Eval(t)
		var de *DomainError
		switch {
		case err == nil:
		case errors.As(err, &de) && i > 0:
			v = samples[i-1].V
		default:
			return nil, err
		}
		samples[i] = Point{T: t, V: v}
	}
	c := a.curve(deriv, samples, cfg)
	c.warnings, err = CheckStep(base.fn, dt, ts, cfg.Tolerance)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Function returns the sampled function.
func (c *Curve) Function() Function { return c.fn }

// Samples returns the data-space samples the curve was built from.
func (c *Curve) Samples() Samples { return c.samples }

// Warnings returns the convergence warnings raised when the curve was built.
func (c *Curve) Warnings() []ConvergenceWarning { return c.warnings }

// Axes returns the axes the curve is drawn on.
func (c *Curve) Axes() *Axes { return c.axes }

// PointFromProportion maps p in [0,1] to the drawing-space point at that
// fraction of the curve's arc length. p=0 and p=1 are the first and last
// samples.
func (c *Curve) PointFromProportion(p float64) (shape.Vec, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return shape.Vec{}, &DomainError{Input: p, Min: 0, Max: 1}
	}
	if len(c.Points) == 0 {
		return shape.Vec{}, &DomainError{Input: p, Min: 0, Max: 1, Reason: "empty curve"}
	}
	return c.Path.PointFromProportion(p), nil
}

// ValueFromProportion is PointFromProportion in data coordinates.
func (c *Curve) ValueFromProportion(p float64) (Point, error) {
	v, err := c.PointFromProportion(p)
	if err != nil {
		return Point{}, err
	}
	t, val := c.axes.PointToCoords(v)
	return Point{T: t, V: val}, nil
}

// InputToGraphPoint returns the drawn point above input t. It reads the
// current points, so it follows the curve through transforms.
func (c *Curve) InputToGraphPoint(t float64) (shape.Vec, error) {
	n := len(c.Points)
	x := c.axes.CoordsToPoint(t, 0).X
	if n == 0 || math.IsNaN(t) {
		return shape.Vec{}, &DomainError{Input: t, Reason: "empty curve"}
	}
	first, last := c.Points[0].X, c.Points[n-1].X
	if x < first || x > last {
		lo, _ := c.axes.PointToCoords(c.Points[0])
		hi, _ := c.axes.PointToCoords(c.Points[n-1])
		return shape.Vec{}, &DomainError{Input: t, Min: lo, Max: hi}
	}
	i := sort.Search(n, func(i int) bool { return c.Points[i].X >= x })
	if c.Points[i].X == x || i == 0 {
		return c.Points[i], nil
	}
	a, b := c.Points[i-1], c.Points[i]
	return a.Lerp(b, (x-a.X)/(b.X-a.X)), nil
}

// VerticalLineToGraph draws from the time axis up to the curve at t.
func (c *Curve) VerticalLineToGraph(t float64, col colorful.Color) (*shape.Path, error) {
	top, err := c.InputToGraphPoint(t)
	if err != nil {
		return nil, err
	}
	return shape.NewLine(fmt.Sprintf("%s.v(%g)", c.Name, t), c.axes.CoordsToPoint(t, 0), top, col), nil
}
