package scene

import (
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/derivanim/graph"
	"github.com/matt-g-everett/derivanim/shape"
	"github.com/matt-g-everett/derivanim/util"
)

// GraphHelper builds the axes and curves shared by the graphing scenes.
type GraphHelper struct {
	Axes  *graph.Axes
	XAxis *shape.Path
	YAxis *shape.Path

	dt      float64
	samples int
	logger  *slog.Logger
}

// NewGraphHelper creates axes from cfg.
func NewGraphHelper(cfg Config, colors Colors, logger *slog.Logger) (*GraphHelper, error) {
	a, err := graph.NewAxes(cfg.Axes)
	if err != nil {
		return nil, err
	}
	g := &GraphHelper{
		Axes:    a,
		dt:      cfg.DerivativeStep,
		samples: cfg.SampleCount,
		logger:  util.OrNop(logger),
	}
	g.XAxis, g.YAxis = a.AxisLines(colors.Axis)
	return g, nil
}

// Step is the configured derivative step.
func (g *GraphHelper) Step() float64 { return g.dt }

// Graph samples f over [min, max].
func (g *GraphHelper) Graph(name string, f func(float64) float64, min, max float64, c colorful.Color) (*graph.Curve, error) {
	return g.Axes.Graph(graph.Func(f, min, max), graph.GraphConfig{Name: name, SampleCount: g.samples, Color: c})
}

// Velocity builds the derivative graph of base with the configured step.
// Convergence warnings are logged and kept on the curve.
func (g *GraphHelper) Velocity(base *graph.Curve, c colorful.Color) (*graph.Curve, error) {
	v, err := g.Axes.DerivativeGraph(base, g.dt, graph.GraphConfig{Name: base.Name + ".velocity", Color: c})
	if err != nil {
		return nil, err
	}
	if w := v.Warnings(); len(w) > 0 {
		g.logger.Warn("derivative step is coarse", "curve", base.Name, "dt", g.dt, "points", len(w), "first", w[0].String())
	}
	return v, nil
}
