package graph

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/derivanim/shape"
)

// AxesConfig places a pair of axes in drawing space. Zero fields take the
// defaults from DefaultAxesConfig.
type AxesConfig struct {
	// Origin is the drawing-space point of (XMin, YMin).
	Origin shape.Vec `yaml:"origin"`
	XMin   float64   `yaml:"xMin"`
	XMax   float64   `yaml:"xMax"`
	YMin   float64   `yaml:"yMin"`
	YMax   float64   `yaml:"yMax"`
	// Width and Height are the drawing-space lengths of the axes.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultAxesConfig is the time/distance frame: 0..10.01 seconds against
// 0..110 metres.
func DefaultAxesConfig() AxesConfig {
	return AxesConfig{
		Origin: shape.V(-5, -2.5),
		XMin:   0,
		XMax:   10.01,
		YMin:   0,
		YMax:   110,
		Width:  9,
		Height: 6,
	}
}

// Axes map (t, value) data coordinates to drawing space by a fixed affine
// transform. This is the only place data units are converted.
type Axes struct {
	cfg          AxesConfig
	xUnit, yUnit float64
}

// NewAxes validates cfg and builds the transform.
func NewAxes(cfg AxesConfig) (*Axes, error) {
	def := DefaultAxesConfig()
	if cfg.XMin == 0 && cfg.XMax == 0 {
		cfg.XMin, cfg.XMax = def.XMin, def.XMax
	}
	if cfg.YMin == 0 && cfg.YMax == 0 {
		cfg.YMin, cfg.YMax = def.YMin, def.YMax
	}
	if cfg.Width == 0 {
		cfg.Width = def.Width
	}
	if cfg.Height == 0 {
		cfg.Height = def.Height
	}
	if !(cfg.XMax > cfg.XMin) || !(cfg.YMax > cfg.YMin) {
		return nil, fmt.Errorf("%w: ranges x[%g,%g] y[%g,%g]", ErrInvalidAxes, cfg.XMin, cfg.XMax, cfg.YMin, cfg.YMax)
	}
	if !(cfg.Width > 0) || !(cfg.Height > 0) {
		return nil, fmt.Errorf("%w: size %gx%g", ErrInvalidAxes, cfg.Width, cfg.Height)
	}
	a := new(Axes)
	a.cfg = cfg
	a.xUnit = cfg.Width / (cfg.XMax - cfg.XMin)
	a.yUnit = cfg.Height / (cfg.YMax - cfg.YMin)
	return a, nil
}

// Config returns the validated configuration.
func (a *Axes) Config() AxesConfig { return a.cfg }

// CoordsToPoint maps data coordinates to drawing space.
func (a *Axes) CoordsToPoint(t, v float64) shape.Vec {
	return shape.Vec{
		X: a.cfg.Origin.X + (t-a.cfg.XMin)*a.xUnit,
		Y: a.cfg.Origin.Y + (v-a.cfg.YMin)*a.yUnit,
	}
}

// PointToCoords is the inverse of CoordsToPoint.
func (a *Axes) PointToCoords(p shape.Vec) (t, v float64) {
	t = (p.X-a.cfg.Origin.X)/a.xUnit + a.cfg.XMin
	v = (p.Y-a.cfg.Origin.Y)/a.yUnit + a.cfg.YMin
	return t, v
}

// Origin is the drawing-space point of (0, 0).
func (a *Axes) Origin() shape.Vec {
	return a.CoordsToPoint(0, 0)
}

// AxisLines returns the time and value axes as paths.
func (a *Axes) AxisLines(c colorful.Color) (x, y *shape.Path) {
	x = shape.NewLine("x_axis", a.CoordsToPoint(a.cfg.XMin, 0), a.CoordsToPoint(a.cfg.XMax, 0), c)
	y = shape.NewLine("y_axis", a.CoordsToPoint(0, a.cfg.YMin), a.CoordsToPoint(0, a.cfg.YMax), c)
	return x, y
}

func clampRange(fn Function, lo, hi float64) (float64, float64) {
	return math.Max(fn.Min, lo), math.Min(fn.Max, hi)
}
