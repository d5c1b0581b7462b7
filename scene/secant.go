package scene

import (
	"github.com/matt-g-everett/derivanim/anim"
	"github.com/matt-g-everett/derivanim/graph"
	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

const (
	secantAt      = 3.0
	secantMaxStep = 2.0
	secantMinStep = 0.01
)

// SecantToTangent shrinks dt on the secant ds/dt of the double-smooth
// distance curve until it reads as the tangent.
type SecantToTangent struct {
	stage  Stage
	cfg    Config
	colors Colors

	Graphs *GraphHelper
	Curve  *graph.Curve
	Secant *graph.Secant
	Step   *shape.Number
	Slope  *shape.Number
}

func newSecantToTangent(cfg Config, colors Colors, _ *rate.LutCache) (Scene, error) {
	return &SecantToTangent{cfg: cfg, colors: colors}, nil
}

func (sc *SecantToTangent) Name() string { return "secant_to_tangent" }

func (sc *SecantToTangent) Elements() []shape.Element { return sc.stage.Elements() }

func (sc *SecantToTangent) Construct(s *Scheduler) error {
	var err error
	if sc.Graphs, err = NewGraphHelper(sc.cfg, sc.colors, s.Logger()); err != nil {
		return err
	}
	a := sc.Graphs.Axes
	if sc.Curve, err = sc.Graphs.Graph("distance", distanceFunc(rate.DoubleSmooth), 0, driveTime, sc.colors.Distance); err != nil {
		return err
	}
	if sc.Secant, err = a.SecantLine(sc.Curve, secantAt, secantMaxStep, 1, sc.colors.Secant); err != nil {
		return err
	}
	sc.Step = shape.NewNumber("dt", secantMaxStep, a.CoordsToPoint(1, 100), sc.colors.Secant)
	sc.Step.Decimals = 2
	sc.Slope = shape.NewNumber("ds/dt", 0, a.CoordsToPoint(1, 90), sc.colors.Secant)
	sc.Slope.Decimals = 2
	sc.refresh()

	trace, err := anim.ShowCreation(sc.Curve, anim.Seconds(2))
	if err != nil {
		return err
	}
	shrink, err := anim.UpdateFromAlphaFunc(sc.Secant, func(sec *graph.Secant, alpha float64) {
		if err := sec.Update(shape.Lerp(secantMaxStep, secantMinStep, alpha)); err != nil {
			s.Logger().Debug("secant update skipped", "error", err)
		}
		sc.refresh()
	}, anim.Seconds(4))
	if err != nil {
		return err
	}

	s.Do("add axes", func() error {
		sc.stage.Add(sc.Graphs.XAxis, sc.Graphs.YAxis, sc.Curve)
		return nil
	})
	if err := s.Play(anim.Config{Name: "trace"}, trace); err != nil {
		return err
	}
	s.Do("add secant", func() error {
		for _, p := range sc.Secant.Paths() {
			sc.stage.Add(p)
		}
		sc.stage.Add(sc.Step, sc.Slope)
		return nil
	})
	if err := s.Wait(1); err != nil {
		return err
	}
	if err := s.Play(anim.Config{Name: "shrink dt"}, shrink); err != nil {
		return err
	}
	return s.Wait(1)
}

func (sc *SecantToTangent) refresh() {
	sc.Step.Value = sc.Secant.Step()
	if v, err := sc.Secant.Slope(); err == nil {
		sc.Slope.Value = v
	}
}
