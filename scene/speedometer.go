package scene

import (
	"math"

	"github.com/matt-g-everett/derivanim/anim"
	"github.com/matt-g-everett/derivanim/graph"
	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

const gaugeRadius = 1.0

// Speedometer drives the car past a speedometer whose needle swings up and
// back while a readout shows the finite-difference speed.
type Speedometer struct {
	stage  Stage
	cfg    Config
	colors Colors
	rates  *rate.LutCache

	Car     *shape.Car
	Road    *Road
	Dial    *shape.Path
	Needle  *shape.Path
	Readout *shape.Number
	Center  shape.Vec
}

func newSpeedometer(cfg Config, colors Colors, rates *rate.LutCache) (Scene, error) {
	return &Speedometer{cfg: cfg, colors: colors, rates: rates}, nil
}

func (sc *Speedometer) Name() string { return "speedometer" }

func (sc *Speedometer) Elements() []shape.Element { return sc.stage.Elements() }

func (sc *Speedometer) Construct(s *Scheduler) error {
	motion, err := sc.cfg.MotionRate(sc.rates)
	if err != nil {
		return err
	}
	a, err := graph.NewAxes(sc.cfg.Axes)
	if err != nil {
		return err
	}
	speed, err := graph.Derivative(graph.Func(distanceFunc(motion), 0, driveTime), sc.cfg.DerivativeStep)
	if err != nil {
		return err
	}

	sc.Road = newRoad(a, sc.colors)
	sc.Car = shape.NewCar("car", carHeight, sc.colors.Car)
	sc.Car.MoveTo(sc.Road.At(0))

	sc.Center = a.CoordsToPoint(driveTime/2, 60)
	sc.Dial = shape.NewPath("dial", arc(sc.Center, gaugeRadius, math.Pi, 0, 33), sc.colors.Axis)
	sc.Needle = shape.NewLine("needle", sc.Center, sc.Center.Add(shape.V(-0.9*gaugeRadius, 0)), sc.colors.Gauge.At(0))
	sc.Readout = shape.NewNumber("speed", 0, sc.Center.Add(shape.V(0, -0.4)), sc.colors.Text)
	sc.Readout.Decimals = 1

	cfg := anim.Config{Duration: driveTime, Rate: motion}
	roll, err := anim.Roll(sc.Car, sc.Road.At(driveDistance), cfg)
	if err != nil {
		return err
	}
	swing := anim.Config{Duration: driveTime, Rate: rate.ThereAndBack}
	turn, err := anim.Rotating(sc.Needle, sc.Center, -math.Pi/2, swing)
	if err != nil {
		return err
	}
	gauge := sc.colors.Gauge
	turn.Also(func(alpha float64) {
		sc.Needle.Color = gauge.At(alpha)
	})
	readout, err := anim.UpdateFromAlphaFunc(sc.Readout, func(n *shape.Number, alpha float64) {
		if v, err := speed.Eval(alpha * driveTime); err == nil {
			n.Value = v
		}
	}, anim.Config{Duration: driveTime, Rate: rate.Linear})
	if err != nil {
		return err
	}

	s.Do("add speedometer", func() error {
		sc.stage.Add(sc.Road.Line, sc.Car, sc.Dial, sc.Needle, sc.Readout)
		return nil
	})
	if err := s.Play(anim.Config{Name: "drive"}, roll, turn, readout); err != nil {
		return err
	}
	return s.Wait(1)
}

// arc returns n points on the circle about c from angle a0 to a1.
func arc(c shape.Vec, r, a0, a1 float64, n int) []shape.Vec {
	out := make([]shape.Vec, n)
	for i := range out {
		a := shape.Lerp(a0, a1, float64(i)/float64(n-1))
		out[i] = c.Add(shape.V(r*math.Cos(a), r*math.Sin(a)))
	}
	return out
}
