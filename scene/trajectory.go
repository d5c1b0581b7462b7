package scene

import (
	"github.com/matt-g-everett/derivanim/anim"
	"github.com/matt-g-everett/derivanim/graph"
	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

const (
	// driveTime is how long the car takes to cover driveDistance.
	driveTime     = 10.0
	driveDistance = 100.0
	carHeight     = 0.4
)

// distanceFunc is s(t) = 100 m * f(t / 10 s).
func distanceFunc(f rate.Func) func(float64) float64 {
	return func(t float64) float64 {
		return driveDistance * f(t/driveTime)
	}
}

// Road is the strip the car drives along, mapped so that 0 m sits under
// the time origin and driveDistance under the end of the drive.
type Road struct {
	Line       *shape.Path
	start, end shape.Vec
}

func newRoad(a *graph.Axes, colors Colors) *Road {
	o := a.CoordsToPoint(0, 0)
	start := shape.V(o.X, o.Y-1)
	end := shape.V(a.CoordsToPoint(driveTime, 0).X, start.Y)
	return &Road{Line: shape.NewLine("road", start, end, colors.Axis), start: start, end: end}
}

// At is the point d metres along the road.
func (r *Road) At(d float64) shape.Vec {
	return r.start.Lerp(r.end, d/driveDistance)
}

// CarTrajectory draws the distance-time graph of a car while it drives,
// derives its velocity graph, then swaps in other distance functions.
type CarTrajectory struct {
	stage  Stage
	cfg    Config
	colors Colors
	rates  *rate.LutCache

	Graphs   *GraphHelper
	Road     *Road
	Car      *shape.Car
	Distance *graph.Curve
	Velocity *graph.Curve
	Tracker  *graph.Tracker
	VLine    *shape.Path
	Link     *shape.Path
	Clock    *shape.Number
	Variants []Variant
}

// Variant is an alternative distance function and its velocity graph.
type Variant struct {
	Name     string
	Distance *graph.Curve
	Velocity *graph.Curve
}

func newCarTrajectory(cfg Config, colors Colors, rates *rate.LutCache) (Scene, error) {
	return &CarTrajectory{cfg: cfg, colors: colors, rates: rates}, nil
}

func (sc *CarTrajectory) Name() string { return "car_trajectory" }

func (sc *CarTrajectory) Elements() []shape.Element { return sc.stage.Elements() }

func (sc *CarTrajectory) Construct(s *Scheduler) error {
	motion, err := sc.cfg.MotionRate(sc.rates)
	if err != nil {
		return err
	}
	if sc.Graphs, err = NewGraphHelper(sc.cfg, sc.colors, s.Logger()); err != nil {
		return err
	}
	if err := sc.build(motion); err != nil {
		return err
	}

	drive, err := sc.drive(motion)
	if err != nil {
		return err
	}
	s.Do("add axes and car", func() error {
		sc.stage.Add(sc.Graphs.XAxis, sc.Graphs.YAxis, sc.Road.Line, sc.Distance,
			sc.Car, sc.VLine, sc.Link, sc.Tracker.Dot, sc.Clock)
		return nil
	})
	if err := s.Play(anim.Config{Name: "drive"}, drive...); err != nil {
		return err
	}
	if err := s.Wait(1); err != nil {
		return err
	}

	showVelocity, err := anim.ShowCreation(sc.Velocity, anim.Seconds(2))
	if err != nil {
		return err
	}
	s.Do("add velocity", func() error {
		sc.stage.Add(sc.Velocity)
		return nil
	})
	if err := s.Play(anim.Config{Name: "show velocity"}, showVelocity); err != nil {
		return err
	}
	if err := s.Wait(1); err != nil {
		return err
	}

	var fades []anim.Animation
	for _, t := range []shape.Transformable{sc.Tracker.Dot, sc.VLine, sc.Link} {
		f, err := anim.FadeOut(t, anim.Seconds(1))
		if err != nil {
			return err
		}
		fades = append(fades, f)
	}
	if err := s.Play(anim.Config{Name: "clear trackers"}, fades...); err != nil {
		return err
	}
	s.Do("remove trackers", func() error {
		sc.stage.Remove(sc.Tracker.Dot, sc.VLine, sc.Link)
		return nil
	})

	for _, v := range sc.Variants {
		d, err := anim.Transform(sc.Distance, v.Distance.Snapshot(), anim.Seconds(2))
		if err != nil {
			return err
		}
		vel, err := anim.Transform(sc.Velocity, v.Velocity.Snapshot(), anim.Seconds(2))
		if err != nil {
			return err
		}
		if err := s.Play(anim.Config{Name: "swap to " + v.Name}, d, vel); err != nil {
			return err
		}
		if err := s.Wait(1); err != nil {
			return err
		}
	}

	var restores []anim.Animation
	for _, t := range []shape.Transformable{sc.Distance, sc.Velocity, sc.Car} {
		r, err := anim.Restore(t, anim.Seconds(2))
		if err != nil {
			return err
		}
		restores = append(restores, r)
	}
	if err := s.Play(anim.Config{Name: "restore"}, restores...); err != nil {
		return err
	}
	return s.Wait(1)
}

// build creates the objects and saves the states the scene restores to.
func (sc *CarTrajectory) build(motion rate.Func) error {
	g := sc.Graphs
	var err error
	if sc.Distance, err = g.Graph("distance", distanceFunc(motion), 0, driveTime, sc.colors.Distance); err != nil {
		return err
	}
	if sc.Velocity, err = g.Velocity(sc.Distance, sc.colors.Velocity); err != nil {
		return err
	}
	sc.Distance.SaveState()
	sc.Velocity.SaveState()

	for _, v := range []struct {
		name string
		f    rate.Func
	}{
		{"shallow", rate.SmoothWith(4)},
		{"steep", rate.SmoothWith(25)},
		{"double_smooth", rate.DoubleSmooth},
	} {
		d, err := g.Graph("distance."+v.name, distanceFunc(v.f), 0, driveTime, sc.colors.Distance)
		if err != nil {
			return err
		}
		vel, err := g.Velocity(d, sc.colors.Velocity)
		if err != nil {
			return err
		}
		sc.Variants = append(sc.Variants, Variant{Name: v.name, Distance: d, Velocity: vel})
	}

	sc.Road = newRoad(g.Axes, sc.colors)
	sc.Car = shape.NewCar("car", carHeight, sc.colors.Car)
	sc.Car.MoveTo(sc.Road.At(0))
	sc.Car.SaveState()

	if sc.Tracker, err = graph.NewTracker(sc.Distance, 0, sc.colors.Highlight, g.logger); err != nil {
		return err
	}
	if sc.VLine, err = sc.Distance.VerticalLineToGraph(0, sc.colors.Highlight); err != nil {
		return err
	}
	sc.Link = shape.NewLine("link", sc.Car.Position(), sc.Tracker.Dot.Position(), sc.colors.Highlight)
	sc.Link.Alpha = 0.5

	sc.Clock = shape.NewNumber("clock", 0, g.Axes.CoordsToPoint(driveTime, 100), sc.colors.Text)
	sc.Clock.Decimals = 1
	return nil
}

// drive is the play call that traces the graph while the car rolls. The
// car moves under the motion rate and the graph input moves linearly in
// time, so the dot and the car always show the same distance.
func (sc *CarTrajectory) drive(motion rate.Func) ([]anim.Animation, error) {
	linear := anim.Config{Duration: driveTime, Rate: rate.Linear}

	trace, err := anim.ShowCreation(sc.Distance, linear)
	if err != nil {
		return nil, err
	}
	roll, err := anim.Roll(sc.Car, sc.Road.At(driveDistance), anim.Config{Duration: driveTime, Rate: motion})
	if err != nil {
		return nil, err
	}
	track, err := anim.UpdateFromAlphaFunc(sc.Tracker, func(tr *graph.Tracker, alpha float64) {
		tr.Set(alpha * driveTime)
	}, linear)
	if err != nil {
		return nil, err
	}
	a := sc.Graphs.Axes
	vline, err := anim.UpdateFromFunc(sc.VLine, func(l *shape.Path) {
		l.PutStartAndEnd(a.CoordsToPoint(sc.Tracker.Input(), 0), sc.Tracker.Dot.Position())
	}, linear)
	if err != nil {
		return nil, err
	}
	link, err := anim.UpdateFromFunc(sc.Link, func(l *shape.Path) {
		l.PutStartAndEnd(sc.Car.Position(), sc.Tracker.Dot.Position())
	}, linear)
	if err != nil {
		return nil, err
	}
	clock, err := anim.UpdateFromAlphaFunc(sc.Clock, func(n *shape.Number, alpha float64) {
		n.Value = alpha * driveTime
	}, linear)
	if err != nil {
		return nil, err
	}
	return []anim.Animation{trace, roll, track, vline, link, clock}, nil
}
