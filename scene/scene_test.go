package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/derivanim/graph"
	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

const frame = 1.0 / 30

// runToEnd advances p a frame at a time until it finishes.
func runToEnd(t *testing.T, p *Player) float64 {
	t.Helper()
	for i := 0; i < 60*30; i++ {
		done, err := p.Advance(frame)
		require.NoError(t, err)
		if done {
			return p.Scheduler().Clock()
		}
	}
	t.Fatalf("scene %s did not finish", p.Name())
	return 0
}

func start(t *testing.T, name string) *Player {
	t.Helper()
	p, err := DefaultRegistry().Start(name, Config{}, nil)
	require.NoError(t, err)
	return p
}

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{"car_trajectory", "increment", "secant_to_tangent", "speedometer"},
		DefaultRegistry().Names())
}

func TestRegistryErrors(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.Build("nope", Config{})
	assert.ErrorIs(t, err, ErrUnknownScene)

	_, err = r.Build("increment", Config{DerivativeStep: -1})
	assert.ErrorIs(t, err, graph.ErrInvalidStep)

	_, err = r.Build("increment", Config{SampleCount: 1})
	assert.ErrorIs(t, err, graph.ErrSampleCount)

	cfg := Config{}
	cfg.Palette.Car = "not a colour"
	_, err = r.Build("increment", cfg)
	assert.Error(t, err)

	_, err = r.Build("increment", Config{Rate: "wobble"})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.Defaults()
	assert.Equal(t, DefaultConfig(), c)

	c = Config{DerivativeStep: 0.5, Palette: Palette{Car: "#000000"}}
	c.Defaults()
	assert.Equal(t, 0.5, c.DerivativeStep)
	assert.Equal(t, "#000000", c.Palette.Car)
	assert.Equal(t, DefaultConfig().Palette.Axis, c.Palette.Axis)
}

func TestMotionRateTabulated(t *testing.T) {
	cache := rate.NewLutCache()
	c := DefaultConfig()
	c.Lut = 64
	f, err := c.MotionRate(cache)
	require.NoError(t, err)
	assert.Equal(t, 0.0, f(0))
	assert.Equal(t, 1.0, f(1))
	assert.InDelta(t, rate.Smooth(0.3), f(0.3), 1e-3)
}

func TestStage(t *testing.T) {
	var st Stage
	a := shape.NewBody("a", shape.V(0, 0), white)
	b := shape.NewBody("b", shape.V(1, 0), white)
	st.Add(a, b, a)
	assert.Equal(t, 2, st.Len())
	els := st.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, "a", els[0].Name)
	st.Remove(a)
	assert.Equal(t, "b", st.Elements()[0].Name)
}

func TestIncrementScene(t *testing.T) {
	p := start(t, "increment")
	clock := runToEnd(t, p)
	assert.InDelta(t, 12.5, clock, 2*frame)

	sc := p.scene.(*Increment)
	assert.Equal(t, "10", sc.Counter.Text())
	els := p.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, "10", els[0].Label)
	assert.Equal(t, 1.0, els[0].Opacity)
}

func TestCarTrajectoryKeepsCarAndGraphInStep(t *testing.T) {
	p := start(t, "car_trajectory")
	sc := p.scene.(*CarTrajectory)
	points := append([]shape.Vec(nil), sc.Distance.Points...)
	home := sc.Car.Position()
	require.Len(t, sc.Variants, 3)

	_, err := p.Advance(5)
	require.NoError(t, err)

	// Same distance on the road and on the graph.
	driven := sc.Car.Position().Dist(sc.Road.At(0)) / sc.Road.At(0).Dist(sc.Road.At(driveDistance)) * driveDistance
	assert.InDelta(t, 100*rate.Smooth(0.5), driven, 1e-9)
	_, v := sc.Graphs.Axes.PointToCoords(sc.Tracker.Dot.Position())
	assert.InDelta(t, driven, v, 0.05)
	assert.Equal(t, 5.0, sc.Clock.Value)

	// Rolling without slipping.
	for _, w := range sc.Car.Wheels {
		assert.InDelta(t, -sc.Car.Position().Dist(home)/w.Radius, w.Angle, 1e-9)
	}

	_, err = p.Advance(5)
	require.NoError(t, err)
	assert.Equal(t, sc.Road.At(driveDistance), sc.Car.Position())

	runToEnd(t, p)
	assert.Equal(t, home, sc.Car.Position())
	for _, w := range sc.Car.Wheels {
		assert.Equal(t, 0.0, w.Angle)
	}
	assert.Equal(t, points, sc.Distance.Points)
	assert.Equal(t, 1.0, sc.Distance.Drawn)
	assert.Equal(t, 1.0, sc.Velocity.Drawn)
	assert.NotEmpty(t, p.Elements())
}

func TestCarTrajectoryVelocityGraph(t *testing.T) {
	p := start(t, "car_trajectory")
	sc := p.scene.(*CarTrajectory)
	assert.Equal(t, sc.Distance.Samples().Times(), sc.Velocity.Samples().Times())
	peak := 0.0
	for _, s := range sc.Velocity.Samples() {
		peak = math.Max(peak, s.V)
	}
	// 100 m over 10 s with a smooth ease peaks at about 25 m/s.
	assert.InDelta(t, 25.3, peak, 0.5)
}

func TestSpeedometerNeedle(t *testing.T) {
	p := start(t, "speedometer")
	sc := p.scene.(*Speedometer)
	rest := sc.Needle.End()

	_, err := p.Advance(5)
	require.NoError(t, err)
	up := sc.Needle.End()
	assert.InDelta(t, sc.Center.X, up.X, 1e-9)
	assert.InDelta(t, sc.Center.Y+0.9*gaugeRadius, up.Y, 1e-9)
	assert.Equal(t, sc.colors.Gauge.At(1), sc.Needle.Color)
	assert.InDelta(t, 25.3, sc.Readout.Value, 0.5)

	runToEnd(t, p)
	assert.InDelta(t, rest.X, sc.Needle.End().X, 1e-9)
	assert.InDelta(t, rest.Y, sc.Needle.End().Y, 1e-9)
	assert.Equal(t, sc.colors.Gauge.At(0), sc.Needle.Color)
	assert.Equal(t, sc.Road.At(driveDistance), sc.Car.Position())
}

func TestSecantShrinksToTangent(t *testing.T) {
	p := start(t, "secant_to_tangent")
	sc := p.scene.(*SecantToTangent)
	assert.Equal(t, secantMaxStep, sc.Secant.Step())

	runToEnd(t, p)
	assert.Equal(t, secantMinStep, sc.Secant.Step())
	assert.Equal(t, secantMinStep, sc.Step.Value)

	d, err := graph.Derivative(sc.Curve.Function(), secantMinStep)
	require.NoError(t, err)
	want, err := d.Eval(secantAt)
	require.NoError(t, err)
	assert.Equal(t, want, sc.Slope.Value)
	assert.Len(t, p.Elements(), 3+3+2)
}

func TestEveryRegisteredSceneFinishes(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := r.Start(name, Config{}, nil)
			require.NoError(t, err)
			runToEnd(t, p)
			assert.True(t, p.Scheduler().Idle())
		})
	}
}
