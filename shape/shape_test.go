package shape

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	green = colorful.Color{R: 0.2, G: 0.8, B: 0.3}
)

func TestBodyInterpolateEndpoints(t *testing.T) {
	b := NewBody("dot", V(1, 2), white)
	start := b.Snapshot()
	b.MoveTo(V(7, -3))
	b.Rotation = 1.3
	b.SetColor(green)
	b.SetOpacity(0.25)
	end := b.Snapshot()

	require.NoError(t, b.Interpolate(start, end, 0))
	assert.Equal(t, start, b.Snapshot())

	require.NoError(t, b.Interpolate(start, end, 1))
	assert.Equal(t, end, b.Snapshot())

	require.NoError(t, b.Interpolate(start, end, 0.5))
	assert.InDelta(t, 4.0, b.Pos.X, 1e-12)
	assert.InDelta(t, -0.5, b.Pos.Y, 1e-12)
	assert.InDelta(t, 0.625, b.Alpha, 1e-12)
}

func TestBodyRejectsForeignState(t *testing.T) {
	b := NewBody("dot", V(0, 0), white)
	n := NewNumber("n", 3, V(0, 0), white)
	assert.ErrorIs(t, b.Restore(n.Snapshot()), ErrStateMismatch)
	assert.ErrorIs(t, b.Interpolate(b.Snapshot(), n.Snapshot(), 0.5), ErrStateMismatch)
}

func TestBodySaveAndTarget(t *testing.T) {
	b := NewBody("dot", V(0, 0), white)
	_, ok := b.SavedState()
	assert.False(t, ok)
	b.SaveState()
	b.Shift(V(1, 1))
	saved, ok := b.SavedState()
	require.True(t, ok)
	assert.Equal(t, V(0, 0), saved.(BodyState).Pos)

	_, ok = b.TargetState()
	assert.False(t, ok)
	target := b.GenerateTarget()
	target.MoveTo(V(5, 5))
	ts, ok := b.TargetState()
	require.True(t, ok)
	assert.Equal(t, V(5, 5), ts.(BodyState).Pos)
	assert.Equal(t, V(1, 1), b.Pos)
}

func TestPathPointFromProportion(t *testing.T) {
	p := NewPath("p", []Vec{V(0, 0), V(3, 0), V(3, 4)}, white)
	assert.Equal(t, 7.0, p.Length())
	assert.Equal(t, V(0, 0), p.PointFromProportion(0))
	assert.Equal(t, V(3, 4), p.PointFromProportion(1))
	mid := p.PointFromProportion(3.0 / 7.0)
	assert.InDelta(t, 3.0, mid.X, 1e-12)
	assert.InDelta(t, 0.0, mid.Y, 1e-12)
	q := p.PointFromProportion(5.0 / 7.0)
	assert.InDelta(t, 2.0, q.Y, 1e-12)
}

func TestPathInterpolateAlignsCounts(t *testing.T) {
	a := NewLine("a", V(0, 0), V(4, 0), white)
	b := NewPath("b", []Vec{V(0, 2), V(2, 2), V(4, 2)}, white)

	require.NoError(t, a.Interpolate(a.Snapshot(), b.Snapshot(), 0.5))
	require.Len(t, a.Points, 3)
	assert.InDelta(t, 2.0, a.Points[1].X, 1e-12)
	assert.InDelta(t, 1.0, a.Points[1].Y, 1e-12)
}

func TestPathVisible(t *testing.T) {
	p := NewLine("l", V(0, 0), V(10, 0), white)
	p.SetDrawnProportion(0)
	assert.Empty(t, p.Visible())
	p.SetDrawnProportion(0.3)
	vis := p.Visible()
	require.Len(t, vis, 2)
	assert.InDelta(t, 3.0, vis[1].X, 1e-12)
	p.SetDrawnProportion(1)
	assert.Equal(t, p.Points, p.Visible())
}

func TestPathSnapshotIsolated(t *testing.T) {
	p := NewLine("l", V(0, 0), V(1, 0), white)
	s := p.Snapshot()
	p.Shift(V(5, 0))
	assert.Equal(t, V(0, 0), s.(PathState).Points[0])
	require.NoError(t, p.Restore(s))
	assert.Equal(t, V(0, 0), p.Start())
	assert.Equal(t, V(1, 0), p.End())
}

func TestNumberText(t *testing.T) {
	n := NewNumber("n", 2.49, V(0, 0), white)
	assert.Equal(t, "2", n.Text())
	n.Value = 2.5
	assert.Equal(t, "3", n.Text())
	n.Value = -0.2
	assert.Equal(t, "0", n.Text())
	n.Decimals = 2
	n.Value = 3.14159
	assert.Equal(t, "3.14", n.Text())
}

func TestCarWheels(t *testing.T) {
	c := NewCar("car", 1, white)
	assert.InDelta(t, 0.18, c.WheelRadius(), 1e-12)

	start := c.Snapshot()
	c.MoveTo(V(10, 0))
	c.RotateWheels(-2)
	end := c.Snapshot()

	require.NoError(t, c.Interpolate(start, end, 0.25))
	assert.InDelta(t, 2.5, c.Pos.X, 1e-12)
	assert.InDelta(t, -0.5, c.Wheels[0].Angle, 1e-12)
	assert.InDelta(t, -0.5, c.Wheels[1].Angle, 1e-12)

	assert.ErrorIs(t, c.Restore(BodyState{}), ErrStateMismatch)
	assert.InDelta(t, -0.5/(2*math.Pi), c.Revolutions(0), 1e-12)
}

func TestCarSaveStateIsCarState(t *testing.T) {
	c := NewCar("car", 1, white)
	c.SaveState()
	s, ok := c.SavedState()
	require.True(t, ok)
	_, isCar := s.(CarState)
	assert.True(t, isCar)
}

func TestGroupRoundTrip(t *testing.T) {
	a := NewBody("a", V(0, 0), white)
	b := NewLine("b", V(0, 0), V(1, 1), white)
	g := NewGroup("g", a, b)
	start := g.Snapshot()
	a.MoveTo(V(2, 2))
	b.Shift(V(1, 0))
	end := g.Snapshot()

	require.NoError(t, g.Interpolate(start, end, 0.5))
	assert.Equal(t, V(1, 1), a.Pos)
	assert.InDelta(t, 0.5, b.Start().X, 1e-12)

	g.SetOpacity(0.1)
	assert.Equal(t, 0.1, a.Alpha)
	assert.Equal(t, 0.1, b.Alpha)
	assert.Len(t, g.Elements(), 2)

	assert.ErrorIs(t, g.Restore(GroupState{a.Snapshot()}), ErrStateMismatch)
}

func TestGradient(t *testing.T) {
	g, err := NewGradient("#00ff00", "#ffff00", "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, g[0].Color, g.At(-1))
	assert.Equal(t, g[2].Color, g.At(2))
	assert.Equal(t, g[1].Color, g.At(0.5))

	_, err = NewGradient("#00ff00")
	assert.Error(t, err)
	_, err = NewGradient("#00ff00", "zzz")
	assert.Error(t, err)
}
