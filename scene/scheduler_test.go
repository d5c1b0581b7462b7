package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/derivanim/anim"
	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func linear(t *testing.T, name string, d float64, calls *[]string) *anim.Base {
	t.Helper()
	a, err := anim.New(anim.Config{Name: name, Duration: d, Rate: rate.Linear}, func(float64) error {
		if calls != nil {
			*calls = append(*calls, name)
		}
		return nil
	})
	require.NoError(t, err)
	return a
}

func TestAdvanceRejectsNegativeStep(t *testing.T) {
	s := NewScheduler(nil)
	_, err := s.Advance(-0.1)
	assert.ErrorIs(t, err, ErrNegativeStep)
	_, err = s.Advance(math.NaN())
	assert.ErrorIs(t, err, ErrNegativeStep)
	assert.Equal(t, 0.0, s.Clock())
}

func TestAdvanceCarriesLeftoverTime(t *testing.T) {
	s := NewScheduler(nil)
	a := linear(t, "a", 1, nil)
	b := linear(t, "b", 2, nil)
	require.NoError(t, s.Play(anim.Config{}, a))
	require.NoError(t, s.Play(anim.Config{}, b))
	assert.Equal(t, 3.0, s.Remaining())

	idle, err := s.Advance(0.5)
	require.NoError(t, err)
	assert.False(t, idle)
	assert.Equal(t, 0.5, a.Alpha())
	assert.Equal(t, 2.5, s.Remaining())

	idle, err = s.Advance(1)
	require.NoError(t, err)
	assert.False(t, idle)
	assert.True(t, a.Finished())
	assert.Equal(t, 0.25, b.Alpha())

	idle, err = s.Advance(1.5)
	require.NoError(t, err)
	assert.True(t, idle)
	assert.True(t, b.Finished())
	assert.True(t, s.Idle())
	assert.Equal(t, 3.0, s.Clock())
}

func TestPlayIsABarrier(t *testing.T) {
	var calls []string
	s := NewScheduler(nil)
	short := linear(t, "short", 1, &calls)
	long := linear(t, "long", 3, &calls)
	next := linear(t, "next", 1, &calls)
	require.NoError(t, s.Play(anim.Config{}, short, long))
	require.NoError(t, s.Play(anim.Config{}, next))

	_, err := s.Advance(2)
	require.NoError(t, err)
	assert.True(t, short.Finished())
	assert.False(t, long.Finished())
	assert.NotContains(t, calls, "next")

	_, err = s.Advance(1.5)
	require.NoError(t, err)
	assert.True(t, long.Finished())
	assert.Contains(t, calls, "next")
	assert.Equal(t, 0.5, next.Alpha())
}

func TestPlayRunTimeOverride(t *testing.T) {
	s := NewScheduler(nil)
	a := linear(t, "a", 1, nil)
	require.NoError(t, s.Play(anim.Config{Duration: 4}, a))
	assert.Equal(t, 4.0, a.Duration())

	_, err := s.Advance(2)
	require.NoError(t, err)
	assert.Equal(t, 0.5, a.Alpha())

	assert.ErrorIs(t, s.Play(anim.Config{}), anim.ErrInvalidDuration)
	assert.ErrorIs(t, s.Wait(0), anim.ErrInvalidDuration)
}

func TestDoRunsBetweenPlays(t *testing.T) {
	var order []string
	s := NewScheduler(nil)
	require.NoError(t, s.Play(anim.Config{}, linear(t, "a", 1, nil)))
	s.Do("mark", func() error {
		order = append(order, "mark")
		return nil
	})
	require.NoError(t, s.Wait(1))

	s.Advance(0.5)
	assert.Empty(t, order)
	s.Advance(1)
	assert.Equal(t, []string{"mark"}, order)
}

func TestDoErrorStopsAdvance(t *testing.T) {
	boom := errors.New("boom")
	s := NewScheduler(nil)
	s.Do("explode", func() error { return boom })
	_, err := s.Advance(0.1)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "explode")
}

func TestAnimationErrorAbandonsPlay(t *testing.T) {
	boom := errors.New("boom")
	a, err := anim.New(anim.Config{Duration: 1}, func(alpha float64) error {
		if alpha > 0 {
			return boom
		}
		return nil
	})
	require.NoError(t, err)
	s := NewScheduler(nil)
	require.NoError(t, s.Play(anim.Config{}, a))
	require.NoError(t, s.Wait(1))

	_, err = s.Advance(0.5)
	assert.ErrorIs(t, err, boom)
	// The failed call is dropped; the wait after it is still queued.
	assert.False(t, s.Idle())
	assert.Equal(t, 1.0, s.Remaining())
}

func TestCancelKeepsPartialState(t *testing.T) {
	body := shape.NewBody("b", shape.V(0, 0), colorful.Color{R: 1})
	mv, err := anim.ApplyMethod(body, func() error {
		body.MoveTo(shape.V(10, 0))
		return nil
	}, anim.Config{Duration: 2, Rate: rate.Linear})
	require.NoError(t, err)

	s := NewScheduler(nil)
	require.NoError(t, s.Play(anim.Config{}, mv))
	require.NoError(t, s.Wait(5))

	_, err = s.Advance(1)
	require.NoError(t, err)
	assert.InDelta(t, 5, body.Pos.X, 1e-12)

	s.Cancel()
	assert.True(t, s.Idle())
	idle, err := s.Advance(1)
	require.NoError(t, err)
	assert.True(t, idle)
	assert.InDelta(t, 5, body.Pos.X, 1e-12)
}
