package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/derivanim/rate"
)

func waits(t *testing.T, n int, d float64) []Animation {
	t.Helper()
	out := make([]Animation, n)
	for i := range out {
		w, err := Wait(d)
		require.NoError(t, err)
		out[i] = w
	}
	return out
}

func TestSequenceTotalDuration(t *testing.T) {
	const d = 0.25
	for _, n := range []int{1, 3, 8} {
		seq, err := NewSequence(Config{}, waits(t, n, d)...)
		require.NoError(t, err)
		assert.Equal(t, float64(n)*d, seq.Duration())
	}
}

func TestSequenceActivatesChildByCumulativeTime(t *testing.T) {
	const (
		n   = 6
		d   = 0.25
		eps = 0.01
	)
	for k := 0; k < n; k++ {
		seq, err := NewSequence(Config{}, waits(t, n, d)...)
		require.NoError(t, err)
		assert.Equal(t, Pending, seq.State())
		assert.Equal(t, -1, seq.ActiveIndex())

		seq.Step(float64(k)*d + eps)
		assert.Equal(t, Active, seq.State())
		assert.Equal(t, k, seq.ActiveIndex())
		for i, c := range seq.Children() {
			assert.Equal(t, i < k, c.Finished(), "child %d", i)
		}
	}
}

func TestSequenceStrictHandOff(t *testing.T) {
	var order []string
	mk := func(name string, d float64) Animation {
		a, err := New(Config{Name: name, Duration: d, Rate: rate.Linear}, func(alpha float64) error {
			order = append(order, name)
			return nil
		})
		require.NoError(t, err)
		return a
	}
	seq, err := NewSequence(Config{}, mk("a", 1), mk("b", 2), mk("c", 1))
	require.NoError(t, err)

	// One large tick jumps past a and into c: a and b still finish in order.
	seq.Step(3.5)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 2, seq.ActiveIndex())

	assert.True(t, seq.Step(4))
	assert.Equal(t, Done, seq.State())
	assert.Equal(t, "done", seq.State().String())
	assert.True(t, seq.Step(5))
	assert.Equal(t, []string{"a", "b", "c", "c"}, order)
}

func TestSequenceDurationOverride(t *testing.T) {
	seq, err := NewSequence(Config{Duration: 2}, waits(t, 4, 1)...)
	require.NoError(t, err)
	assert.Equal(t, 2.0, seq.Duration())

	seq.Step(1.1)
	assert.Equal(t, 2, seq.ActiveIndex())

	_, err = NewSequence(Config{Duration: -1}, waits(t, 1, 1)...)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = NewSequence(Config{})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestSequenceRateWarpsClock(t *testing.T) {
	seq, err := NewSequence(Config{Rate: rate.ThereAndBack}, waits(t, 2, 1)...)
	require.NoError(t, err)
	// At the midpoint ThereAndBack is 1, so the whole chain is consumed.
	seq.Step(1)
	assert.Equal(t, Done, seq.State())

	// Elapsed time outside the sequence is held at its ends.
	linear, err := NewSequence(Config{Rate: rate.Linear}, waits(t, 2, 1)...)
	require.NoError(t, err)
	assert.False(t, linear.Step(-0.5))
	assert.Equal(t, 0, linear.ActiveIndex())
	assert.Equal(t, 0.0, linear.Children()[0].(*Base).Alpha())
	assert.True(t, linear.Step(2.7))
	assert.Equal(t, Done, linear.State())
}

func TestParallelBarrier(t *testing.T) {
	short, err := New(Config{Duration: 1, Rate: rate.Linear}, nil)
	require.NoError(t, err)
	long, err := New(Config{Duration: 3, Rate: rate.Linear}, nil)
	require.NoError(t, err)

	par, err := NewParallel(Config{}, short, long)
	require.NoError(t, err)
	assert.Equal(t, 3.0, par.Duration())

	assert.False(t, par.Step(1.5))
	assert.True(t, short.Finished())
	assert.False(t, long.Finished())
	assert.False(t, par.Finished())

	assert.True(t, par.Step(3))
	assert.True(t, short.Finished())
	assert.True(t, long.Finished())
}

func TestParallelIdenticalAlphas(t *testing.T) {
	a, err := New(Config{Duration: 2, Rate: rate.Smooth}, nil)
	require.NoError(t, err)
	b, err := New(Config{Duration: 2, Rate: rate.Smooth}, nil)
	require.NoError(t, err)
	par, err := NewParallel(Config{}, a, b)
	require.NoError(t, err)

	for _, e := range []float64{0, 0.3, 0.9, 1.7, 2} {
		par.Step(e)
		assert.Equal(t, a.Alpha(), b.Alpha(), "elapsed=%g", e)
	}
}

func TestParallelRunTimeOverride(t *testing.T) {
	a, err := New(Config{Duration: 1}, nil)
	require.NoError(t, err)
	b, err := Wait(4)
	require.NoError(t, err)
	par, err := NewParallel(Config{Duration: 10, Rate: rate.Linear}, a, b)
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.Duration())
	assert.Equal(t, 10.0, b.Duration())
	assert.Equal(t, 10.0, par.Duration())

	par.Step(5)
	assert.Equal(t, 0.5, a.Alpha())
}

func TestNestedComposition(t *testing.T) {
	inner, err := NewSequence(Config{}, waits(t, 2, 1)...)
	require.NoError(t, err)
	other, err := Wait(1)
	require.NoError(t, err)
	par, err := NewParallel(Config{}, inner, other)
	require.NoError(t, err)
	outer, err := NewSequence(Config{}, par, waits(t, 1, 1)[0])
	require.NoError(t, err)
	assert.Equal(t, 3.0, outer.Duration())

	outer.Step(1.5)
	assert.Equal(t, 0, outer.ActiveIndex())
	assert.True(t, other.Finished())
	assert.False(t, inner.Finished())

	outer.Step(2.5)
	assert.Equal(t, 1, outer.ActiveIndex())
	assert.True(t, inner.Finished())
	assert.NoError(t, outer.Err())
}
