package rate

import (
	"fmt"
	"sync"
)

// Lut is a look-up table of a rate function sampled uniformly over [0,1].
type Lut []float64

// NewLut samples f at n evenly spaced points including both endpoints.
func NewLut(f Func, n int) (Lut, error) {
	if n < 2 {
		return nil, fmt.Errorf("rate: lut needs at least 2 entries, got %d", n)
	}
	increment := 1.0 / float64(n-1)
	lut := make(Lut, n)
	for i := 0; i < n; i++ {
		lut[i] = f(float64(i) * increment)
	}
	// Pin the last entry so rounding in i*increment cannot move f(1).
	lut[n-1] = f(1)
	return lut, nil
}

// At evaluates the table at t using linear interpolation. t is clamped to
// [0,1].
func (l Lut) At(t float64) float64 {
	if t <= 0 {
		return l[0]
	}
	last := len(l) - 1
	if t >= 1 {
		return l[last]
	}
	pos := t * float64(last)
	i := int(pos)
	if i >= last {
		return l[last]
	}
	frac := pos - float64(i)
	return l[i]*(1-frac) + l[i+1]*frac
}

// Func exposes the table as a rate function.
func (l Lut) Func() Func {
	return l.At
}

// LutCache memoizes tables by curve name and size.
type LutCache struct {
	mu     sync.Mutex
	tables map[string]Lut
}

// NewLutCache creates an empty cache.
func NewLutCache() *LutCache {
	c := new(LutCache)
	c.tables = make(map[string]Lut)
	return c
}

// Tabulated resolves name with Named and returns its n-entry table, building
// it on first use.
func (c *LutCache) Tabulated(name string, n int) (Func, error) {
	key := fmt.Sprintf("%s/%d", name, n)

	c.mu.Lock()
	defer c.mu.Unlock()
	if lut, ok := c.tables[key]; ok {
		return lut.Func(), nil
	}

	f, err := Named(name)
	if err != nil {
		return nil, err
	}
	lut, err := NewLut(f, n)
	if err != nil {
		return nil, err
	}
	c.tables[key] = lut
	return lut.Func(), nil
}
