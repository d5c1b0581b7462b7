package anim

import (
	"fmt"

	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

// snapHold reaches the new value in the first half of each step and holds it
// for the rest, so a counter reads as discrete while riding a continuous clock.
var snapHold = rate.MustSquish(rate.Smooth, 0, 0.5)

// IncrementConfig configures IncrementNumber.
type IncrementConfig struct {
	// Start is the first value shown. Default 0.
	Start int
	// ChangesPerSecond is how often the value changes. Default 1.
	ChangesPerSecond float64
	// RunTime is the total duration in seconds. Default 11.
	RunTime float64
}

func (c *IncrementConfig) defaults() {
	if c.ChangesPerSecond == 0 {
		c.ChangesPerSecond = 1
	}
	if c.RunTime == 0 {
		c.RunTime = 11
	}
}

// IncrementStep is one value of a counter and how long it is held.
type IncrementStep struct {
	Value    float64
	Duration float64
}

// IncrementNumber counts num up from cfg.Start once per 1/ChangesPerSecond
// seconds for cfg.RunTime seconds.
func IncrementNumber(num *shape.Number, cfg IncrementConfig) (*Sequence, error) {
	cfg.defaults()
	if err := validDuration(cfg.RunTime); err != nil {
		return nil, err
	}
	if !(cfg.ChangesPerSecond > 0) {
		return nil, fmt.Errorf("%w: %g changes per second", ErrInvalidDuration, cfg.ChangesPerSecond)
	}
	n := int(cfg.RunTime * cfg.ChangesPerSecond)
	if n < 1 {
		return nil, fmt.Errorf("%w: run time %g too short for %g changes per second",
			ErrInvalidDuration, cfg.RunTime, cfg.ChangesPerSecond)
	}
	steps := make([]IncrementStep, n)
	for i := range steps {
		steps[i] = IncrementStep{Value: float64(cfg.Start + i), Duration: 1 / cfg.ChangesPerSecond}
	}
	return IncrementSteps(num, steps, cfg.RunTime)
}

// IncrementSteps shows each step's value in turn for that step's duration.
// A positive runTime rescales the whole counter to that length.
func IncrementSteps(num *shape.Number, steps []IncrementStep, runTime float64) (*Sequence, error) {
	if num == nil {
		return nil, fmt.Errorf("%w: nil number", ErrUnsupportedTarget)
	}
	children := make([]Animation, len(steps))
	for i, s := range steps {
		t, err := Transform(num, num.With(s.Value), Config{
			Name:     fmt.Sprintf("increment[%d]", i),
			Duration: s.Duration,
			Rate:     snapHold,
		})
		if err != nil {
			return nil, err
		}
		children[i] = t
	}
	return NewSequence(Config{Name: "increment_number", Duration: runTime}, children...)
}
