package scene

import (
	"github.com/matt-g-everett/derivanim/anim"
	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

// Increment counts from 0 to 10 once a second.
type Increment struct {
	stage  Stage
	colors Colors

	Counter *shape.Number
}

func newIncrement(_ Config, colors Colors, _ *rate.LutCache) (Scene, error) {
	return &Increment{colors: colors}, nil
}

func (sc *Increment) Name() string { return "increment" }

func (sc *Increment) Elements() []shape.Element { return sc.stage.Elements() }

func (sc *Increment) Construct(s *Scheduler) error {
	sc.Counter = shape.NewNumber("counter", 0, shape.Vec{}, sc.colors.Text)
	count, err := anim.IncrementNumber(sc.Counter, anim.IncrementConfig{})
	if err != nil {
		return err
	}
	fade, err := anim.FadeIn(sc.Counter, anim.Seconds(0.5))
	if err != nil {
		return err
	}
	s.Do("add counter", func() error {
		sc.stage.Add(sc.Counter)
		return nil
	})
	if err := s.Play(anim.Config{Name: "show counter"}, fade); err != nil {
		return err
	}
	if err := s.Play(anim.Config{Name: "count"}, count); err != nil {
		return err
	}
	return s.Wait(1)
}
