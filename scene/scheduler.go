package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/matt-g-everett/derivanim/anim"
	"github.com/matt-g-everett/derivanim/util"
)

var (
	// ErrNegativeStep is returned by Advance for a negative or NaN step.
	ErrNegativeStep = errors.New("scene: negative clock step")
	// ErrUnknownScene is returned when a scene name is not registered.
	ErrUnknownScene = errors.New("scene: unknown scene")
)

// entry is one queued play call. Exactly one of play and action is set; an
// action runs instantly when the clock reaches it.
type entry struct {
	name   string
	play   anim.Animation
	action func() error
}

// A Scheduler owns the global clock of a scene. Play calls queue up and run
// one after another; the animations inside a single play call run in
// parallel and the next call starts only after all of them have finished.
//
// The scheduler is driven by Advance, once per output frame. It is not safe
// for concurrent use.
type Scheduler struct {
	queue   []entry
	current anim.Animation
	elapsed float64
	clock   float64
	plays   int
	logger  *slog.Logger
}

// NewScheduler creates an idle scheduler. A nil logger discards output.
func NewScheduler(logger *slog.Logger) *Scheduler {
	s := new(Scheduler)
	s.logger = util.OrNop(logger)
	return s
}

// Logger returns the scheduler's logger.
func (s *Scheduler) Logger() *slog.Logger { return s.logger }

// Clock returns the total time advanced.
func (s *Scheduler) Clock() float64 { return s.clock }

// Idle reports whether nothing is playing or queued.
func (s *Scheduler) Idle() bool { return s.current == nil && len(s.queue) == 0 }

// Remaining is the play time left in the current and queued calls.
func (s *Scheduler) Remaining() float64 {
	total := 0.0
	if s.current != nil {
		total += math.Max(0, s.current.Duration()-s.elapsed)
	}
	for _, e := range s.queue {
		if e.play != nil {
			total += e.play.Duration()
		}
	}
	return total
}

// Play queues anims to run together. A positive cfg.Duration or a non-nil
// cfg.Rate overrides the run time and rate of every animation in the call.
func (s *Scheduler) Play(cfg anim.Config, anims ...anim.Animation) error {
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("play[%d]", s.plays)
	}
	p, err := anim.NewParallel(cfg, anims...)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Name, err)
	}
	s.plays++
	s.queue = append(s.queue, entry{name: cfg.Name, play: p})
	return nil
}

// Wait queues a pause of d seconds.
func (s *Scheduler) Wait(d float64) error {
	w, err := anim.Wait(d)
	if err != nil {
		return err
	}
	s.queue = append(s.queue, entry{name: "wait", play: w})
	return nil
}

// Do queues fn to run when the clock reaches it, between play calls.
func (s *Scheduler) Do(name string, fn func() error) {
	s.queue = append(s.queue, entry{name: name, action: fn})
}

// Advance moves the clock forward by dt seconds and steps the running play
// call. Time left over when a call finishes carries into the next one. It
// reports whether the scheduler is idle afterwards.
//
// An error from an animation or action abandons the current call; objects
// keep whatever state the last step left them in.
func (s *Scheduler) Advance(dt float64) (bool, error) {
	if !(dt >= 0) {
		return s.Idle(), fmt.Errorf("%w: %g", ErrNegativeStep, dt)
	}
	s.clock += dt
	budget := dt
	for {
		if s.current == nil {
			if len(s.queue) == 0 {
				return true, nil
			}
			e := s.queue[0]
			s.queue = s.queue[1:]
			if e.action != nil {
				if err := e.action(); err != nil {
					s.logger.Error("scene action failed", "action", e.name, "error", err)
					return s.Idle(), fmt.Errorf("%s: %w", e.name, err)
				}
				continue
			}
			s.current = e.play
			s.elapsed = 0
			if err := s.current.Begin(); err != nil {
				s.fail(err)
				return s.Idle(), err
			}
			s.logger.Info("play started", "play", e.name, "clock", s.clock-budget, "duration", s.current.Duration())
		}

		s.elapsed += budget
		done := s.current.Step(s.elapsed)
		if err := s.current.Err(); err != nil {
			s.fail(err)
			return s.Idle(), err
		}
		if !done {
			return false, nil
		}
		budget = math.Max(0, s.elapsed-s.current.Duration())
		s.logger.Info("play finished", "play", s.current.Name(), "clock", s.clock-budget)
		s.current = nil
	}
}

func (s *Scheduler) fail(err error) {
	s.logger.Error("play failed", "play", s.current.Name(), "error", err)
	s.current = nil
}

// Cancel abandons the running and queued play calls. Objects keep their
// partial state; nothing is rolled back.
func (s *Scheduler) Cancel() {
	if s.current != nil {
		s.logger.Info("play cancelled", "play", s.current.Name(), "clock", s.clock)
	}
	s.current = nil
	s.queue = nil
}
