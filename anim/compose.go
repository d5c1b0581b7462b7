package anim

import (
	"fmt"

	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/util"
)

// SequenceState is the phase of a Sequence.
type SequenceState int

const (
	Pending SequenceState = iota
	Active
	Done
)

func (s SequenceState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Done:
		return "done"
	}
	return fmt.Sprintf("SequenceState(%d)", int(s))
}

// A Sequence plays its children one after another. Elapsed time maps onto
// children by cumulative duration, so children may have different lengths.
// A child begins only after its predecessor has been stepped to its end.
type Sequence struct {
	name     string
	children []Animation
	starts   []float64
	total    float64
	duration float64
	rate     rate.Func
	state    SequenceState
	active   int
}

// NewSequence chains children. A positive cfg.Duration stretches or squeezes
// the whole chain to that length; zero keeps the sum of the children. A nil
// cfg.Rate is linear.
func NewSequence(cfg Config, children ...Animation) (*Sequence, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidDuration)
	}
	s := &Sequence{name: cfg.Name, children: children, rate: cfg.Rate}
	if s.name == "" {
		s.name = "sequence"
	}
	s.starts = make([]float64, len(children))
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: nil child %d", ErrUnsupportedTarget, i)
		}
		s.starts[i] = s.total
		s.total += c.Duration()
	}
	s.duration = s.total
	if cfg.Duration != 0 {
		if err := s.SetDuration(cfg.Duration); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sequence) Name() string { return s.name }
func (s *Sequence) Duration() float64 { return s.duration }
func (s *Sequence) Finished() bool { return s.state == Done }
func (s *Sequence) State() SequenceState { return s.state }
func (s *Sequence) Children() []Animation { return s.children }

// ActiveIndex is the index of the running child, or -1 when none is.
func (s *Sequence) ActiveIndex() int {
	if s.state != Active {
		return -1
	}
	return s.active
}

// Err returns the first child error.
func (s *Sequence) Err() error {
	for _, c := range s.children {
		if err := c.Err(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// SetDuration implements Retimable; children keep their relative lengths.
func (s *Sequence) SetDuration(d float64) error {
	if err := validDuration(d); err != nil {
		return err
	}
	s.duration = d
	return nil
}

// SetRate implements Retimable. The rate warps the sequence's own clock.
func (s *Sequence) SetRate(f rate.Func) {
	if f != nil {
		s.rate = f
	}
}

// Begin implements Animation.
func (s *Sequence) Begin() error {
	if s.state != Pending {
		return nil
	}
	s.state = Active
	s.active = 0
	return s.children[0].Begin()
}

// local maps elapsed sequence time onto the children's timeline.
func (s *Sequence) local(elapsed float64) float64 {
	if s.rate == nil {
		if s.duration == s.total {
			return elapsed
		}
		return elapsed * (s.total / s.duration)
	}
	return s.rate(util.Clamp(elapsed/s.duration, 0, 1)) * s.total
}

// Step implements Animation.
func (s *Sequence) Step(elapsed float64) bool {
	if s.state == Done {
		return true
	}
	if s.state == Pending {
		s.Begin()
	}

	final := elapsed >= s.duration
	local := s.local(elapsed)
	for s.active < len(s.children) {
		c := s.children[s.active]
		d := c.Duration()
		cl := local - s.starts[s.active]
		if cl < d && !final {
			c.Step(cl)
			break
		}
		c.Step(d)
		s.active++
		if s.active < len(s.children) {
			s.children[s.active].Begin()
		}
	}
	if s.active >= len(s.children) {
		s.state = Done
	}
	return s.state == Done
}

// A Parallel plays its children together. Every child sees the same elapsed
// time; the group finishes once all children have.
type Parallel struct {
	name     string
	children []Animation
	duration float64
	begun    bool
	done     bool
}

// NewParallel groups children. A positive cfg.Duration or a non-nil
// cfg.Rate is applied to every child, as a play call's run time would be.
func NewParallel(cfg Config, children ...Animation) (*Parallel, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: empty group", ErrInvalidDuration)
	}
	p := &Parallel{name: cfg.Name, children: children}
	if p.name == "" {
		p.name = "parallel"
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: nil child %d", ErrUnsupportedTarget, i)
		}
		if cfg.Duration != 0 {
			if err := retime(c, cfg.Duration); err != nil {
				return nil, err
			}
		}
		if cfg.Rate != nil {
			if r, ok := c.(Retimable); ok {
				r.SetRate(cfg.Rate)
			}
		}
		if c.Duration() > p.duration {
			p.duration = c.Duration()
		}
	}
	return p, nil
}

func retime(a Animation, d float64) error {
	r, ok := a.(Retimable)
	if !ok {
		return fmt.Errorf("%w: %s cannot be retimed", ErrUnsupportedTarget, a.Name())
	}
	return r.SetDuration(d)
}

func (p *Parallel) Name() string { return p.name }
func (p *Parallel) Duration() float64 { return p.duration }
func (p *Parallel) Finished() bool { return p.done }
func (p *Parallel) Children() []Animation { return p.children }

// Err returns the first child error.
func (p *Parallel) Err() error {
	for _, c := range p.children {
		if err := c.Err(); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}
	return nil
}

// SetDuration implements Retimable by retiming every child.
func (p *Parallel) SetDuration(d float64) error {
	if err := validDuration(d); err != nil {
		return err
	}
	for _, c := range p.children {
		if err := retime(c, d); err != nil {
			return err
		}
	}
	p.duration = d
	return nil
}

// SetRate implements Retimable by passing f to every child.
func (p *Parallel) SetRate(f rate.Func) {
	for _, c := range p.children {
		if r, ok := c.(Retimable); ok {
			r.SetRate(f)
		}
	}
}

// Begin implements Animation.
func (p *Parallel) Begin() error {
	if p.begun {
		return nil
	}
	p.begun = true
	var first error
	for _, c := range p.children {
		if err := c.Begin(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Step implements Animation.
func (p *Parallel) Step(elapsed float64) bool {
	if p.done {
		return true
	}
	if !p.begun {
		p.Begin()
	}
	all := true
	for _, c := range p.children {
		if !c.Step(elapsed) {
			all = false
		}
	}
	p.done = all
	return p.done
}
