package shape

import (
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// A Number is a numeric label. Value is continuous so it can be
// interpolated; Text shows it rounded to Decimals places.
type Number struct {
	Name     string
	Value    float64
	Decimals int
	Pos      Vec
	Color    colorful.Color
	Alpha    float64

	memo memo
}

// NumberState is a snapshot of a Number.
type NumberState struct {
	Value float64
	Pos   Vec
	Color colorful.Color
	Alpha float64
}

// NewNumber creates an integer label showing v at p.
func NewNumber(name string, v float64, p Vec, c colorful.Color) *Number {
	n := new(Number)
	n.Name = name
	n.Value = v
	n.Pos = p
	n.Color = c
	n.Alpha = 1
	return n
}

// Snapshot implements Transformable.
func (n *Number) Snapshot() State {
	return NumberState{Value: n.Value, Pos: n.Pos, Color: n.Color, Alpha: n.Alpha}
}

// Restore implements Transformable.
func (n *Number) Restore(s State) error {
	ns, ok := s.(NumberState)
	if !ok {
		return mismatch("NumberState", s)
	}
	n.Value = ns.Value
	n.Pos = ns.Pos
	n.Color = ns.Color
	n.Alpha = ns.Alpha
	return nil
}

// Interpolate implements Transformable.
func (n *Number) Interpolate(start, end State, alpha float64) error {
	s, ok := start.(NumberState)
	if !ok {
		return mismatch("NumberState", start)
	}
	e, ok := end.(NumberState)
	if !ok {
		return mismatch("NumberState", end)
	}
	n.Value = Lerp(s.Value, e.Value, alpha)
	n.Pos = s.Pos.Lerp(e.Pos, alpha)
	n.Color = blendColor(s.Color, e.Color, alpha)
	n.Alpha = Lerp(s.Alpha, e.Alpha, alpha)
	return nil
}

// Text is the displayed form of the value.
func (n *Number) Text() string {
	scale := math.Pow(10, float64(n.Decimals))
	v := math.Round(n.Value*scale) / scale
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', n.Decimals, 64)
}

// With returns a copy of the number's state showing v instead.
func (n *Number) With(v float64) NumberState {
	s := n.Snapshot().(NumberState)
	s.Value = v
	return s
}

func (n *Number) Position() Vec { return n.Pos }
func (n *Number) MoveTo(p Vec) { n.Pos = p }
func (n *Number) Opacity() float64 { return n.Alpha }
func (n *Number) SetOpacity(o float64) { n.Alpha = o }

// SaveState remembers the current state for a later Restore animation.
func (n *Number) SaveState() {
	n.memo.remember(n.Snapshot())
}

// SavedState returns the state remembered by SaveState.
func (n *Number) SavedState() (State, bool) {
	return n.memo.recall()
}

// Elements renders the label at its position.
func (n *Number) Elements() []Element {
	e := element(n.Name, "text", []Vec{n.Pos}, n.Color, n.Alpha)
	e.Label = n.Text()
	return []Element{e}
}
