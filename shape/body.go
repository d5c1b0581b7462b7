package shape

import "github.com/lucasb-eyer/go-colorful"

// A Body is a rigid object with a placement, orientation, scale and colour.
type Body struct {
	Name     string
	Pos      Vec
	Rotation float64
	Size     float64
	Color    colorful.Color
	Alpha    float64

	memo   memo
	target *Body
}

// BodyState is a snapshot of a Body.
type BodyState struct {
	Pos      Vec
	Rotation float64
	Size     float64
	Color    colorful.Color
	Alpha    float64
}

// NewBody creates an opaque Body of unit size at p.
func NewBody(name string, p Vec, c colorful.Color) *Body {
	b := new(Body)
	b.Name = name
	b.Pos = p
	b.Size = 1
	b.Color = c
	b.Alpha = 1
	return b
}

func (b *Body) state() BodyState {
	return BodyState{Pos: b.Pos, Rotation: b.Rotation, Size: b.Size, Color: b.Color, Alpha: b.Alpha}
}

func (b *Body) set(s BodyState) {
	b.Pos = s.Pos
	b.Rotation = s.Rotation
	b.Size = s.Size
	b.Color = s.Color
	b.Alpha = s.Alpha
}

// Snapshot implements Transformable.
func (b *Body) Snapshot() State {
	return b.state()
}

// Restore implements Transformable.
func (b *Body) Restore(s State) error {
	bs, ok := s.(BodyState)
	if !ok {
		return mismatch("BodyState", s)
	}
	b.set(bs)
	return nil
}

// Interpolate implements Transformable.
func (b *Body) Interpolate(start, end State, alpha float64) error {
	s, ok := start.(BodyState)
	if !ok {
		return mismatch("BodyState", start)
	}
	e, ok := end.(BodyState)
	if !ok {
		return mismatch("BodyState", end)
	}
	b.set(lerpBody(s, e, alpha))
	return nil
}

func lerpBody(s, e BodyState, alpha float64) BodyState {
	return BodyState{
		Pos:      s.Pos.Lerp(e.Pos, alpha),
		Rotation: Lerp(s.Rotation, e.Rotation, alpha),
		Size:     Lerp(s.Size, e.Size, alpha),
		Color:    blendColor(s.Color, e.Color, alpha),
		Alpha:    Lerp(s.Alpha, e.Alpha, alpha),
	}
}

func (b *Body) Position() Vec { return b.Pos }
func (b *Body) MoveTo(p Vec) { b.Pos = p }
func (b *Body) Shift(d Vec) { b.Pos = b.Pos.Add(d) }
func (b *Body) Opacity() float64 { return b.Alpha }
func (b *Body) SetOpacity(o float64) { b.Alpha = o }
func (b *Body) SetColor(c colorful.Color) { b.Color = c }

// RotateAbout turns the body about center, moving its position with it.
func (b *Body) RotateAbout(center Vec, radians float64) {
	b.Pos = b.Pos.RotateAbout(center, radians)
	b.Rotation += radians
}

// SaveState remembers the current state for a later Restore animation.
func (b *Body) SaveState() {
	b.memo.remember(b.Snapshot())
}

// SavedState returns the state remembered by SaveState.
func (b *Body) SavedState() (State, bool) {
	return b.memo.recall()
}

// GenerateTarget returns a copy of the body that can be mutated freely and
// later animated towards with MoveToTarget.
func (b *Body) GenerateTarget() *Body {
	t := new(Body)
	*t = *b
	t.target = nil
	b.target = t
	return t
}

// TargetState returns the state of the generated target, if any.
func (b *Body) TargetState() (State, bool) {
	if b.target == nil {
		return nil, false
	}
	return b.target.Snapshot(), true
}

// Elements renders the body as its position and a heading marker.
func (b *Body) Elements() []Element {
	heading := b.Pos.Add(Vec{X: b.Size}.Rotate(b.Rotation))
	return []Element{element(b.Name, "body", []Vec{b.Pos, heading}, b.Color, b.Alpha)}
}
