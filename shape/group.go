package shape

// A Group animates its members together. Its state is the ordered list of
// member states.
type Group struct {
	Name    string
	Members []Transformable

	memo memo
}

// GroupState is a snapshot of a Group.
type GroupState []State

// NewGroup creates a group of members.
func NewGroup(name string, members ...Transformable) *Group {
	g := new(Group)
	g.Name = name
	g.Members = members
	return g
}

// Add appends members.
func (g *Group) Add(members ...Transformable) {
	g.Members = append(g.Members, members...)
}

// Snapshot implements Transformable.
func (g *Group) Snapshot() State {
	s := make(GroupState, len(g.Members))
	for i, m := range g.Members {
		s[i] = m.Snapshot()
	}
	return s
}

// Restore implements Transformable.
func (g *Group) Restore(s State) error {
	gs, ok := s.(GroupState)
	if !ok || len(gs) != len(g.Members) {
		return mismatch("GroupState", s)
	}
	for i, m := range g.Members {
		if err := m.Restore(gs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Interpolate implements Transformable.
func (g *Group) Interpolate(start, end State, alpha float64) error {
	s, ok := start.(GroupState)
	if !ok || len(s) != len(g.Members) {
		return mismatch("GroupState", start)
	}
	e, ok := end.(GroupState)
	if !ok || len(e) != len(g.Members) {
		return mismatch("GroupState", end)
	}
	for i, m := range g.Members {
		if err := m.Interpolate(s[i], e[i], alpha); err != nil {
			return err
		}
	}
	return nil
}

// RotateAbout turns every rotatable member.
func (g *Group) RotateAbout(center Vec, radians float64) {
	for _, m := range g.Members {
		if r, ok := m.(Rotatable); ok {
			r.RotateAbout(center, radians)
		}
	}
}

// Opacity reports the first fading member's opacity.
func (g *Group) Opacity() float64 {
	for _, m := range g.Members {
		if f, ok := m.(Fader); ok {
			return f.Opacity()
		}
	}
	return 1
}

// SetOpacity sets the opacity of every fading member.
func (g *Group) SetOpacity(o float64) {
	for _, m := range g.Members {
		if f, ok := m.(Fader); ok {
			f.SetOpacity(o)
		}
	}
}

// SaveState remembers the current state for a later Restore animation.
func (g *Group) SaveState() {
	g.memo.remember(g.Snapshot())
}

// SavedState returns the state remembered by SaveState.
func (g *Group) SavedState() (State, bool) {
	return g.memo.recall()
}

// Elements renders every renderable member.
func (g *Group) Elements() []Element {
	var out []Element
	for _, m := range g.Members {
		if r, ok := m.(Renderable); ok {
			out = append(out, r.Elements()...)
		}
	}
	return out
}
