package shape

import "github.com/lucasb-eyer/go-colorful"

// A Path is an open polyline with a stroke. Drawn is the proportion of its
// arc length currently visible.
type Path struct {
	Name   string
	Points []Vec
	Color  colorful.Color
	Width  float64
	Alpha  float64
	Drawn  float64

	memo memo
}

// PathState is a snapshot of a Path.
type PathState struct {
	Points []Vec
	Color  colorful.Color
	Width  float64
	Alpha  float64
	Drawn  float64
}

// NewPath creates a fully drawn path through points.
func NewPath(name string, points []Vec, c colorful.Color) *Path {
	p := new(Path)
	p.Name = name
	p.Points = append([]Vec(nil), points...)
	p.Color = c
	p.Width = 2
	p.Alpha = 1
	p.Drawn = 1
	return p
}

// NewLine creates a straight two-point path.
func NewLine(name string, start, end Vec, c colorful.Color) *Path {
	return NewPath(name, []Vec{start, end}, c)
}

func (p *Path) state() PathState {
	return PathState{
		Points: append([]Vec(nil), p.Points...),
		Color:  p.Color,
		Width:  p.Width,
		Alpha:  p.Alpha,
		Drawn:  p.Drawn,
	}
}

func (p *Path) set(s PathState) {
	p.Points = append(p.Points[:0], s.Points...)
	p.Color = s.Color
	p.Width = s.Width
	p.Alpha = s.Alpha
	p.Drawn = s.Drawn
}

// Snapshot implements Transformable.
func (p *Path) Snapshot() State {
	return p.state()
}

// Restore implements Transformable.
func (p *Path) Restore(s State) error {
	ps, ok := s.(PathState)
	if !ok {
		return mismatch("PathState", s)
	}
	p.set(ps)
	return nil
}

// Interpolate implements Transformable. Paths with different point counts
// are resampled by arc length to the larger count first.
func (p *Path) Interpolate(start, end State, alpha float64) error {
	s, ok := start.(PathState)
	if !ok {
		return mismatch("PathState", start)
	}
	e, ok := end.(PathState)
	if !ok {
		return mismatch("PathState", end)
	}

	sp, ep := alignPoints(s.Points, e.Points)
	points := p.Points[:0]
	for i := range sp {
		points = append(points, sp[i].Lerp(ep[i], alpha))
	}
	p.Points = points
	p.Color = blendColor(s.Color, e.Color, alpha)
	p.Width = Lerp(s.Width, e.Width, alpha)
	p.Alpha = Lerp(s.Alpha, e.Alpha, alpha)
	p.Drawn = Lerp(s.Drawn, e.Drawn, alpha)
	return nil
}

func alignPoints(a, b []Vec) ([]Vec, []Vec) {
	switch {
	case len(a) == len(b):
		return a, b
	case len(a) == 0:
		return b, b
	case len(b) == 0:
		return a, a
	case len(a) < len(b):
		return Resample(a, len(b)), b
	default:
		return a, Resample(b, len(a))
	}
}

// Length is the arc length of the path.
func (p *Path) Length() float64 {
	return arcLength(p.Points)
}

func arcLength(points []Vec) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i].Dist(points[i-1])
	}
	return total
}

// PointFromProportion returns the point at fraction q of the arc length. q is
// clamped to [0,1]; the endpoints are returned exactly.
func (p *Path) PointFromProportion(q float64) Vec {
	return pointAlong(p.Points, q)
}

func pointAlong(points []Vec, q float64) Vec {
	n := len(points)
	switch {
	case n == 0:
		return Vec{}
	case q <= 0 || n == 1:
		return points[0]
	case q >= 1:
		return points[n-1]
	}

	total := arcLength(points)
	if total == 0 {
		return points[0]
	}
	want := q * total
	walked := 0.0
	for i := 1; i < n; i++ {
		seg := points[i].Dist(points[i-1])
		if walked+seg >= want && seg > 0 {
			return points[i-1].Lerp(points[i], (want-walked)/seg)
		}
		walked += seg
	}
	return points[n-1]
}

// Resample returns n points spaced evenly by arc length along points.
func Resample(points []Vec, n int) []Vec {
	out := make([]Vec, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = pointAlong(points, 0)
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = pointAlong(points, float64(i)/float64(n-1))
	}
	return out
}

// Visible returns the drawn prefix of the path.
func (p *Path) Visible() []Vec {
	if p.Drawn >= 1 {
		return append([]Vec(nil), p.Points...)
	}
	if p.Drawn <= 0 || len(p.Points) == 0 {
		return nil
	}
	total := p.Length()
	want := p.Drawn * total
	out := []Vec{p.Points[0]}
	walked := 0.0
	for i := 1; i < len(p.Points); i++ {
		seg := p.Points[i].Dist(p.Points[i-1])
		if walked+seg >= want {
			if seg > 0 {
				out = append(out, p.Points[i-1].Lerp(p.Points[i], (want-walked)/seg))
			}
			return out
		}
		out = append(out, p.Points[i])
		walked += seg
	}
	return out
}

// Start returns the first point.
func (p *Path) Start() Vec { return pointAlong(p.Points, 0) }

// End returns the last point.
func (p *Path) End() Vec { return pointAlong(p.Points, 1) }

// PutStartAndEnd turns the path into the straight line from start to end.
func (p *Path) PutStartAndEnd(start, end Vec) {
	p.Points = append(p.Points[:0], start, end)
}

func (p *Path) Shift(d Vec) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(d)
	}
}

func (p *Path) RotateAbout(center Vec, radians float64) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].RotateAbout(center, radians)
	}
}

func (p *Path) Opacity() float64 { return p.Alpha }
func (p *Path) SetOpacity(o float64) { p.Alpha = o }
func (p *Path) DrawnProportion() float64 { return p.Drawn }
func (p *Path) SetDrawnProportion(q float64) { p.Drawn = q }

// SaveState remembers the current state for a later Restore animation.
func (p *Path) SaveState() {
	p.memo.remember(p.Snapshot())
}

// SavedState returns the state remembered by SaveState.
func (p *Path) SavedState() (State, bool) {
	return p.memo.recall()
}

// Elements renders the visible part of the path.
func (p *Path) Elements() []Element {
	return []Element{element(p.Name, "path", p.Visible(), p.Color, p.Alpha)}
}
