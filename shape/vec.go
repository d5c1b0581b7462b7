package shape

import "math"

// Vec is a point or displacement in drawing space.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Norm() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Norm() }
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

// Rotate turns v by radians about the origin.
func (v Vec) Rotate(radians float64) Vec {
	s, c := math.Sincos(radians)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// RotateAbout turns v by radians about center.
func (v Vec) RotateAbout(center Vec, radians float64) Vec {
	return v.Sub(center).Rotate(radians).Add(center)
}

// Lerp interpolates between a and b. The weighted form returns a exactly at
// t=0 and b exactly at t=1.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
