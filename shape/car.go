package shape

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// A Wheel is attached to a car at Offset, expressed in the car's frame with
// the front contact point as origin.
type Wheel struct {
	Offset Vec
	Radius float64
	Angle  float64
}

// A Car is a Body on wheels. Its position is the front contact point, so
// MoveTo parks the front bumper on the given point.
type Car struct {
	Body
	Length float64
	Height float64
	Wheels []Wheel

	carMemo memo
	target  *Car
}

// CarState is a snapshot of a Car.
type CarState struct {
	Body        BodyState
	WheelAngles []float64
}

// NewCar creates a car of the given height facing along +x with its front
// contact point at the origin.
func NewCar(name string, height float64, c colorful.Color) *Car {
	car := new(Car)
	car.Body = *NewBody(name, Vec{}, c)
	car.Height = height
	car.Length = 2.5 * height
	radius := 0.18 * height
	car.Wheels = []Wheel{
		{Offset: Vec{X: -0.2 * car.Length, Y: radius}, Radius: radius},
		{Offset: Vec{X: -0.8 * car.Length, Y: radius}, Radius: radius},
	}
	return car
}

// Snapshot implements Transformable.
func (c *Car) Snapshot() State {
	angles := make([]float64, len(c.Wheels))
	for i, w := range c.Wheels {
		angles[i] = w.Angle
	}
	return CarState{Body: c.Body.state(), WheelAngles: angles}
}

// Restore implements Transformable.
func (c *Car) Restore(s State) error {
	cs, ok := s.(CarState)
	if !ok || len(cs.WheelAngles) != len(c.Wheels) {
		return mismatch("CarState", s)
	}
	c.Body.set(cs.Body)
	for i := range c.Wheels {
		c.Wheels[i].Angle = cs.WheelAngles[i]
	}
	return nil
}

// Interpolate implements Transformable. Wheel angles interpolate linearly
// with the same alpha as the position, which keeps rolling consistent.
func (c *Car) Interpolate(start, end State, alpha float64) error {
	s, ok := start.(CarState)
	if !ok || len(s.WheelAngles) != len(c.Wheels) {
		return mismatch("CarState", start)
	}
	e, ok := end.(CarState)
	if !ok || len(e.WheelAngles) != len(c.Wheels) {
		return mismatch("CarState", end)
	}
	c.Body.set(lerpBody(s.Body, e.Body, alpha))
	for i := range c.Wheels {
		c.Wheels[i].Angle = Lerp(s.WheelAngles[i], e.WheelAngles[i], alpha)
	}
	return nil
}

// WheelRadius implements Wheeled.
func (c *Car) WheelRadius() float64 {
	if len(c.Wheels) == 0 {
		return 0
	}
	return c.Wheels[0].Radius
}

// RotateWheels implements Wheeled.
func (c *Car) RotateWheels(radians float64) {
	for i := range c.Wheels {
		c.Wheels[i].Angle += radians
	}
}

// WheelCenter returns the drawing-space centre of wheel i.
func (c *Car) WheelCenter(i int) Vec {
	return c.Pos.Add(c.Wheels[i].Offset.Rotate(c.Rotation))
}

// Rear returns the rear contact point.
func (c *Car) Rear() Vec {
	return c.Pos.Add(Vec{X: -c.Length}.Rotate(c.Rotation))
}

// FrontLine is the vertical line across the front bumper.
func (c *Car) FrontLine(col colorful.Color) *Path {
	top := c.Pos.Add(Vec{Y: c.Height}.Rotate(c.Rotation))
	return NewLine(c.Name+".front", top, c.Pos, col)
}

// SaveState remembers the current state for a later Restore animation.
func (c *Car) SaveState() {
	c.carMemo.remember(c.Snapshot())
}

// SavedState returns the state remembered by SaveState.
func (c *Car) SavedState() (State, bool) {
	return c.carMemo.recall()
}

// GenerateTarget returns a copy of the car to be mutated and animated towards.
func (c *Car) GenerateTarget() *Car {
	t := new(Car)
	*t = *c
	t.Wheels = append([]Wheel(nil), c.Wheels...)
	t.target = nil
	c.target = t
	return t
}

// TargetState returns the state of the generated target, if any.
func (c *Car) TargetState() (State, bool) {
	if c.target == nil {
		return nil, false
	}
	return c.target.Snapshot(), true
}

// Elements renders the body outline and one spoke per wheel.
func (c *Car) Elements() []Element {
	up := Vec{Y: c.Height}.Rotate(c.Rotation)
	outline := []Vec{c.Pos, c.Pos.Add(up), c.Rear().Add(up), c.Rear(), c.Pos}
	out := []Element{element(c.Name, "car", outline, c.Color, c.Alpha)}
	for i, w := range c.Wheels {
		center := c.WheelCenter(i)
		spoke := center.Add(Vec{X: w.Radius}.Rotate(c.Rotation + w.Angle))
		out = append(out, element(c.Name+".wheel", "wheel", []Vec{center, spoke}, c.Color, c.Alpha))
	}
	return out
}

// Revolutions is how many full turns wheel i has made from zero.
func (c *Car) Revolutions(i int) float64 {
	return c.Wheels[i].Angle / (2 * math.Pi)
}
