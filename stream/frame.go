package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/derivanim/shape"
	"github.com/matt-g-everett/derivanim/util"
)

// Kind codes used in the binary encoding.
const (
	kindUnknown byte = iota
	kindPath
	kindBody
	kindCar
	kindWheel
	kindText
)

var kindCodes = map[string]byte{
	"path":  kindPath,
	"body":  kindBody,
	"car":   kindCar,
	"wheel": kindWheel,
	"text":  kindText,
}

// Frame is everything visible at one tick of a scene.
type Frame struct {
	Index    uint32          `json:"index"`
	Clock    float64         `json:"clock"`
	Scene    string          `json:"scene"`
	Elements []shape.Element `json:"elements"`
}

// NewFrame creates a new Frame instance.
func NewFrame(index uint32, clock float64, scene string, elements []shape.Element) *Frame {
	f := new(Frame)
	f.Index = index
	f.Clock = clock
	f.Scene = scene
	f.Elements = elements
	return f
}

// InterpolateFrame blends f into f2 by transitionPoint in [0,1]. Elements
// with the same name and kind in both frames morph into each other: points
// lerp and colours blend in HCL. The rest fade out of f and into f2.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	t := util.Clamp(transitionPoint, 0, 1)
	out := NewFrame(f2.Index, f2.Clock, f2.Scene, nil)

	type key struct{ name, kind string }
	later := make(map[key]int, len(f2.Elements))
	for i, e := range f2.Elements {
		k := key{e.Name, e.Kind}
		if _, ok := later[k]; !ok {
			later[k] = i
		}
	}
	matched := make(map[int]bool)
	for _, e := range f.Elements {
		k := key{e.Name, e.Kind}
		if j, ok := later[k]; ok && !matched[j] {
			matched[j] = true
			out.Elements = append(out.Elements, blendElement(e, f2.Elements[j], t))
			continue
		}
		out.Elements = append(out.Elements, fade(e, 1-t))
	}
	for j, e := range f2.Elements {
		if !matched[j] {
			out.Elements = append(out.Elements, fade(e, t))
		}
	}
	return out
}

func fade(e shape.Element, by float64) shape.Element {
	e.Opacity *= by
	return e
}

func blendElement(a, b shape.Element, t float64) shape.Element {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	out := b
	pa, pb := a.Points, b.Points
	if len(pa) != len(pb) && len(pa) > 0 && len(pb) > 0 {
		n := len(pa)
		if len(pb) > n {
			n = len(pb)
		}
		pa, pb = shape.Resample(pa, n), shape.Resample(pb, n)
	}
	if len(pa) == len(pb) {
		out.Points = make([]shape.Vec, len(pa))
		for i := range pa {
			out.Points[i] = pa[i].Lerp(pb[i], t)
		}
	}
	out.Color = a.Color.BlendHcl(b.Color, t).Clamped()
	out.Hex = out.Color.Hex()
	out.Opacity = shape.Lerp(a.Opacity, b.Opacity, t)
	if t < 0.5 {
		out.Label = a.Label
	}
	return out
}

// MarshalBinary converts a Frame into binary data, little endian:
//
//	uint32 index, float64 clock, uint16 element count, then per element
//	uint8 kind, 3 bytes RGB, uint8 opacity, uint16 point count,
//	float32 x and y per point, uint16 label length and the label bytes.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Elements) > math.MaxUint16 {
		return nil, fmt.Errorf("stream: %d elements in frame", len(f.Elements))
	}
	data = make([]byte, 0, 14+len(f.Elements)*16)
	data = binary.LittleEndian.AppendUint32(data, f.Index)
	data = binary.LittleEndian.AppendUint64(data, math.Float64bits(f.Clock))
	data = binary.LittleEndian.AppendUint16(data, uint16(len(f.Elements)))
	for _, e := range f.Elements {
		if len(e.Points) > math.MaxUint16 || len(e.Label) > math.MaxUint16 {
			return nil, fmt.Errorf("stream: element %s too large to encode", e.Name)
		}
		r, g, b := colorOf(e).RGB255()
		data = append(data, kindCodes[e.Kind], r, g, b, opacityByte(e.Opacity))
		data = binary.LittleEndian.AppendUint16(data, uint16(len(e.Points)))
		for _, p := range e.Points {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(p.X)))
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(p.Y)))
		}
		data = binary.LittleEndian.AppendUint16(data, uint16(len(e.Label)))
		data = append(data, e.Label...)
	}
	return data, nil
}

// colorOf prefers the element's colour and falls back to its hex string.
func colorOf(e shape.Element) colorful.Color {
	if e.Color == (colorful.Color{}) && e.Hex != "" {
		if c, err := colorful.Hex(e.Hex); err == nil {
			return c
		}
	}
	return e.Color.Clamped()
}

func opacityByte(o float64) byte {
	return byte(math.Round(util.Clamp(o, 0, 1) * 255))
}
