package shape

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient stores a look-up table of colours blended in HCL.
type Gradient []struct {
	Color colorful.Color
	Pos   float64
}

// NewGradient spaces the hex colours evenly over [0,1].
func NewGradient(hexes ...string) (Gradient, error) {
	if len(hexes) < 2 {
		return nil, fmt.Errorf("shape: gradient needs at least 2 colours, got %d", len(hexes))
	}
	g := make(Gradient, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("shape: gradient colour %q: %w", h, err)
		}
		g[i].Color = c
		g[i].Pos = float64(i) / float64(len(hexes)-1)
	}
	return g, nil
}

// At gets the colour at the specified point on the look-up table.
func (g Gradient) At(t float64) colorful.Color {
	if t <= g[0].Pos {
		return g[0].Color
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			// We are in between c1 and c2. Go blend them!
			return blendColor(c1.Color, c2.Color, (t-c1.Pos)/(c2.Pos-c1.Pos))
		}
	}

	// Nothing found? Means we're at (or past) the last gradient keypoint.
	return g[len(g)-1].Color
}
