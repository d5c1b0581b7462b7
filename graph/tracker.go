package graph

import (
	"errors"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/derivanim/shape"
	"github.com/matt-g-everett/derivanim/util"
)

// A Tracker keeps a dot on a curve at a moving input. When an input falls
// outside the curve the dot holds at the last point that was valid.
type Tracker struct {
	Dot *shape.Body

	curve  *Curve
	input  float64
	logger *slog.Logger
}

// NewTracker places a dot on c at t. A nil logger discards output.
func NewTracker(c *Curve, t float64, col colorful.Color, logger *slog.Logger) (*Tracker, error) {
	p, err := c.InputToGraphPoint(t)
	if err != nil {
		return nil, err
	}
	tr := &Tracker{
		Dot:    shape.NewBody(c.Name+".dot", p, col),
		curve:  c,
		input:  t,
		logger: util.OrNop(logger),
	}
	tr.Dot.Size = 0.08
	return tr, nil
}

// Input returns the last input that mapped onto the curve.
func (tr *Tracker) Input() float64 { return tr.input }

// Set moves the dot to the curve at t. A DomainError leaves the dot where
// it was and is not returned; other errors are.
func (tr *Tracker) Set(t float64) error {
	p, err := tr.curve.InputToGraphPoint(t)
	var de *DomainError
	if errors.As(err, &de) {
		tr.logger.Debug("tracker input off curve, holding", "curve", tr.curve.Name, "input", t, "held", tr.input)
		return nil
	}
	if err != nil {
		return err
	}
	tr.Dot.MoveTo(p)
	tr.input = t
	return nil
}
