package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/derivanim/graph"
	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

// Palette names the scene colours as hex strings.
type Palette struct {
	Axis      string   `yaml:"axis"`
	Distance  string   `yaml:"distance"`
	Velocity  string   `yaml:"velocity"`
	Car       string   `yaml:"car"`
	Secant    string   `yaml:"secant"`
	Highlight string   `yaml:"highlight"`
	Text      string   `yaml:"text"`
	Gauge     []string `yaml:"gauge"`
}

// Colors is a resolved Palette.
type Colors struct {
	Axis      colorful.Color
	Distance  colorful.Color
	Velocity  colorful.Color
	Car       colorful.Color
	Secant    colorful.Color
	Highlight colorful.Color
	Text      colorful.Color
	Gauge     shape.Gradient
}

// Config is everything a scene needs from outside.
type Config struct {
	Palette Palette `yaml:"palette"`
	// DerivativeStep is the forward-difference dt for velocity graphs.
	DerivativeStep float64 `yaml:"derivativeStep"`
	// SampleCount is the number of samples per graph.
	SampleCount int              `yaml:"sampleCount"`
	Axes        graph.AxesConfig `yaml:"axes"`
	// Rate names the rate function used for the main motion of each scene.
	Rate string `yaml:"rate"`
	// Lut, when positive, tabulates Rate with that many entries.
	Lut int `yaml:"lut"`
}

// DefaultConfig returns the stock palette and graph settings.
func DefaultConfig() Config {
	return Config{
		Palette: Palette{
			Axis:      "#bbbbbb",
			Distance:  "#58c4dd",
			Velocity:  "#83c167",
			Car:       "#fc6255",
			Secant:    "#ffff00",
			Highlight: "#ffffff",
			Text:      "#ffffff",
			Gauge:     []string{"#83c167", "#ffff00", "#fc6255"},
		},
		DerivativeStep: 0.01,
		SampleCount:    graph.DefaultSampleCount,
		Axes:           graph.DefaultAxesConfig(),
		Rate:           "smooth",
	}
}

// Defaults fills zero fields from DefaultConfig.
func (c *Config) Defaults() {
	def := DefaultConfig()
	p := &c.Palette
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&p.Axis, def.Palette.Axis},
		{&p.Distance, def.Palette.Distance},
		{&p.Velocity, def.Palette.Velocity},
		{&p.Car, def.Palette.Car},
		{&p.Secant, def.Palette.Secant},
		{&p.Highlight, def.Palette.Highlight},
		{&p.Text, def.Palette.Text},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
	if len(p.Gauge) == 0 {
		p.Gauge = def.Palette.Gauge
	}
	if c.DerivativeStep == 0 {
		c.DerivativeStep = def.DerivativeStep
	}
	if c.SampleCount == 0 {
		c.SampleCount = def.SampleCount
	}
	if c.Axes == (graph.AxesConfig{}) {
		c.Axes = def.Axes
	}
	if c.Rate == "" {
		c.Rate = def.Rate
	}
}

// Validate checks the settings and resolves the palette.
func (c Config) Validate() (Colors, error) {
	if !(c.DerivativeStep > 0) {
		return Colors{}, fmt.Errorf("%w: derivativeStep %g", graph.ErrInvalidStep, c.DerivativeStep)
	}
	if c.SampleCount < 2 {
		return Colors{}, fmt.Errorf("%w: sampleCount %d", graph.ErrSampleCount, c.SampleCount)
	}
	if _, err := rate.Named(c.Rate); err != nil {
		return Colors{}, err
	}
	return c.Palette.Resolve()
}

// Resolve parses every colour in the palette.
func (p Palette) Resolve() (Colors, error) {
	var out Colors
	for _, f := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"axis", p.Axis, &out.Axis},
		{"distance", p.Distance, &out.Distance},
		{"velocity", p.Velocity, &out.Velocity},
		{"car", p.Car, &out.Car},
		{"secant", p.Secant, &out.Secant},
		{"highlight", p.Highlight, &out.Highlight},
		{"text", p.Text, &out.Text},
	} {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("scene: palette %s %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	g, err := shape.NewGradient(p.Gauge...)
	if err != nil {
		return Colors{}, fmt.Errorf("scene: palette gauge: %w", err)
	}
	out.Gauge = g
	return out, nil
}

// MotionRate resolves Rate, tabulated through cache when Lut is set.
func (c Config) MotionRate(cache *rate.LutCache) (rate.Func, error) {
	if c.Lut > 0 && cache != nil {
		return cache.Tabulated(c.Rate, c.Lut)
	}
	return rate.Named(c.Rate)
}
