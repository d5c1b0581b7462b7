package rate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
	gease "github.com/tanema/gween/ease"
)

// FromTween adapts a gween easing function, which works in absolute
// (time, begin, change, duration) terms, to a normalised rate function.
func FromTween(fn gease.TweenFunc) Func {
	return func(t float64) float64 {
		if t <= 0 {
			return float64(fn(0, 0, 1, 1))
		}
		if t >= 1 {
			return float64(fn(1, 0, 1, 1))
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var builtin = map[string]Func{
	"linear":         Linear,
	"smooth":         Smooth,
	"rush_into":      RushInto,
	"rush_from":      RushFrom,
	"slow_into":      SlowInto,
	"double_smooth":  DoubleSmooth,
	"there_and_back": ThereAndBack,

	"ease.InQuad":     ease.InQuad,
	"ease.OutQuad":    ease.OutQuad,
	"ease.InOutQuad":  ease.InOutQuad,
	"ease.InCubic":    ease.InCubic,
	"ease.OutCubic":   ease.OutCubic,
	"ease.InOutCubic": ease.InOutCubic,
	"ease.InSine":     ease.InSine,
	"ease.OutSine":    ease.OutSine,
	"ease.InOutSine":  ease.InOutSine,
	"ease.OutBack":    ease.OutBack,
	"ease.OutBounce":  ease.OutBounce,
	"ease.OutElastic": ease.OutElastic,

	"gween.Linear":    FromTween(gease.Linear),
	"gween.InOutQuad": FromTween(gease.InOutQuad),
	"gween.OutBounce": FromTween(gease.OutBounce),
	"gween.InOutBack": FromTween(gease.InOutBack),
	"gween.OutCirc":   FromTween(gease.OutCirc),
}

// Named resolves a rate function by its configuration name. An empty name
// resolves to Smooth. Names may be wrapped as "there_and_back(<name>)".
func Named(name string) (Func, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Smooth, nil
	}
	if inner, ok := unwrap(name, "there_and_back"); ok {
		f, err := Named(inner)
		if err != nil {
			return nil, err
		}
		return ThereAndBackWith(f), nil
	}
	f, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("rate: unknown rate function %q", name)
	}
	return f, nil
}

// Names lists every registered rate function name in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for k := range builtin {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func unwrap(name, fn string) (string, bool) {
	prefix := fn + "("
	if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ")") {
		return strings.TrimSpace(name[len(prefix) : len(name)-1]), true
	}
	return "", false
}
