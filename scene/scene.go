// Package scene holds the playback scheduler and the storyboards it plays.
//
// A Scene builds its objects and queues its play calls on a Scheduler once.
// A Player then advances the scheduler frame by frame and reports the
// visible objects as shape elements.
package scene

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/matt-g-everett/derivanim/rate"
	"github.com/matt-g-everett/derivanim/shape"
)

// A Scene is a storyboard.
type Scene interface {
	Name() string
	// Construct builds the scene's objects and queues its play calls.
	Construct(s *Scheduler) error
	// Elements renders everything currently on stage.
	Elements() []shape.Element
}

// Stage is the ordered set of objects a scene shows.
type Stage struct {
	items []shape.Renderable
}

// Add puts objects on stage, drawn after those already there. Objects
// already on stage are not added twice.
func (st *Stage) Add(items ...shape.Renderable) {
	for _, it := range items {
		if st.index(it) < 0 {
			st.items = append(st.items, it)
		}
	}
}

// Remove takes objects off stage.
func (st *Stage) Remove(items ...shape.Renderable) {
	for _, it := range items {
		if i := st.index(it); i >= 0 {
			st.items = append(st.items[:i], st.items[i+1:]...)
		}
	}
}

// Len is the number of objects on stage.
func (st *Stage) Len() int { return len(st.items) }

func (st *Stage) index(it shape.Renderable) int {
	for i, x := range st.items {
		if x == it {
			return i
		}
	}
	return -1
}

// Elements renders every object on stage in order.
func (st *Stage) Elements() []shape.Element {
	var out []shape.Element
	for _, it := range st.items {
		out = append(out, it.Elements()...)
	}
	return out
}

// Factory builds a scene from a validated config.
type Factory func(cfg Config, colors Colors, rates *rate.LutCache) (Scene, error)

// Registry maps scene names to factories.
type Registry struct {
	factories map[string]Factory
	rates     *rate.LutCache
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := new(Registry)
	r.factories = make(map[string]Factory)
	r.rates = rate.NewLutCache()
	return r
}

// DefaultRegistry holds every built-in scene.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("increment", newIncrement)
	r.Register("car_trajectory", newCarTrajectory)
	r.Register("speedometer", newSpeedometer)
	r.Register("secant_to_tangent", newSecantToTangent)
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Names lists registered scenes in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build creates the named scene.
func (r *Registry) Build(name string, cfg Config) (Scene, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	cfg.Defaults()
	colors, err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return f(cfg, colors, r.rates)
}

// A Player runs one constructed scene.
type Player struct {
	scene     Scene
	scheduler *Scheduler
}

// Start builds the named scene, constructs it on a fresh scheduler and
// returns a player positioned at time zero.
func (r *Registry) Start(name string, cfg Config, logger *slog.Logger) (*Player, error) {
	sc, err := r.Build(name, cfg)
	if err != nil {
		return nil, err
	}
	s := NewScheduler(logger)
	if err := sc.Construct(s); err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	s.Logger().Info("scene constructed", "scene", name, "duration", s.Remaining())
	return &Player{scene: sc, scheduler: s}, nil
}

// Name returns the scene name.
func (p *Player) Name() string { return p.scene.Name() }

// Scheduler returns the player's scheduler.
func (p *Player) Scheduler() *Scheduler { return p.scheduler }

// Advance steps the scene by dt seconds and reports whether it has finished.
func (p *Player) Advance(dt float64) (bool, error) {
	return p.scheduler.Advance(dt)
}

// Cancel abandons the rest of the scene.
func (p *Player) Cancel() { p.scheduler.Cancel() }

// Elements renders the scene as it stands.
func (p *Player) Elements() []shape.Element { return p.scene.Elements() }
