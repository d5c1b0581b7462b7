package stream

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/matt-g-everett/derivanim/scene"
	"github.com/matt-g-everett/derivanim/util"
)

// ErrNoScene is returned when no configured scene could be started.
var ErrNoScene = errors.New("stream: no scene could be started")

// Controller plays the configured scenes one after another, cross-fading
// between them. It is safe for concurrent use: the streamer calculates
// frames while control messages and API requests arrive on other
// goroutines.
type Controller struct {
	mu sync.Mutex

	registry *scene.Registry
	sceneCfg scene.Config
	names    []string
	next     int
	logger   *slog.Logger

	player   *scene.Player
	outgoing *Frame
	latest   *Frame
	index    uint32
	paused   bool

	frameTime           float64
	transition          float64
	transitionIncrement float64
}

// NewController creates a Controller and starts the first scene. Every
// configured scene name must be registered.
func NewController(cfg Config, registry *scene.Registry, logger *slog.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	known := make(map[string]bool)
	for _, n := range registry.Names() {
		known[n] = true
	}
	for _, n := range cfg.Playback.Scenes {
		if !known[n] {
			return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, n)
		}
	}

	c := new(Controller)
	c.registry = registry
	c.sceneCfg = cfg.Scene
	c.names = append([]string(nil), cfg.Playback.Scenes...)
	c.logger = util.OrNop(logger)
	c.frameTime = cfg.FrameTime()
	if cfg.Playback.TransitionSecs > 0 {
		c.transitionIncrement = 1.0 / (cfg.Playback.FrameRate * cfg.Playback.TransitionSecs)
	}
	if err := c.cycleScene(); err != nil {
		return nil, err
	}
	return c, nil
}

// CalculateFrame advances the current scene by one frame and renders it.
func (c *Controller) CalculateFrame() (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	done := false
	if !c.paused {
		var err error
		done, err = c.player.Advance(c.frameTime)
		if err != nil {
			c.logger.Error("scene failed, moving on", "scene", c.player.Name(), "error", err)
			done = true
		}
	}

	clock := c.player.Scheduler().Clock()
	f := NewFrame(c.index, clock, c.player.Name(), c.player.Elements())
	c.index++

	if c.outgoing != nil {
		c.transition += c.transitionIncrement
		if c.transition >= 1.0 {
			c.outgoing = nil
			c.transition = 0.0
		} else {
			f = c.outgoing.InterpolateFrame(f, c.transition)
		}
	}
	c.latest = f

	if done {
		if err := c.startNext(f); err != nil {
			return f, err
		}
	}
	return f, nil
}

// startNext moves on to the next scene, fading out from last.
func (c *Controller) startNext(last *Frame) error {
	if c.transitionIncrement > 0 {
		c.outgoing = last
		c.transition = 0.0
	}
	return c.cycleScene()
}

// cycleScene starts the next scene in the list that constructs cleanly.
func (c *Controller) cycleScene() error {
	for range c.names {
		name := c.names[c.next]
		c.next = (c.next + 1) % len(c.names)
		if err := c.start(name); err != nil {
			c.logger.Error("scene could not start", "scene", name, "error", err)
			continue
		}
		return nil
	}
	return ErrNoScene
}

func (c *Controller) start(name string) error {
	p, err := c.registry.Start(name, c.sceneCfg, c.logger.With("scene", name))
	if err != nil {
		return err
	}
	c.player = p
	c.logger.Info("scene switched", "scene", name)
	return nil
}

// Skip abandons the current scene; the next frame starts the one after.
func (c *Controller) Skip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Info("skipping scene", "scene", c.player.Name())
	c.player.Cancel()
	c.paused = false
}

// Pause holds the current scene's clock.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume restarts the clock after Pause.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Paused reports whether the clock is held.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Select switches to the named scene at once, cross-fading from the latest
// frame. Playback continues from that scene's place in the list.
func (c *Controller) Select(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := -1
	for i, n := range c.names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", scene.ErrUnknownScene, name)
	}
	if err := c.start(name); err != nil {
		return err
	}
	c.next = (idx + 1) % len(c.names)
	if c.latest != nil && c.transitionIncrement > 0 {
		c.outgoing = c.latest
		c.transition = 0.0
	}
	c.paused = false
	return nil
}

// Latest returns the most recently calculated frame, or nil before the
// first.
func (c *Controller) Latest() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// Current returns the name of the playing scene.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player.Name()
}

// Scenes lists the configured scenes in play order.
func (c *Controller) Scenes() []string {
	return append([]string(nil), c.names...)
}
