package stream

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/derivanim/scene"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("stream: invalid config")

// Config is the application configuration file.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientId"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	Playback struct {
		FrameRate      float64  `yaml:"frameRate"`
		TransitionSecs float64  `yaml:"transitionSecs"`
		Scenes         []string `yaml:"scenes"`
	} `yaml:"playback"`

	Scene scene.Config `yaml:"scene"`

	API struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`

	Log struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`
}

// DefaultConfig returns the settings used for anything a config file leaves
// out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.URL = "tcp://localhost:1883"
	c.Mqtt.ClientID = "derivanim"
	c.Mqtt.QoS = 2
	c.Mqtt.Topics.Stream = "derivanim/stream"
	c.Mqtt.Topics.Control = "derivanim/control"
	c.Playback.FrameRate = 30
	c.Playback.TransitionSecs = 1
	c.Playback.Scenes = []string{"increment", "car_trajectory", "speedometer", "secant_to_tangent"}
	c.Scene = scene.DefaultConfig()
	c.API.Addr = ":3000"
	c.Log.Level = "info"
	return c
}

// LoadConfig reads a YAML config from path over the defaults and validates
// it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("stream: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("stream: parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the playback settings and the scene config.
func (c *Config) Validate() error {
	p := c.Playback
	switch {
	case !(p.FrameRate > 0):
		return fmt.Errorf("%w: frameRate %g", ErrInvalidConfig, p.FrameRate)
	case !(p.TransitionSecs >= 0):
		return fmt.Errorf("%w: transitionSecs %g", ErrInvalidConfig, p.TransitionSecs)
	case len(p.Scenes) == 0:
		return fmt.Errorf("%w: no scenes", ErrInvalidConfig)
	case c.Mqtt.QoS > 2:
		return fmt.Errorf("%w: qos %d", ErrInvalidConfig, c.Mqtt.QoS)
	}
	c.Scene.Defaults()
	if _, err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// FrameTime is the wall-clock period of one frame in seconds.
func (c *Config) FrameTime() float64 {
	return 1 / c.Playback.FrameRate
}
