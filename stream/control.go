package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/derivanim/util"
)

// ErrUnknownCommand is returned for a control message of an unknown type.
var ErrUnknownCommand = errors.New("stream: unknown control command")

// ControlMessage is a playback command received over MQTT.
type ControlMessage struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Control applies playback commands from the control topic to a
// Controller.
type Control struct {
	client     mqtt.Client
	topic      string
	controller *Controller
	logger     *slog.Logger
}

// NewControl creates a Control for the configured control topic.
func NewControl(cfg Config, client mqtt.Client, controller *Controller, logger *slog.Logger) *Control {
	c := new(Control)
	c.client = client
	c.topic = cfg.Mqtt.Topics.Control
	c.controller = controller
	c.logger = util.OrNop(logger)
	return c
}

// Apply runs one command.
func (c *Control) Apply(m ControlMessage) error {
	switch m.Type {
	case "skip":
		c.controller.Skip()
	case "pause":
		c.controller.Pause()
	case "resume":
		c.controller.Resume()
	case "scene":
		return c.controller.Select(m.Name)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, m.Type)
	}
	return nil
}

func (c *Control) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	c.logger.Debug("control message", "id", msg.MessageID(), "topic", msg.Topic(), "payload", string(msg.Payload()))

	var m ControlMessage
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		c.logger.Warn("dropping control message", "error", err)
		return
	}
	if err := c.Apply(m); err != nil {
		c.logger.Warn("dropping control message", "type", m.Type, "error", err)
		return
	}
	c.logger.Info("control applied", "type", m.Type, "name", m.Name)
}

// Subscribe listens on the control topic.
func (c *Control) Subscribe() error {
	if token := c.client.Subscribe(c.topic, 0, c.handleMessage); token.Wait() && token.Error() != nil {
		return fmt.Errorf("stream: subscribe %s: %w", c.topic, token.Error())
	}
	return nil
}
