package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/derivanim/util"
)

// Streamer publishes frames over MQTT at a fixed frame rate.
type Streamer struct {
	client    mqtt.Client
	source    Source
	topic     string
	qos       byte
	frameTime time.Duration
	logger    *slog.Logger
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(cfg Config, client mqtt.Client, source Source, logger *slog.Logger) *Streamer {
	s := new(Streamer)
	s.client = client
	s.source = source
	s.topic = cfg.Mqtt.Topics.Stream
	s.qos = cfg.Mqtt.QoS
	s.frameTime = time.Duration(cfg.FrameTime() * float64(time.Second))
	s.logger = util.OrNop(logger)
	return s
}

// SendFrame calculates the next frame and publishes it.
func (s *Streamer) SendFrame() error {
	f, err := s.source.CalculateFrame()
	if err != nil {
		return err
	}
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, s.qos, false, b)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("stream: publish frame %d: %w", f.Index, token.Error())
	}
	return nil
}

// Run sends frames until ctx is cancelled. Failed frames are logged and
// skipped.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.frameTime)
	defer publishTimer.Stop()
	s.logger.Info("streaming", "topic", s.topic, "frameTime", s.frameTime)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				s.logger.Error("frame not sent", "error", err)
			}
		}
	}
}
