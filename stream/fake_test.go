package stream

import (
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// fakeToken completes immediately with err.
type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient records publishes and subscriptions instead of talking to a
// broker.
type fakeClient struct {
	mqtt.Client

	mu        sync.Mutex
	published []published
	handlers  map[string]mqtt.MessageHandler
	err       error
}

func newFakeClient() *fakeClient {
	return &fakeClient{handlers: make(map[string]mqtt.MessageHandler)}
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.published = append(c.published, published{topic: topic, qos: qos, payload: payload.([]byte)})
	}
	return &fakeToken{err: c.err}
}

func (c *fakeClient) Subscribe(topic string, _ byte, cb mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.handlers[topic] = cb
	}
	return &fakeToken{err: c.err}
}

func (c *fakeClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.published)
}

// deliver hands payload to the handler subscribed on topic.
func (c *fakeClient) deliver(topic string, payload string) bool {
	c.mu.Lock()
	cb, ok := c.handlers[topic]
	c.mu.Unlock()
	if !ok {
		return false
	}
	cb(c, &fakeMessage{topic: topic, payload: []byte(payload)})
	return true
}

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) MessageID() uint16 { return 1 }
