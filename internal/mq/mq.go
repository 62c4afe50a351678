package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// AttrEventType carries the event type so consumers can filter without
// decoding the body.
const AttrEventType = "event_type"

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// EventHandler processes a decoded domain event.
type EventHandler func(ctx context.Context, event types.Event) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// MQ publishes and consumes domain events on a single channel.
type MQ struct {
	backend Backend
	channel string
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend, channel string) *MQ {
	return &MQ{backend: backend, channel: channel}
}

// Open connects to the broker selected by cfg. It returns nil when no broker
// is configured.
func Open(ctx context.Context, cfg config.MQConfig) (*MQ, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Backend {
	case "":
		return nil, nil
	case "rabbitmq":
		backend, err = NewRabbitMQClient(cfg.RabbitMQ)
	case "pubsub":
		backend, err = NewPubSubClient(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unsupported mq backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return New(backend, cfg.Channel), nil
}

// Channel returns the channel events are published to.
func (m *MQ) Channel() string {
	return m.channel
}

// PublishEvent stamps and publishes event as JSON.
func (m *MQ) PublishEvent(ctx context.Context, event types.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = m.backend.Publish(ctx, m.channel, data, map[string]string{AttrEventType: string(event.Type)})
	return err
}

// SubscribeEvents consumes events until ctx is done. Messages that cannot be
// decoded are acknowledged and dropped.
func (m *MQ) SubscribeEvents(ctx context.Context, handler EventHandler) error {
	return m.backend.Subscribe(ctx, m.channel, func(ctx context.Context, msg Message) error {
		var event types.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return nil
		}
		return handler(ctx, event)
	})
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}
