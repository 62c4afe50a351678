package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
)

const (
	rabbitAppID          = "careerconnect"
	defaultRoutingKey    = "event"
	subscriberQueueInfix = ".subscriber"
)

// RabbitMQClient publishes events to a topic exchange named after the
// channel. The routing key is the event type, so a consumer can bind to a
// subset such as "application.*".
type RabbitMQClient struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	durable       bool
	autoDelete    bool
	bindingKey    string
	mu            sync.Mutex
	declaredTopic map[string]bool
}

func NewRabbitMQClient(cfg config.RabbitMQConfig) (*RabbitMQClient, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Heartbeat:  10 * time.Second,
		Properties: amqp.Table{"connection_name": rabbitAppID},
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("set prefetch: %w", err)
		}
	}

	return &RabbitMQClient{
		conn:          conn,
		ch:            ch,
		durable:       cfg.QueueDurable,
		autoDelete:    cfg.QueueAutoDelete,
		bindingKey:    "#",
		declaredTopic: make(map[string]bool),
	}, nil
}

// Publish routes data to the exchange for channel using the event type
// attribute as routing key.
func (r *RabbitMQClient) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if err := r.declareExchange(channel); err != nil {
		return "", err
	}

	routingKey := attrs[AttrEventType]
	if routingKey == "" {
		routingKey = defaultRoutingKey
	}
	headers := make(amqp.Table, len(attrs))
	for key, value := range attrs {
		headers[key] = value
	}

	id := uuid.NewString()
	err := r.ch.PublishWithContext(ctx, channel, routingKey, false, false, amqp.Publishing{
		AppId:        rabbitAppID,
		MessageId:    id,
		Type:         routingKey,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      headers,
		Body:         data,
	})
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return id, nil
}

// Subscribe binds the shared subscriber queue for channel and hands every
// delivery to handler until ctx is done. A failed delivery is requeued once
// and dropped on its second failure.
func (r *RabbitMQClient) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if err := r.declareExchange(channel); err != nil {
		return err
	}

	queue, err := r.ch.QueueDeclare(channel+subscriberQueueInfix, r.durable, r.autoDelete, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := r.ch.QueueBind(queue.Name, r.bindingKey, channel, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	tag := rabbitAppID + "-" + uuid.NewString()
	deliveries, err := r.ch.ConsumeWithContext(ctx, queue.Name, tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue.Name, err)
	}
	defer func() {
		_ = r.ch.Cancel(tag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			msg := Message{ID: d.MessageId, Data: d.Body, Attributes: tableToAttributes(d.Headers)}
			if msg.Attributes[AttrEventType] == "" && d.RoutingKey != "" {
				if msg.Attributes == nil {
					msg.Attributes = map[string]string{}
				}
				msg.Attributes[AttrEventType] = d.RoutingKey
			}
			if err := handler(ctx, msg); err != nil {
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (r *RabbitMQClient) Close() error {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func (r *RabbitMQClient) declareExchange(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("rabbitmq channel is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.declaredTopic[name] {
		return nil
	}
	if err := r.ch.ExchangeDeclare(name, amqp.ExchangeTopic, r.durable, r.autoDelete, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", name, err)
	}
	r.declaredTopic[name] = true
	return nil
}

func tableToAttributes(table amqp.Table) map[string]string {
	if len(table) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(table))
	for key, value := range table {
		switch v := value.(type) {
		case string:
			attrs[key] = v
		case []byte:
			attrs[key] = string(v)
		default:
			attrs[key] = fmt.Sprint(v)
		}
	}
	return attrs
}
