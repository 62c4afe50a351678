package services

import (
	"context"
	"log/slog"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// EventPublisher publishes domain events. *mq.MQ satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event types.Event) error
}

// publish is best-effort: failures are logged and never fail the caller.
func publish(ctx context.Context, publisher EventPublisher, event types.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishEvent(context.WithoutCancel(ctx), event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "type", event.Type, "error", err)
	}
}
