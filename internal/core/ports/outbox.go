package ports

import (
	"context"
	"time"

	"quoteflow/internal/core/domain/model/order"
)

// OutboxMessage is a domain event stored next to the order change that produced it.
type OutboxMessage struct {
	ID        int64
	EventID   string
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxReader is used by the relay to find messages that were not published yet.
type OutboxReader interface {
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, id int64) error
}

// EventPublisher delivers an outbox message to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}

// OrderStatusChangedMessage is the payload of an outbox message, the wire form of
// order.StatusChanged.
type OrderStatusChangedMessage struct {
	EventID    string    `json:"eventId"`
	OrderID    string    `json:"orderId"`
	Action     string    `json:"action"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewOrderStatusChangedMessage(event order.StatusChanged) OrderStatusChangedMessage {
	return OrderStatusChangedMessage{
		EventID:    event.EventID.String(),
		OrderID:    event.OrderID.String(),
		Action:     event.Action.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		Version:    event.Version,
		OccurredAt: event.OccurredAt,
	}
}
