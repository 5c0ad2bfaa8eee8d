// Package outboxrepo persists order events in the outbox table and serves them to the relay.
package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Topic     string    `gorm:"type:varchar(255);not null"`
	Key       string    `gorm:"type:varchar(255);not null"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"not null"`
	SentAt    *time.Time
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

// GormOutbox writes and reads outbox rows. It implements ports.OutboxReader.
type GormOutbox struct {
	db *gorm.DB
}

func NewGormOutbox(db *gorm.DB) *GormOutbox {
	return &GormOutbox{db: db}
}

// Append stores events under topic, keyed by order id so a partitioned broker keeps the
// events of one order in sequence.
func (o *GormOutbox) Append(ctx context.Context, topic string, events []order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(ports.NewOrderStatusChangedMessage(event))
		if err != nil {
			return err
		}

		dtos = append(dtos, OutboxDTO{
			EventID:   event.EventID.Bytes(),
			Topic:     topic,
			Key:       event.OrderID.String(),
			Payload:   payload,
			CreatedAt: event.OccurredAt,
		})
	}

	return o.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending returns unsent messages in insertion order.
func (o *GormOutbox) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	if err := o.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, ports.OutboxMessage{
			ID:        dto.ID,
			EventID:   dto.EventID.String(),
			Topic:     dto.Topic,
			Key:       dto.Key,
			Payload:   dto.Payload,
			CreatedAt: dto.CreatedAt,
		})
	}
	return messages, nil
}

// MarkSent records that the message was published.
func (o *GormOutbox) MarkSent(ctx context.Context, id int64) error {
	return o.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id).
		Update("sent_at", time.Now().UTC()).Error
}
