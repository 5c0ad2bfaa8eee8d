// Package idempotencyrepo stores caller tokens of applied quote modifications.
package idempotencyrepo

import (
	"context"
	"errors"
	"time"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdempotencyKeyDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key         string    `gorm:"type:varchar(128);primaryKey"`
	Fingerprint string    `gorm:"type:char(64);not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (IdempotencyKeyDTO) TableName() string {
	return "idempotency_keys"
}

// GormIdempotencyStore implements ports.IdempotencyStore. Bound to a transaction by the
// unit of work, its writes commit with the order they belong to.
type GormIdempotencyStore struct {
	db *gorm.DB
}

func NewGormIdempotencyStore(db *gorm.DB) *GormIdempotencyStore {
	return &GormIdempotencyStore{db: db}
}

func (s *GormIdempotencyStore) Find(ctx context.Context, orderID kernel.UUID, key string) (ports.IdempotencyRecord, bool, error) {
	var dto IdempotencyKeyDTO
	err := s.db.WithContext(ctx).First(&dto, "order_id = ? AND key = ?", orderID.Bytes(), key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.IdempotencyRecord{}, false, nil
	}
	if err != nil {
		return ports.IdempotencyRecord{}, false, err
	}

	return ports.IdempotencyRecord{
		OrderID:     orderID,
		Key:         dto.Key,
		Fingerprint: dto.Fingerprint,
	}, true, nil
}

func (s *GormIdempotencyStore) Remember(ctx context.Context, record ports.IdempotencyRecord) error {
	if err := record.OrderID.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Create(&IdempotencyKeyDTO{
		OrderID:     record.OrderID.Bytes(),
		Key:         record.Key,
		Fingerprint: record.Fingerprint,
		CreatedAt:   time.Now().UTC(),
	}).Error
}
