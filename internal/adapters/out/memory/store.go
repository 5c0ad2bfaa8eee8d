// Package memory keeps orders, idempotency keys, the outbox and the catalog in process
// memory. It backs local runs without a database and the HTTP tests.
//
// The store honours the same contract as the PostgreSQL adapter: writes staged in a unit of
// work become visible together on Commit, saves are checked against the stored version, and
// the events of saved orders are appended to the outbox in the same step.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"quoteflow/internal/core/domain/model/catalog"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"
)

// snapshot is the stored form of an order. Loading always rebuilds a fresh aggregate, so
// callers never share state with the store.
type snapshot struct {
	clientRef string
	status    order.Status
	items     []order.Item
	total     order.Price
	createdAt time.Time
	version   int64
}

func snapshotOf(o *order.Order) snapshot {
	return snapshot{
		clientRef: o.ClientRef(),
		status:    o.Status(),
		items:     o.Items(),
		total:     o.TotalOrderValue(),
		createdAt: o.CreatedAt(),
		version:   o.Version(),
	}
}

func (s snapshot) restore(id kernel.UUID) (*order.Order, error) {
	return order.RestoreOrder(id, s.clientRef, s.status, s.items, s.total, s.createdAt, s.version)
}

type keyID struct {
	orderID kernel.UUID
	key     string
}

// Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	orders   map[kernel.UUID]snapshot
	keys     map[keyID]ports.IdempotencyRecord
	outbox   []outboxEntry
	nextID   int64
	products []catalog.Product
	topic    string
}

type outboxEntry struct {
	message ports.OutboxMessage
	sent    bool
}

// NewStore creates an empty store. eventTopic is recorded on outbox messages.
func NewStore(eventTopic string, products ...catalog.Product) *Store {
	return &Store{
		orders:   make(map[kernel.UUID]snapshot),
		keys:     make(map[keyID]ports.IdempotencyRecord),
		products: products,
		topic:    eventTopic,
	}
}

// List implements ports.ProductCatalog.
func (s *Store) List(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]catalog.Product, len(s.products))
	copy(products, s.products)
	sort.Slice(products, func(i, j int) bool { return products[i].Ref() < products[j].Ref() })
	return products, nil
}

// FetchPending implements ports.OutboxReader.
func (s *Store) FetchPending(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]ports.OutboxMessage, 0)
	for _, entry := range s.outbox {
		if len(messages) == limit {
			break
		}
		if !entry.sent {
			messages = append(messages, entry.message)
		}
	}
	return messages, nil
}

// MarkSent implements ports.OutboxReader.
func (s *Store) MarkSent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.ID == id {
			s.outbox[i].sent = true
		}
	}
	return nil
}

// ordersInStatus lists orders in status, oldest first.
func (s *Store) ordersInStatus(status order.Status, limit int) []ordersInStatusRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]ordersInStatusRow, 0)
	for id, stored := range s.orders {
		if stored.status == status {
			rows = append(rows, ordersInStatusRow{id: id, createdAt: stored.createdAt, version: stored.version})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.Before(rows[j].createdAt)
		}
		return rows[i].id.String() < rows[j].id.String()
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

type ordersInStatusRow struct {
	id        kernel.UUID
	createdAt time.Time
	version   int64
}

// appendEvents must be called with mu held.
func (s *Store) appendEvents(events []order.StatusChanged) error {
	for _, event := range events {
		payload, err := json.Marshal(ports.NewOrderStatusChangedMessage(event))
		if err != nil {
			return err
		}

		s.nextID++
		s.outbox = append(s.outbox, outboxEntry{message: ports.OutboxMessage{
			ID:        s.nextID,
			EventID:   event.EventID.String(),
			Topic:     s.topic,
			Key:       event.OrderID.String(),
			Payload:   payload,
			CreatedAt: event.OccurredAt,
		}})
	}
	return nil
}
