// Package kafka publishes outbox messages to Kafka topics.
package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"

	"quoteflow/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// ErrDisabled is returned by Publish when no brokers are configured.
var ErrDisabled = errors.New("kafka disabled")

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher with one writer per topic.
type Publisher struct {
	brokers   []string
	newWriter func(topic string) messageWriter

	mu      sync.Mutex
	writers map[string]messageWriter
}

// NewPublisher parses a comma separated broker list. Blank entries are ignored.
func NewPublisher(brokersCSV string) *Publisher {
	p := &Publisher{
		brokers: ParseBrokers(brokersCSV),
		writers: make(map[string]messageWriter),
	}
	p.newWriter = p.kafkaWriter
	return p
}

func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (p *Publisher) Enabled() bool {
	return len(p.brokers) > 0
}

// Publish writes the message keyed by its order id, so one order's events stay on one
// partition in outbox order.
func (p *Publisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	if !p.Enabled() {
		return ErrDisabled
	}

	return p.writer(msg.Topic).WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Payload,
		Time:  msg.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(msg.EventID)},
		},
	})
}

// Close flushes and closes every writer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for topic, w := range p.writers {
		err = errors.Join(err, w.Close())
		delete(p.writers, topic)
	}
	return err
}

func (p *Publisher) writer(topic string) messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.writers[topic]
	if !ok {
		w = p.newWriter(topic)
		p.writers[topic] = w
	}
	return w
}

func (p *Publisher) kafkaWriter(topic string) messageWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}
