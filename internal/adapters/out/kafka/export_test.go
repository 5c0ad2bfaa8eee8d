package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter exposes messageWriter to the external test package.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// WithWriterFactory replaces the writer constructor of p.
func WithWriterFactory(p *Publisher, factory func(topic string) MessageWriter) {
	p.newWriter = func(topic string) messageWriter { return factory(topic) }
}
