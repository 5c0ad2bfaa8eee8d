package jobs

import (
	"context"
	"log/slog"

	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const relayBatchSize = 100

// OutboxRelayJob publishes outbox messages in insertion order and marks them sent.
// Delivery is at least once: a crash between Publish and MarkSent republishes the message,
// consumers deduplicate by event id.
type OutboxRelayJob struct {
	outbox    ports.OutboxReader
	publisher ports.EventPublisher
	metrics   *metrics.RelayMetrics
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(
	outbox ports.OutboxReader,
	publisher ports.EventPublisher,
	m *metrics.RelayMetrics,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	logger = logger.With("component", "outbox_relay_job")
	return &OutboxRelayJob{
		outbox:    outbox,
		publisher: publisher,
		metrics:   m,
		schedule:  schedule,
		cron:      newCron(logger),
		logger:    logger,
	}
}

func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RunOnce relays one batch. It stops at the first failed message so later events of the
// same order are never published ahead of it.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	messages, err := j.outbox.FetchPending(ctx, relayBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed to fetch messages", "error", err)
		return
	}

	for _, msg := range messages {
		if err = j.publisher.Publish(ctx, msg); err != nil {
			j.metrics.Failed.Inc()
			j.logger.WarnContext(ctx, "Outbox message not published", "event_id", msg.EventID, "error", err)
			return
		}
		j.metrics.Published.Inc()

		if err = j.outbox.MarkSent(ctx, msg.ID); err != nil {
			j.logger.ErrorContext(ctx, "Outbox message not marked sent", "event_id", msg.EventID, "error", err)
			return
		}
	}
}
