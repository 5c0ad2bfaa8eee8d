package jobs

import (
	"context"
	"errors"
	"log/slog"

	"quoteflow/internal/core/application/usecases/commands"
	"quoteflow/internal/core/application/usecases/queries"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const pricingBatchSize = 50

type ordersInStatusHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersInStatusQuery) ([]queries.GetOrdersInStatusQueryResponse, error)
}

type beginPricingHandler interface {
	Handle(ctx context.Context, cmd commands.BeginPricingCommand) (*order.Order, error)
}

type completePricingHandler interface {
	Handle(ctx context.Context, cmd commands.CompletePricingCommand) (*order.Order, error)
}

// PricingJob hands new inquiries over to pricing and prices pending orders through the
// Pricing Service. Every order is processed by its own command, so one failure does not
// hold back the rest of the batch.
type PricingJob struct {
	orders   ordersInStatusHandler
	begin    beginPricingHandler
	complete completePricingHandler
	metrics  *metrics.PricingMetrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPricingJob creates the job. schedule is a cron expression with a seconds field.
func NewPricingJob(
	orders ordersInStatusHandler,
	begin beginPricingHandler,
	complete completePricingHandler,
	m *metrics.PricingMetrics,
	schedule string,
	logger *slog.Logger,
) *PricingJob {
	logger = logger.With("component", "pricing_job")
	return &PricingJob{
		orders:   orders,
		begin:    begin,
		complete: complete,
		metrics:  m,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

// Start schedules RunOnce. A run still in progress when the next one is due is skipped.
func (j *PricingJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pricing job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *PricingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pricing job stopped")
}

// RunOnce processes one batch of NEW_INQUIRY and one of PENDING_PRICING orders.
func (j *PricingJob) RunOnce(ctx context.Context) {
	j.each(ctx, order.NewInquiry, order.BeginPricing, func(id kernel.UUID) error {
		cmd, err := commands.NewBeginPricingCommand(id)
		if err != nil {
			return err
		}
		_, err = j.begin.Handle(ctx, cmd)
		return err
	})

	j.each(ctx, order.PendingPricing, order.CompletePricing, func(id kernel.UUID) error {
		cmd, err := commands.NewCompletePricingCommand(id)
		if err != nil {
			return err
		}
		_, err = j.complete.Handle(ctx, cmd)
		return err
	})
}

func (j *PricingJob) each(ctx context.Context, status order.Status, action order.Action, run func(kernel.UUID) error) {
	query, err := queries.NewGetOrdersInStatusQuery(status, pricingBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pricing job failed", "error", err)
		return
	}

	orders, err := j.orders.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pricing job failed to list orders", "status", status, "error", err)
		return
	}

	for _, o := range orders {
		err = run(o.ID)
		j.metrics.Outcomes.WithLabelValues(action.String(), outcome(err)).Inc()

		switch {
		case err == nil:
			j.logger.DebugContext(ctx, "Order processed", "action", action, "order_id", o.ID)
		case errors.Is(err, errs.ErrStateConflict), errors.Is(err, errs.ErrVersionConflict):
			// Another writer moved the order first.
			j.logger.DebugContext(ctx, "Order skipped", "action", action, "order_id", o.ID, "error", err)
		case errors.Is(err, errs.ErrCollaboratorFailure):
			j.logger.WarnContext(ctx, "Pricing service unavailable, batch postponed", "order_id", o.ID, "error", err)
			return
		default:
			j.logger.ErrorContext(ctx, "Pricing job failed", "action", action, "order_id", o.ID, "error", err)
		}
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errs.ErrStateConflict), errors.Is(err, errs.ErrVersionConflict):
		return "skipped"
	case errors.Is(err, errs.ErrCollaboratorFailure):
		return "unavailable"
	default:
		return "failed"
	}
}

func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}
