package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/parcelio/shipping-api/internal/adapter/repo"
)

const drainBatchSize = 100

// OutboxDrainer periodically ships undelivered outbox rows to RabbitMQ
// and marks them published. Delivery is at-least-once: a crash between
// publish and mark replays the row.
type OutboxDrainer struct {
	outbox    *repo.OutboxSink
	publisher *RabbitEventPublisher
	interval  time.Duration
	log       *slog.Logger
}

func NewOutboxDrainer(outbox *repo.OutboxSink, publisher *RabbitEventPublisher, interval time.Duration, log *slog.Logger) *OutboxDrainer {
	return &OutboxDrainer{outbox: outbox, publisher: publisher, interval: interval, log: log}
}

// Run blocks until ctx is cancelled; call it in a goroutine.
func (d *OutboxDrainer) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drainOnce(ctx)
		}
	}
}

func (d *OutboxDrainer) drainOnce(ctx context.Context) {
	rows, err := d.outbox.FetchUnpublished(ctx, drainBatchSize)
	if err != nil {
		d.log.Error("outbox fetch failed", "err", err)
		return
	}

	for _, row := range rows {
		if err := d.publisher.PublishRaw(ctx, row.EventName, row.Payload); err != nil {
			d.log.Error("outbox publish failed", "id", row.ID, "err", err)
			return // retry the whole tail next tick, keep ordering
		}
		if err := d.outbox.MarkPublished(ctx, row.ID); err != nil {
			d.log.Error("outbox mark failed", "id", row.ID, "err", err)
			return
		}
	}
}
