package repo

import (
	"context"
	"database/sql"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
)

// OutboxSink stores events in a MySQL outbox table instead of publishing
// them inline; a drainer ships unpublished rows to the broker later.
type OutboxSink struct{ db *sql.DB }

func NewOutboxSink(db *sql.DB) *OutboxSink { return &OutboxSink{db: db} }

func (s *OutboxSink) Publish(ctx context.Context, event domain.DomainEvent) error {
	payload, err := usecase.EncodeEvent(event)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO shipping_event_outbox (event_name, payload, created_at)
VALUES (?, ?, NOW(6))
`, event.EventName(), payload)
	return err
}

// OutboxRow is one undelivered event.
type OutboxRow struct {
	ID        int64
	EventName string
	Payload   []byte
}

// FetchUnpublished returns up to limit undelivered rows, oldest first.
func (s *OutboxSink) FetchUnpublished(ctx context.Context, limit int) ([]OutboxRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, event_name, payload FROM shipping_event_outbox
WHERE published_at IS NULL ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutboxRow
	for rows.Next() {
		var r OutboxRow
		if err := rows.Scan(&r.ID, &r.EventName, &r.Payload); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *OutboxSink) MarkPublished(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE shipping_event_outbox SET published_at = NOW(6) WHERE id = ?`, id)
	return err
}

var _ usecase.EventSink = (*OutboxSink)(nil)
