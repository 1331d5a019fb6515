package usecase

import (
	"context"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/shipping"
)

// RuleFactory builds a fresh rule set with fresh configuration loaders.
// Invoked at startup and again on every configuration-changed signal;
// handing new instances to ReplaceRules is how stale config memos die.
type RuleFactory func() []shipping.Rule

// CountryRepository resolves country master data. Lookup is
// case-insensitive on input; a missing country is (nil, nil), not an
// error.
type CountryRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Country, error)
	FindAllActive(ctx context.Context) ([]domain.Country, error)
}

// EventSink receives the domain events of a calculation run, in emission
// order. Sinks do logging, metrics, and broker publication; the engine
// works with no sink attached.
type EventSink interface {
	Publish(ctx context.Context, event domain.DomainEvent) error
}

// FanoutSink forwards each event to every sink, collecting nothing: a
// failing sink must not starve the others.
type FanoutSink []EventSink

func (f FanoutSink) Publish(ctx context.Context, event domain.DomainEvent) error {
	var firstErr error
	for _, sink := range f {
		if err := sink.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ EventSink = (FanoutSink)(nil)
