package observ

import (
	"context"
	"log/slog"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
)

// LogSink writes an audit line for every calculation event.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, event domain.DomainEvent) error {
	switch ev := event.(type) {
	case domain.RuleApplied:
		s.log.Info("shipping rule applied",
			"order_id", ev.OrderID(),
			"rule", ev.RuleName(),
			"cost_before", ev.CostBefore().Format(),
			"cost_after", ev.CostAfter().Format(),
			"description", ev.Description())
	case domain.CalculationCompleted:
		s.log.Info("shipping calculation completed",
			"order_id", ev.OrderID(),
			"first_rule_cost", ev.FirstRuleCost().Format(),
			"final_cost", ev.FinalCost().Format(),
			"applied_rules", ev.AppliedRules())
	default:
		s.log.Info("shipping event", "event", event.EventName())
	}
	return nil
}

var _ usecase.EventSink = (*LogSink)(nil)
