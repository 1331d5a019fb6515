package usecase

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/shipping"
)

// Result is the read-only outcome of a calculation run.
type Result struct {
	Order        *domain.Order
	ShippingCost domain.Money
	AppliedRules []string
	Events       []domain.DomainEvent
}

func (r Result) IsFreeShipping() bool {
	return r.ShippingCost.IsZero()
}

// CalculateShipping folds the registered rules over an immutable
// calculation context and forwards the emitted events to the sink.
//
// The rule set is replaceable at runtime (ReplaceRules) so that a
// configuration change can swap in freshly constructed rule instances;
// each Execute works on the snapshot it started with.
type CalculateShipping struct {
	rules atomic.Pointer[[]shipping.Rule]
	sink  EventSink
	log   *slog.Logger
}

func NewCalculateShipping(rules []shipping.Rule, sink EventSink, log *slog.Logger) *CalculateShipping {
	uc := &CalculateShipping{sink: sink, log: log}
	uc.ReplaceRules(rules)
	return uc
}

// ReplaceRules atomically swaps the rule set. Callers pass freshly
// constructed rule instances; the per-instance config memoization makes
// this the staleness boundary.
func (uc *CalculateShipping) ReplaceRules(rules []shipping.Rule) {
	owned := slices.Clone(rules)
	uc.rules.Store(&owned)
}

// Execute runs the chain: sort by (priority asc, name asc), evaluate
// Supports, apply where it holds, package the terminal context. An empty
// rule set is a valid zero-cost outcome, not an error. Rule errors abort
// the calculation and propagate unmodified.
func (uc *CalculateShipping) Execute(ctx context.Context, order *domain.Order) (Result, error) {
	calc := shipping.ContextForOrder(order)

	for _, rule := range uc.sortedRules() {
		ok, err := rule.Supports(ctx, calc)
		if err != nil {
			return Result{}, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
		if !ok {
			continue
		}
		calc, err = rule.Apply(ctx, calc)
		if err != nil {
			return Result{}, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
	}

	result := Result{
		Order:        order,
		ShippingCost: calc.CurrentCost(),
		AppliedRules: calc.AppliedRules(),
		Events:       calc.Events(),
	}

	uc.forwardEvents(ctx, calc, result)

	return result, nil
}

// sortedRules returns a deterministic total order over the current rule
// snapshot. The name tie-break matters because priorities are externally
// configured and collisions are possible.
func (uc *CalculateShipping) sortedRules() []shipping.Rule {
	rules := slices.Clone(*uc.rules.Load())
	slices.SortFunc(rules, func(a, b shipping.Rule) int {
		if c := cmp.Compare(a.Priority(), b.Priority()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
	return rules
}

// forwardEvents pushes every RuleApplied event in emission order, then
// exactly one CalculationCompleted. Forwarding is best-effort: the events
// are already part of the Result, a sink failure is logged and never fails
// the calculation.
func (uc *CalculateShipping) forwardEvents(ctx context.Context, calc shipping.Context, result Result) {
	if uc.sink == nil {
		return
	}

	for _, event := range result.Events {
		if err := uc.sink.Publish(ctx, event); err != nil {
			uc.logger().Warn("event sink publish failed",
				"event", event.EventName(), "order_id", result.Order.ID(), "err", err)
		}
	}

	completed := domain.NewCalculationCompleted(
		result.Order.ID(),
		calc.FirstRuleCost(),
		result.ShippingCost,
		result.AppliedRules,
	)
	if err := uc.sink.Publish(ctx, completed); err != nil {
		uc.logger().Warn("event sink publish failed",
			"event", completed.EventName(), "order_id", result.Order.ID(), "err", err)
	}
}

func (uc *CalculateShipping) logger() *slog.Logger {
	if uc.log != nil {
		return uc.log
	}
	return slog.Default()
}
