package shipping

import "context"

// Recommended priority bands. These are convention, not enforced: rate
// rules before surcharges, surcharges before value promotions, time
// promotions last.
const (
	PriorityBaseRates       = 100
	PrioritySurcharges      = 200
	PriorityValuePromotions = 300
	PriorityTimePromotions  = 400
)

// Rule is a named, prioritized, pure policy that conditionally transforms
// the calculation context. Lower priority runs earlier; names must be
// unique across the registered set.
//
// Supports must be a side-effect-free predicate, safe to call repeatedly.
// Apply must only be called after Supports returned true for the same
// context, and must derive its result via WithCost/WithAddedCost.
// Both take a context.Context because loading the rule's configuration
// snapshot may reach an external store; any load failure propagates
// unmodified to the caller of the calculation.
type Rule interface {
	Name() string
	Priority() int
	Supports(ctx context.Context, calc Context) (bool, error)
	Apply(ctx context.Context, calc Context) (Context, error)
}
