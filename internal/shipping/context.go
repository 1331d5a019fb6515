// Package shipping holds the rule-evaluation core: the immutable
// calculation context, the rule contract, the configuration snapshots the
// rules read, and the concrete rule policies.
package shipping

import (
	"slices"

	domain "github.com/parcelio/shipping-api/internal/entity"
)

// Context carries the in-progress cost, the applied-rule audit trail and
// the emitted events through the rule chain. It is a value: every
// transformation returns a new Context, the receiver is never mutated.
// This is what makes a calculation replayable and each step independently
// verifiable.
type Context struct {
	order         *domain.Order
	currentCost   domain.Money
	firstRuleCost *domain.Money
	events        []domain.DomainEvent
	appliedRules  []string
}

// ContextForOrder starts a calculation: zero cost, no history, no events.
// The zero cost is denominated in the order's cart value currency.
func ContextForOrder(order *domain.Order) Context {
	return Context{
		order:       order,
		currentCost: domain.Zero(order.CartValue().Currency()),
	}
}

func (c Context) Order() *domain.Order      { return c.order }
func (c Context) CurrentCost() domain.Money { return c.currentCost }

// FirstRuleCost is the cost immediately after the first rule that actually
// fired, used for reporting discount magnitude against the first real base
// rather than the literal starting zero. Falls back to the current cost
// when no rule has fired yet.
func (c Context) FirstRuleCost() domain.Money {
	if c.firstRuleCost == nil {
		return c.currentCost
	}
	return *c.firstRuleCost
}

func (c Context) Events() []domain.DomainEvent {
	return slices.Clone(c.events)
}

func (c Context) AppliedRules() []string {
	return slices.Clone(c.appliedRules)
}

// WithCost returns a new context whose current cost is newCost, records
// the rule in the audit trail and appends a RuleApplied event.
func (c Context) WithCost(newCost domain.Money, ruleName, description string) Context {
	event := domain.NewRuleApplied(c.order.ID(), ruleName, c.currentCost, newCost, description)

	firstRuleCost := c.firstRuleCost
	if firstRuleCost == nil {
		first := newCost
		firstRuleCost = &first
	}

	return Context{
		order:         c.order,
		currentCost:   newCost,
		firstRuleCost: firstRuleCost,
		events:        append(slices.Clone(c.events), event),
		appliedRules:  append(slices.Clone(c.appliedRules), ruleName),
	}
}

// WithAddedCost is WithCost over current cost + delta.
func (c Context) WithAddedCost(delta domain.Money, ruleName, description string) (Context, error) {
	newCost, err := c.currentCost.Add(delta)
	if err != nil {
		return Context{}, err
	}
	return c.WithCost(newCost, ruleName, description), nil
}

func (c Context) IsFreeShipping() bool {
	return c.currentCost.IsZero()
}

func (c Context) HasAppliedRule(ruleName string) bool {
	return slices.Contains(c.appliedRules, ruleName)
}
