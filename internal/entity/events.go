package domain

import (
	"slices"
	"time"
)

// Event names as they appear on the wire and in audit logs.
const (
	EventRuleApplied          = "shipping.rule_applied"
	EventCalculationCompleted = "shipping.calculation_completed"
)

// DomainEvent is an immutable fact with an occurred-at timestamp set at
// construction.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// RuleApplied is emitted every time a rule actually fires.
type RuleApplied struct {
	orderID     string
	ruleName    string
	costBefore  Money
	costAfter   Money
	description string
	occurredAt  time.Time
}

func NewRuleApplied(orderID, ruleName string, costBefore, costAfter Money, description string) RuleApplied {
	return RuleApplied{
		orderID:     orderID,
		ruleName:    ruleName,
		costBefore:  costBefore,
		costAfter:   costAfter,
		description: description,
		occurredAt:  time.Now().UTC(),
	}
}

func (e RuleApplied) EventName() string { return EventRuleApplied }
func (e RuleApplied) OccurredAt() time.Time { return e.occurredAt }
func (e RuleApplied) OrderID() string { return e.orderID }
func (e RuleApplied) RuleName() string { return e.ruleName }
func (e RuleApplied) CostBefore() Money { return e.costBefore }
func (e RuleApplied) CostAfter() Money { return e.costAfter }
func (e RuleApplied) Description() string { return e.description }

// CalculationCompleted is emitted exactly once per calculation run.
type CalculationCompleted struct {
	orderID       string
	firstRuleCost Money
	finalCost     Money
	appliedRules  []string
	occurredAt    time.Time
}

func NewCalculationCompleted(orderID string, firstRuleCost, finalCost Money, appliedRules []string) CalculationCompleted {
	return CalculationCompleted{
		orderID:       orderID,
		firstRuleCost: firstRuleCost,
		finalCost:     finalCost,
		appliedRules:  slices.Clone(appliedRules),
		occurredAt:    time.Now().UTC(),
	}
}

func (e CalculationCompleted) EventName() string { return EventCalculationCompleted }
func (e CalculationCompleted) OccurredAt() time.Time { return e.occurredAt }
func (e CalculationCompleted) OrderID() string { return e.orderID }
func (e CalculationCompleted) FirstRuleCost() Money { return e.firstRuleCost }
func (e CalculationCompleted) FinalCost() Money { return e.finalCost }

func (e CalculationCompleted) AppliedRules() []string {
	return slices.Clone(e.appliedRules)
}
