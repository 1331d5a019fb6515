package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/parcelio/shipping-api/internal/entity"
)

// Wire shape of the domain events, shared by every publishing sink
// (RabbitMQ, Kafka, outbox). The core itself defines no wire format; this
// envelope is the application's.

type MoneyMsg struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

func moneyMsg(m domain.Money) MoneyMsg {
	return MoneyMsg{Cents: m.Cents(), Currency: m.Currency()}
}

type RuleAppliedMsg struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"orderId"`
	Rule        string    `json:"rule"`
	CostBefore  MoneyMsg  `json:"costBefore"`
	CostAfter   MoneyMsg  `json:"costAfter"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type CalculationCompletedMsg struct {
	Event         string    `json:"event"`
	OrderID       string    `json:"orderId"`
	FirstRuleCost MoneyMsg  `json:"firstRuleCost"`
	FinalCost     MoneyMsg  `json:"finalCost"`
	AppliedRules  []string  `json:"appliedRules"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// ConfigChangedMsg is sent by the configuration admin tooling whenever
// the active shipping configuration changes; consuming it triggers a rule
// rebuild.
type ConfigChangedMsg struct {
	ConfigID  int64     `json:"configId"`
	ChangedAt time.Time `json:"changedAt"`
}

// EncodeEvent marshals a domain event into its wire envelope.
func EncodeEvent(event domain.DomainEvent) ([]byte, error) {
	switch e := event.(type) {
	case domain.RuleApplied:
		return json.Marshal(RuleAppliedMsg{
			Event:       e.EventName(),
			OrderID:     e.OrderID(),
			Rule:        e.RuleName(),
			CostBefore:  moneyMsg(e.CostBefore()),
			CostAfter:   moneyMsg(e.CostAfter()),
			Description: e.Description(),
			OccurredAt:  e.OccurredAt(),
		})
	case domain.CalculationCompleted:
		return json.Marshal(CalculationCompletedMsg{
			Event:         e.EventName(),
			OrderID:       e.OrderID(),
			FirstRuleCost: moneyMsg(e.FirstRuleCost()),
			FinalCost:     moneyMsg(e.FinalCost()),
			AppliedRules:  e.AppliedRules(),
			OccurredAt:    e.OccurredAt(),
		})
	default:
		return nil, fmt.Errorf("unknown event type %T", event)
	}
}
