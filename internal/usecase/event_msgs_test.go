package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/parcelio/shipping-api/internal/entity"
)

func TestEncodeRuleApplied(t *testing.T) {
	t.Parallel()

	event := domain.NewRuleApplied("order-1", "base_country_rate",
		money(t, 0), money(t, 1000), "Base shipping rate for Poland: 10.00 PLN")

	raw, err := EncodeEvent(event)
	require.NoError(t, err)

	var msg RuleAppliedMsg
	require.NoError(t, json.Unmarshal(raw, &msg))
	require.Equal(t, domain.EventRuleApplied, msg.Event)
	require.Equal(t, "order-1", msg.OrderID)
	require.Equal(t, "base_country_rate", msg.Rule)
	require.Equal(t, int64(0), msg.CostBefore.Cents)
	require.Equal(t, int64(1000), msg.CostAfter.Cents)
	require.Equal(t, domain.PLN, msg.CostAfter.Currency)
	require.False(t, msg.OccurredAt.IsZero())
}

func TestEncodeCalculationCompleted(t *testing.T) {
	t.Parallel()

	event := domain.NewCalculationCompleted("order-1",
		money(t, 5000), money(t, 1475),
		[]string{"base_country_rate", "half_price_shipping"})

	raw, err := EncodeEvent(event)
	require.NoError(t, err)

	var msg CalculationCompletedMsg
	require.NoError(t, json.Unmarshal(raw, &msg))
	require.Equal(t, domain.EventCalculationCompleted, msg.Event)
	require.Equal(t, int64(5000), msg.FirstRuleCost.Cents)
	require.Equal(t, int64(1475), msg.FinalCost.Cents)
	require.Equal(t, []string{"base_country_rate", "half_price_shipping"}, msg.AppliedRules)
}

func TestEncodeUnknownEventFails(t *testing.T) {
	t.Parallel()

	_, err := EncodeEvent(nil)
	require.Error(t, err)
}
