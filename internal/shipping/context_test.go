package shipping

import (
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/parcelio/shipping-api/internal/entity"
)

func money(t *testing.T, cents int64) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(cents, domain.PLN)
	require.NoError(t, err)
	return m
}

func grams(t *testing.T, g int64) domain.Weight {
	t.Helper()
	w, err := domain.WeightFromGrams(g)
	require.NoError(t, err)
	return w
}

func country(t *testing.T, code string) domain.Country {
	t.Helper()
	c, err := domain.NewCountry(1, code, code, true)
	require.NoError(t, err)
	return c
}

func date(t *testing.T, s string) domain.OrderDate {
	t.Helper()
	d, err := domain.ParseOrderDate(s)
	require.NoError(t, err)
	return d
}

func order(t *testing.T, code string, weightGrams, valueCents int64, dateStr string) *domain.Order {
	t.Helper()
	return domain.NewOrderWithTotals("order-1", nil,
		grams(t, weightGrams), money(t, valueCents), country(t, code), date(t, dateStr))
}

func TestContextForOrderStartsAtZero(t *testing.T) {
	t.Parallel()

	calc := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))

	require.True(t, calc.CurrentCost().IsZero())
	require.Equal(t, domain.PLN, calc.CurrentCost().Currency())
	require.Empty(t, calc.Events())
	require.Empty(t, calc.AppliedRules())
	require.True(t, calc.IsFreeShipping())
}

func TestWithCostLeavesReceiverUntouched(t *testing.T) {
	t.Parallel()

	base := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))

	next := base.WithCost(money(t, 1000), "rule-a", "step one")

	require.True(t, base.CurrentCost().IsZero())
	require.Empty(t, base.Events())
	require.Equal(t, int64(1000), next.CurrentCost().Cents())
	require.Equal(t, []string{"rule-a"}, next.AppliedRules())
	require.Len(t, next.Events(), 1)
}

func TestWithCostRecordsEvent(t *testing.T) {
	t.Parallel()

	base := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))
	next := base.WithCost(money(t, 1000), "rule-a", "step one")

	events := next.Events()
	require.Len(t, events, 1)
	applied, ok := events[0].(domain.RuleApplied)
	require.True(t, ok)
	require.Equal(t, "order-1", applied.OrderID())
	require.Equal(t, "rule-a", applied.RuleName())
	require.True(t, applied.CostBefore().IsZero())
	require.Equal(t, int64(1000), applied.CostAfter().Cents())
	require.Equal(t, "step one", applied.Description())
}

func TestFirstRuleCostSticksAfterFirstRule(t *testing.T) {
	t.Parallel()

	base := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))
	require.True(t, base.FirstRuleCost().IsZero())

	one := base.WithCost(money(t, 5000), "rule-a", "")
	two := one.WithCost(money(t, 2500), "rule-b", "")

	require.Equal(t, int64(5000), one.FirstRuleCost().Cents())
	require.Equal(t, int64(5000), two.FirstRuleCost().Cents())
	require.Equal(t, int64(2500), two.CurrentCost().Cents())
}

func TestWithAddedCost(t *testing.T) {
	t.Parallel()

	base := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))
	one := base.WithCost(money(t, 1000), "rule-a", "")

	two, err := one.WithAddedCost(money(t, 900), "rule-b", "")
	require.NoError(t, err)
	require.Equal(t, int64(1900), two.CurrentCost().Cents())

	eur, err := domain.NewMoney(100, "EUR")
	require.NoError(t, err)
	_, err = one.WithAddedCost(eur, "rule-b", "")
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestHasAppliedRule(t *testing.T) {
	t.Parallel()

	base := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))
	next := base.WithCost(money(t, 1000), "rule-a", "")

	require.True(t, next.HasAppliedRule("rule-a"))
	require.False(t, next.HasAppliedRule("rule-b"))
}

func TestEventsReturnsCopy(t *testing.T) {
	t.Parallel()

	next := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24")).
		WithCost(money(t, 1000), "rule-a", "")

	events := next.Events()
	events[0] = nil
	require.NotNil(t, next.Events()[0])
}
