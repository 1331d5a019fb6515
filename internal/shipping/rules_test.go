package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/parcelio/shipping-api/internal/entity"
)

type baseRateLoaderFunc func(ctx context.Context) (BaseRateConfig, error)

func (f baseRateLoaderFunc) Load(ctx context.Context) (BaseRateConfig, error) { return f(ctx) }

type weightLoaderFunc func(ctx context.Context) (WeightSurchargeConfig, error)

func (f weightLoaderFunc) Load(ctx context.Context) (WeightSurchargeConfig, error) { return f(ctx) }

type freeLoaderFunc func(ctx context.Context) (FreeShippingConfig, error)

func (f freeLoaderFunc) Load(ctx context.Context) (FreeShippingConfig, error) { return f(ctx) }

type halfLoaderFunc func(ctx context.Context) (HalfPriceConfig, error)

func (f halfLoaderFunc) Load(ctx context.Context) (HalfPriceConfig, error) { return f(ctx) }

type fridayLoaderFunc func(ctx context.Context) (FridayPromotionConfig, error)

func (f fridayLoaderFunc) Load(ctx context.Context) (FridayPromotionConfig, error) { return f(ctx) }

func testBaseRateConfig(t *testing.T) BaseRateConfig {
	t.Helper()
	return NewBaseRateConfig(map[string]domain.Money{
		"PL": money(t, 1000),
		"DE": money(t, 2000),
		"US": money(t, 5000),
	}, money(t, 3999))
}

func staticBaseRate(t *testing.T) BaseRateConfigLoader {
	t.Helper()
	cfg := testBaseRateConfig(t)
	return baseRateLoaderFunc(func(context.Context) (BaseRateConfig, error) { return cfg, nil })
}

func staticWeightSurcharge(t *testing.T) WeightSurchargeConfigLoader {
	t.Helper()
	cfg := NewWeightSurchargeConfig(grams(t, 5000), money(t, 300))
	return weightLoaderFunc(func(context.Context) (WeightSurchargeConfig, error) { return cfg, nil })
}

func staticFreeShipping(t *testing.T) FreeShippingConfigLoader {
	t.Helper()
	cfg := NewFreeShippingConfig(money(t, 40000), []domain.Country{
		country(t, "PL"), country(t, "DE"), country(t, "FR"), country(t, "GB"),
	})
	return freeLoaderFunc(func(context.Context) (FreeShippingConfig, error) { return cfg, nil })
}

func staticHalfPrice(t *testing.T) HalfPriceConfigLoader {
	t.Helper()
	cfg := NewHalfPriceConfig(money(t, 40000), 50, []domain.Country{country(t, "US")})
	return halfLoaderFunc(func(context.Context) (HalfPriceConfig, error) { return cfg, nil })
}

func staticFriday(t *testing.T) FridayPromotionConfigLoader {
	t.Helper()
	cfg := NewFridayPromotionConfig(50)
	return fridayLoaderFunc(func(context.Context) (FridayPromotionConfig, error) { return cfg, nil })
}

func TestBaseCountryRateRule(t *testing.T) {
	t.Parallel()

	rule := NewBaseCountryRateRule(staticBaseRate(t), 100)
	ctx := context.Background()

	calc := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))

	ok, err := rule.Supports(ctx, calc)
	require.NoError(t, err)
	require.True(t, ok, "base rate always fires")

	next, err := rule.Apply(ctx, calc)
	require.NoError(t, err)
	require.Equal(t, int64(1000), next.CurrentCost().Cents())
	require.Equal(t, []string{RuleBaseCountryRate}, next.AppliedRules())
}

func TestBaseCountryRateRuleDefaultsForUnlistedCountry(t *testing.T) {
	t.Parallel()

	rule := NewBaseCountryRateRule(staticBaseRate(t), 100)

	next, err := rule.Apply(context.Background(), ContextForOrder(order(t, "CZ", 2000, 10000, "2026-08-24")))
	require.NoError(t, err)
	require.Equal(t, int64(3999), next.CurrentCost().Cents())
}

func TestBaseCountryRateRulePropagatesLoaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("config gone")
	rule := NewBaseCountryRateRule(baseRateLoaderFunc(func(context.Context) (BaseRateConfig, error) {
		return BaseRateConfig{}, boom
	}), 100)

	_, err := rule.Apply(context.Background(), ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24")))
	require.ErrorIs(t, err, boom)
}

func TestBaseCountryRateRuleMemoizesConfig(t *testing.T) {
	t.Parallel()

	calls := 0
	cfg := testBaseRateConfig(t)
	rule := NewBaseCountryRateRule(baseRateLoaderFunc(func(context.Context) (BaseRateConfig, error) {
		calls++
		return cfg, nil
	}), 100)

	calc := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24"))
	_, err := rule.Apply(context.Background(), calc)
	require.NoError(t, err)
	_, err = rule.Apply(context.Background(), calc)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestWeightSurchargeRuleSupports(t *testing.T) {
	t.Parallel()

	rule := NewWeightSurchargeRule(staticWeightSurcharge(t), 200)
	ctx := context.Background()

	atLimit := ContextForOrder(order(t, "PL", 5000, 10000, "2026-08-24"))
	ok, err := rule.Supports(ctx, atLimit)
	require.NoError(t, err)
	require.False(t, ok, "at the limit, no surcharge")

	over := ContextForOrder(order(t, "PL", 5001, 10000, "2026-08-24"))
	ok, err = rule.Supports(ctx, over)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWeightSurchargeRuleChargesStartedKilograms(t *testing.T) {
	t.Parallel()

	rule := NewWeightSurchargeRule(staticWeightSurcharge(t), 200)
	ctx := context.Background()

	cases := []struct {
		grams int64
		want  int64 // surcharge on top of 1000 base
	}{
		{5001, 300},
		{6000, 300},
		{6001, 600},
		{7200, 900},
	}
	for _, tc := range cases {
		calc := ContextForOrder(order(t, "PL", tc.grams, 10000, "2026-08-24")).
			WithCost(money(t, 1000), RuleBaseCountryRate, "")

		next, err := rule.Apply(ctx, calc)
		require.NoError(t, err)
		require.Equal(t, 1000+tc.want, next.CurrentCost().Cents(), "%d g", tc.grams)
	}
}

func TestFreeShippingRule(t *testing.T) {
	t.Parallel()

	rule := NewFreeShippingRule(staticFreeShipping(t), 300)
	ctx := context.Background()

	eligible := ContextForOrder(order(t, "PL", 2000, 40000, "2026-08-24"))
	ok, err := rule.Supports(ctx, eligible)
	require.NoError(t, err)
	require.True(t, ok, "threshold is inclusive")

	below := ContextForOrder(order(t, "PL", 2000, 39999, "2026-08-24"))
	ok, err = rule.Supports(ctx, below)
	require.NoError(t, err)
	require.False(t, ok)

	wrongCountry := ContextForOrder(order(t, "US", 2000, 50000, "2026-08-24"))
	ok, err = rule.Supports(ctx, wrongCountry)
	require.NoError(t, err)
	require.False(t, ok)

	next, err := rule.Apply(ctx, eligible.WithCost(money(t, 1000), RuleBaseCountryRate, ""))
	require.NoError(t, err)
	require.True(t, next.IsFreeShipping())
}

func TestHalfPriceShippingRule(t *testing.T) {
	t.Parallel()

	rule := NewHalfPriceShippingRule(staticHalfPrice(t), 305)
	ctx := context.Background()

	eligible := ContextForOrder(order(t, "US", 7200, 50000, "2026-08-24"))
	ok, err := rule.Supports(ctx, eligible)
	require.NoError(t, err)
	require.True(t, ok)

	// discount applies to the accumulated cost, not the flat base
	accumulated := eligible.
		WithCost(money(t, 5000), RuleBaseCountryRate, "").
		WithCost(money(t, 5900), RuleWeightSurcharge, "")

	next, err := rule.Apply(ctx, accumulated)
	require.NoError(t, err)
	require.Equal(t, int64(2950), next.CurrentCost().Cents())

	nonUS := ContextForOrder(order(t, "PL", 2000, 50000, "2026-08-24"))
	ok, err = rule.Supports(ctx, nonUS)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFridayPromotionRule(t *testing.T) {
	t.Parallel()

	rule := NewFridayPromotionRule(staticFriday(t), 400)
	ctx := context.Background()

	friday := ContextForOrder(order(t, "US", 2000, 10000, "2026-08-28")).
		WithCost(money(t, 2950), RuleHalfPriceShipping, "")

	ok, err := rule.Supports(ctx, friday)
	require.NoError(t, err)
	require.True(t, ok)

	next, err := rule.Apply(ctx, friday)
	require.NoError(t, err)
	require.Equal(t, int64(1475), next.CurrentCost().Cents())
}

func TestHalfPriceShippingRuleExcessiveDiscountFloorsAtZero(t *testing.T) {
	t.Parallel()

	// misconfigured discount above 100% zeroes the cost, never negates it
	cfg := NewHalfPriceConfig(money(t, 40000), 150, []domain.Country{country(t, "US")})
	rule := NewHalfPriceShippingRule(halfLoaderFunc(func(context.Context) (HalfPriceConfig, error) {
		return cfg, nil
	}), 305)

	accumulated := ContextForOrder(order(t, "US", 2000, 50000, "2026-08-24")).
		WithCost(money(t, 5000), RuleBaseCountryRate, "")

	next, err := rule.Apply(context.Background(), accumulated)
	require.NoError(t, err)
	require.True(t, next.IsFreeShipping())
	require.Equal(t, int64(0), next.CurrentCost().Cents())
}

func TestFridayPromotionRuleExcessiveDiscountFloorsAtZero(t *testing.T) {
	t.Parallel()

	rule := NewFridayPromotionRule(fridayLoaderFunc(func(context.Context) (FridayPromotionConfig, error) {
		return NewFridayPromotionConfig(150), nil
	}), 400)

	friday := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-28")).
		WithCost(money(t, 1000), RuleBaseCountryRate, "")

	next, err := rule.Apply(context.Background(), friday)
	require.NoError(t, err)
	require.Equal(t, int64(0), next.CurrentCost().Cents())
}

func TestFridayPromotionRuleSkipsNonFriday(t *testing.T) {
	t.Parallel()

	rule := NewFridayPromotionRule(staticFriday(t), 400)

	monday := ContextForOrder(order(t, "PL", 2000, 10000, "2026-08-24")).
		WithCost(money(t, 1000), RuleBaseCountryRate, "")

	ok, err := rule.Supports(context.Background(), monday)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFridayPromotionRuleSkipsFreeShipments(t *testing.T) {
	t.Parallel()

	// loader must not even be consulted for a free shipment
	rule := NewFridayPromotionRule(fridayLoaderFunc(func(context.Context) (FridayPromotionConfig, error) {
		t.Fatal("loader consulted for a free shipment")
		return FridayPromotionConfig{}, nil
	}), 400)

	free := ContextForOrder(order(t, "PL", 2000, 50000, "2026-08-28")).
		WithCost(money(t, 1000), RuleBaseCountryRate, "").
		WithCost(money(t, 0), RuleFreeShipping, "")

	ok, err := rule.Supports(context.Background(), free)
	require.NoError(t, err)
	require.False(t, ok)
}
