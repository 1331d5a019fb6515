package shipping

import (
	"context"
	"fmt"
	"sync"
)

// RuleHalfPriceShipping applies a percentage discount to whatever cost has
// accumulated so far (base plus surcharges, not a flat rate) for orders at
// or above the threshold in its own set of countries. The reference
// configuration keeps its country set disjoint from free shipping's; the
// engine does not enforce that exclusivity.
const RuleHalfPriceShipping = "half_price_shipping"

type HalfPriceShippingRule struct {
	loader   HalfPriceConfigLoader
	priority int

	once sync.Once
	cfg  HalfPriceConfig
	err  error
}

func NewHalfPriceShippingRule(loader HalfPriceConfigLoader, priority int) *HalfPriceShippingRule {
	return &HalfPriceShippingRule{loader: loader, priority: priority}
}

func (r *HalfPriceShippingRule) Name() string  { return RuleHalfPriceShipping }
func (r *HalfPriceShippingRule) Priority() int { return r.priority }

func (r *HalfPriceShippingRule) Supports(ctx context.Context, calc Context) (bool, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return false, err
	}
	if !cfg.AppliesTo(calc.Order().Country()) {
		return false, nil
	}
	return calc.Order().CartValue().GreaterThanOrEqual(cfg.Threshold())
}

func (r *HalfPriceShippingRule) Apply(ctx context.Context, calc Context) (Context, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return Context{}, err
	}

	discounted := calc.CurrentCost().Percentage(100 - cfg.DiscountPercent())

	return calc.WithCost(
		discounted,
		RuleHalfPriceShipping,
		fmt.Sprintf("Half-price shipping (cart >= %s): %d%% discount = %s",
			cfg.Threshold().Format(), cfg.DiscountPercent(), discounted.Format()),
	), nil
}

func (r *HalfPriceShippingRule) config(ctx context.Context) (HalfPriceConfig, error) {
	r.once.Do(func() {
		r.cfg, r.err = r.loader.Load(ctx)
	})
	return r.cfg, r.err
}

var _ Rule = (*HalfPriceShippingRule)(nil)
