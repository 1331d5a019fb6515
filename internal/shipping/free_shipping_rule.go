package shipping

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/parcelio/shipping-api/internal/entity"
)

// RuleFreeShipping zeroes the cost for orders at or above the configured
// cart value threshold, in the configured set of countries.
const RuleFreeShipping = "free_shipping"

type FreeShippingRule struct {
	loader   FreeShippingConfigLoader
	priority int

	once sync.Once
	cfg  FreeShippingConfig
	err  error
}

func NewFreeShippingRule(loader FreeShippingConfigLoader, priority int) *FreeShippingRule {
	return &FreeShippingRule{loader: loader, priority: priority}
}

func (r *FreeShippingRule) Name() string  { return RuleFreeShipping }
func (r *FreeShippingRule) Priority() int { return r.priority }

func (r *FreeShippingRule) Supports(ctx context.Context, calc Context) (bool, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return false, err
	}
	if !cfg.AppliesTo(calc.Order().Country()) {
		return false, nil
	}
	return calc.Order().CartValue().GreaterThanOrEqual(cfg.Threshold())
}

func (r *FreeShippingRule) Apply(ctx context.Context, calc Context) (Context, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return Context{}, err
	}

	return calc.WithCost(
		domain.Zero(cfg.Threshold().Currency()),
		RuleFreeShipping,
		fmt.Sprintf("Free shipping (cart >= %s)", cfg.Threshold().Format()),
	), nil
}

func (r *FreeShippingRule) config(ctx context.Context) (FreeShippingConfig, error) {
	r.once.Do(func() {
		r.cfg, r.err = r.loader.Load(ctx)
	})
	return r.cfg, r.err
}

var _ Rule = (*FreeShippingRule)(nil)
