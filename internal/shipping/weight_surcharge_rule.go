package shipping

import (
	"context"
	"fmt"
	"sync"
)

// RuleWeightSurcharge adds a flat amount per started kilogram above the
// configured weight limit. A 7.2 kg parcel against a 5 kg limit is 3
// started kilograms.
const RuleWeightSurcharge = "weight_surcharge"

type WeightSurchargeRule struct {
	loader   WeightSurchargeConfigLoader
	priority int

	once sync.Once
	cfg  WeightSurchargeConfig
	err  error
}

func NewWeightSurchargeRule(loader WeightSurchargeConfigLoader, priority int) *WeightSurchargeRule {
	return &WeightSurchargeRule{loader: loader, priority: priority}
}

func (r *WeightSurchargeRule) Name() string  { return RuleWeightSurcharge }
func (r *WeightSurchargeRule) Priority() int { return r.priority }

func (r *WeightSurchargeRule) Supports(ctx context.Context, calc Context) (bool, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return false, err
	}
	return calc.Order().TotalWeight().GreaterThan(cfg.Limit()), nil
}

func (r *WeightSurchargeRule) Apply(ctx context.Context, calc Context) (Context, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return Context{}, err
	}

	excessKg := calc.Order().TotalWeight().ExcessKilogramsAbove(cfg.Limit())
	surcharge := cfg.SurchargePerKg().Multiply(excessKg)

	return calc.WithAddedCost(
		surcharge,
		RuleWeightSurcharge,
		fmt.Sprintf("Weight surcharge: %d started kg above %s limit = +%s",
			excessKg, cfg.Limit().Format(), surcharge.Format()),
	)
}

func (r *WeightSurchargeRule) config(ctx context.Context) (WeightSurchargeConfig, error) {
	r.once.Do(func() {
		r.cfg, r.err = r.loader.Load(ctx)
	})
	return r.cfg, r.err
}

var _ Rule = (*WeightSurchargeRule)(nil)
