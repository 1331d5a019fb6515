package shipping

import (
	"context"
	"fmt"
	"sync"
)

// RuleBaseCountryRate applies the configured per-country rate, falling
// back to the configured default for unlisted countries. It always fires,
// establishing the base every later rule builds on.
const RuleBaseCountryRate = "base_country_rate"

type BaseCountryRateRule struct {
	loader   BaseRateConfigLoader
	priority int

	once sync.Once
	cfg  BaseRateConfig
	err  error
}

func NewBaseCountryRateRule(loader BaseRateConfigLoader, priority int) *BaseCountryRateRule {
	return &BaseCountryRateRule{loader: loader, priority: priority}
}

func (r *BaseCountryRateRule) Name() string  { return RuleBaseCountryRate }
func (r *BaseCountryRateRule) Priority() int { return r.priority }

func (r *BaseCountryRateRule) Supports(ctx context.Context, calc Context) (bool, error) {
	return true, nil
}

func (r *BaseCountryRateRule) Apply(ctx context.Context, calc Context) (Context, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return Context{}, err
	}

	country := calc.Order().Country()
	rate := cfg.RateFor(country.Code())

	return calc.WithCost(
		rate,
		RuleBaseCountryRate,
		fmt.Sprintf("Base shipping rate for %s: %s", country.Name(), rate.Format()),
	), nil
}

// config memoizes the snapshot for the lifetime of this rule instance.
// Recreate the rule when the active configuration changes.
func (r *BaseCountryRateRule) config(ctx context.Context) (BaseRateConfig, error) {
	r.once.Do(func() {
		r.cfg, r.err = r.loader.Load(ctx)
	})
	return r.cfg, r.err
}

var _ Rule = (*BaseCountryRateRule)(nil)
