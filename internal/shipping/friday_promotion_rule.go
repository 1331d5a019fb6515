package shipping

import (
	"context"
	"fmt"
	"sync"
)

// RuleFridayPromotion discounts whatever cost survives all prior rules,
// every Friday. It never fires on an already-free shipment: discounting
// zero would be a no-op that still polluted the applied-rule audit trail.
const RuleFridayPromotion = "friday_promotion"

type FridayPromotionRule struct {
	loader   FridayPromotionConfigLoader
	priority int

	once sync.Once
	cfg  FridayPromotionConfig
	err  error
}

func NewFridayPromotionRule(loader FridayPromotionConfigLoader, priority int) *FridayPromotionRule {
	return &FridayPromotionRule{loader: loader, priority: priority}
}

func (r *FridayPromotionRule) Name() string  { return RuleFridayPromotion }
func (r *FridayPromotionRule) Priority() int { return r.priority }

func (r *FridayPromotionRule) Supports(ctx context.Context, calc Context) (bool, error) {
	return calc.Order().Date().IsFriday() && !calc.IsFreeShipping(), nil
}

func (r *FridayPromotionRule) Apply(ctx context.Context, calc Context) (Context, error) {
	cfg, err := r.config(ctx)
	if err != nil {
		return Context{}, err
	}

	discounted := calc.CurrentCost().Percentage(100 - cfg.DiscountPercent())

	return calc.WithCost(
		discounted,
		RuleFridayPromotion,
		fmt.Sprintf("Friday promotion: %d%% discount = %s",
			cfg.DiscountPercent(), discounted.Format()),
	), nil
}

func (r *FridayPromotionRule) config(ctx context.Context) (FridayPromotionConfig, error) {
	r.once.Do(func() {
		r.cfg, r.err = r.loader.Load(ctx)
	})
	return r.cfg, r.err
}

var _ Rule = (*FridayPromotionRule)(nil)
