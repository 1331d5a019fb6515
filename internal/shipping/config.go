package shipping

import (
	"context"
	"maps"
	"slices"

	domain "github.com/parcelio/shipping-api/internal/entity"
)

// Configuration snapshots, one per rule family. Each is an immutable value
// loaded from the currently active configuration. Rules memoize their
// snapshot for the lifetime of the rule instance; staleness is resolved by
// constructing fresh rule instances, not by cache invalidation.

// BaseRateConfigLoader and friends are the loader ports the rules depend
// on. A loader must fail loudly when no active configuration exists or the
// rule's configuration is disabled, never substitute a default.
type (
	BaseRateConfigLoader interface {
		Load(ctx context.Context) (BaseRateConfig, error)
	}
	WeightSurchargeConfigLoader interface {
		Load(ctx context.Context) (WeightSurchargeConfig, error)
	}
	FreeShippingConfigLoader interface {
		Load(ctx context.Context) (FreeShippingConfig, error)
	}
	HalfPriceConfigLoader interface {
		Load(ctx context.Context) (HalfPriceConfig, error)
	}
	FridayPromotionConfigLoader interface {
		Load(ctx context.Context) (FridayPromotionConfig, error)
	}
)

// BaseRateConfig holds per-country base rates plus the default for
// countries not explicitly listed. The default is a business rule, not an
// error path.
type BaseRateConfig struct {
	rates       map[string]domain.Money
	defaultRate domain.Money
}

func NewBaseRateConfig(rates map[string]domain.Money, defaultRate domain.Money) BaseRateConfig {
	return BaseRateConfig{rates: maps.Clone(rates), defaultRate: defaultRate}
}

func (c BaseRateConfig) RateFor(countryCode string) domain.Money {
	if rate, ok := c.rates[countryCode]; ok {
		return rate
	}
	return c.defaultRate
}

func (c BaseRateConfig) DefaultRate() domain.Money { return c.defaultRate }

// WeightSurchargeConfig: no surcharge up to the limit inclusive, then a
// flat amount per started kilogram above it.
type WeightSurchargeConfig struct {
	limit          domain.Weight
	surchargePerKg domain.Money
}

func NewWeightSurchargeConfig(limit domain.Weight, surchargePerKg domain.Money) WeightSurchargeConfig {
	return WeightSurchargeConfig{limit: limit, surchargePerKg: surchargePerKg}
}

func (c WeightSurchargeConfig) Limit() domain.Weight         { return c.limit }
func (c WeightSurchargeConfig) SurchargePerKg() domain.Money { return c.surchargePerKg }

// FreeShippingConfig: orders at or above the threshold ship free in the
// eligible countries.
type FreeShippingConfig struct {
	threshold domain.Money
	countries []domain.Country
}

func NewFreeShippingConfig(threshold domain.Money, countries []domain.Country) FreeShippingConfig {
	return FreeShippingConfig{threshold: threshold, countries: slices.Clone(countries)}
}

func (c FreeShippingConfig) Threshold() domain.Money { return c.threshold }

func (c FreeShippingConfig) AppliesTo(country domain.Country) bool {
	return slices.ContainsFunc(c.countries, country.Equals)
}

// HalfPriceConfig: orders at or above the threshold get a percentage
// discount on the accumulated cost in the eligible countries.
type HalfPriceConfig struct {
	threshold       domain.Money
	discountPercent int
	countries       []domain.Country
}

func NewHalfPriceConfig(threshold domain.Money, discountPercent int, countries []domain.Country) HalfPriceConfig {
	return HalfPriceConfig{
		threshold:       threshold,
		discountPercent: discountPercent,
		countries:       slices.Clone(countries),
	}
}

func (c HalfPriceConfig) Threshold() domain.Money { return c.threshold }
func (c HalfPriceConfig) DiscountPercent() int    { return c.discountPercent }

func (c HalfPriceConfig) AppliesTo(country domain.Country) bool {
	return slices.ContainsFunc(c.countries, country.Equals)
}

// FridayPromotionConfig: percentage discount applied on Fridays.
type FridayPromotionConfig struct {
	discountPercent int
}

func NewFridayPromotionConfig(discountPercent int) FridayPromotionConfig {
	return FridayPromotionConfig{discountPercent: discountPercent}
}

func (c FridayPromotionConfig) DiscountPercent() int { return c.discountPercent }
