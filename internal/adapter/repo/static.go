package repo

import (
	"context"
	"strings"
	"sync"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/shipping"
	"github.com/parcelio/shipping-api/internal/usecase"
)

// Static loaders serve a fixed, in-process configuration snapshot. They
// back the CLI demo mode (no database required) and the test suites. The
// Default* constructors carry the reference configuration:
//
//	base rates  PL 10.00, DE 20.00, US 50.00, default 39.99 PLN
//	surcharge   3.00 PLN per started kg above 5 kg
//	free        cart >= 400.00 PLN in PL, DE, FR, GB
//	half price  50% off, cart >= 400.00 PLN in US
//	friday      50% off

type StaticCountryRepo struct {
	mu        sync.RWMutex
	countries map[string]domain.Country
}

func NewStaticCountryRepo(countries ...domain.Country) *StaticCountryRepo {
	r := &StaticCountryRepo{countries: make(map[string]domain.Country)}
	for _, c := range countries {
		r.countries[c.Code()] = c
	}
	return r
}

// DefaultCountryRepo seeds the reference country master data.
func DefaultCountryRepo() *StaticCountryRepo {
	seed := []struct {
		code, name string
	}{
		{"PL", "Poland"},
		{"DE", "Germany"},
		{"US", "United States"},
		{"FR", "France"},
		{"GB", "United Kingdom"},
		{"CZ", "Czech Republic"},
		{"ES", "Spain"},
		{"IT", "Italy"},
	}
	r := NewStaticCountryRepo()
	for i, s := range seed {
		c, err := domain.NewCountry(int64(i+1), s.code, s.name, true)
		if err != nil {
			panic(err) // static seed, must be valid
		}
		r.countries[c.Code()] = c
	}
	return r
}

func (r *StaticCountryRepo) Add(c domain.Country) {
	r.mu.Lock()
	r.countries[c.Code()] = c
	r.mu.Unlock()
}

func (r *StaticCountryRepo) FindByCode(ctx context.Context, code string) (*domain.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.countries[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *StaticCountryRepo) FindAllActive(ctx context.Context) ([]domain.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Country
	for _, c := range r.countries {
		if c.Active() {
			out = append(out, c)
		}
	}
	return out, nil
}

type StaticBaseRateLoader struct{ cfg shipping.BaseRateConfig }

func NewStaticBaseRateLoader(cfg shipping.BaseRateConfig) *StaticBaseRateLoader {
	return &StaticBaseRateLoader{cfg: cfg}
}

func DefaultBaseRateLoader() *StaticBaseRateLoader {
	return NewStaticBaseRateLoader(shipping.NewBaseRateConfig(
		map[string]domain.Money{
			"PL": mustMoney(1000),
			"DE": mustMoney(2000),
			"US": mustMoney(5000),
		},
		mustMoney(3999),
	))
}

func (l *StaticBaseRateLoader) Load(ctx context.Context) (shipping.BaseRateConfig, error) {
	return l.cfg, nil
}

type StaticWeightSurchargeLoader struct{ cfg shipping.WeightSurchargeConfig }

func NewStaticWeightSurchargeLoader(cfg shipping.WeightSurchargeConfig) *StaticWeightSurchargeLoader {
	return &StaticWeightSurchargeLoader{cfg: cfg}
}

func DefaultWeightSurchargeLoader() *StaticWeightSurchargeLoader {
	return NewStaticWeightSurchargeLoader(shipping.NewWeightSurchargeConfig(
		mustWeight(5000),
		mustMoney(300),
	))
}

func (l *StaticWeightSurchargeLoader) Load(ctx context.Context) (shipping.WeightSurchargeConfig, error) {
	return l.cfg, nil
}

type StaticFreeShippingLoader struct{ cfg shipping.FreeShippingConfig }

func NewStaticFreeShippingLoader(cfg shipping.FreeShippingConfig) *StaticFreeShippingLoader {
	return &StaticFreeShippingLoader{cfg: cfg}
}

func DefaultFreeShippingLoader(countries usecase.CountryRepository) *StaticFreeShippingLoader {
	return NewStaticFreeShippingLoader(shipping.NewFreeShippingConfig(
		mustMoney(40000),
		resolveCountries(countries, "PL", "DE", "FR", "GB"),
	))
}

func (l *StaticFreeShippingLoader) Load(ctx context.Context) (shipping.FreeShippingConfig, error) {
	return l.cfg, nil
}

type StaticHalfPriceLoader struct{ cfg shipping.HalfPriceConfig }

func NewStaticHalfPriceLoader(cfg shipping.HalfPriceConfig) *StaticHalfPriceLoader {
	return &StaticHalfPriceLoader{cfg: cfg}
}

func DefaultHalfPriceLoader(countries usecase.CountryRepository) *StaticHalfPriceLoader {
	return NewStaticHalfPriceLoader(shipping.NewHalfPriceConfig(
		mustMoney(40000),
		50,
		resolveCountries(countries, "US"),
	))
}

func (l *StaticHalfPriceLoader) Load(ctx context.Context) (shipping.HalfPriceConfig, error) {
	return l.cfg, nil
}

type StaticFridayPromotionLoader struct{ cfg shipping.FridayPromotionConfig }

func NewStaticFridayPromotionLoader(cfg shipping.FridayPromotionConfig) *StaticFridayPromotionLoader {
	return &StaticFridayPromotionLoader{cfg: cfg}
}

func DefaultFridayPromotionLoader() *StaticFridayPromotionLoader {
	return NewStaticFridayPromotionLoader(shipping.NewFridayPromotionConfig(50))
}

func (l *StaticFridayPromotionLoader) Load(ctx context.Context) (shipping.FridayPromotionConfig, error) {
	return l.cfg, nil
}

func resolveCountries(repo usecase.CountryRepository, codes ...string) []domain.Country {
	var out []domain.Country
	for _, code := range codes {
		c, err := repo.FindByCode(context.Background(), code)
		if err == nil && c != nil {
			out = append(out, *c)
		}
	}
	return out
}

func mustMoney(cents int64) domain.Money {
	m, err := domain.NewMoney(cents, domain.PLN)
	if err != nil {
		panic(err)
	}
	return m
}

func mustWeight(grams int64) domain.Weight {
	w, err := domain.WeightFromGrams(grams)
	if err != nil {
		panic(err)
	}
	return w
}

var (
	_ usecase.CountryRepository            = (*StaticCountryRepo)(nil)
	_ shipping.BaseRateConfigLoader        = (*StaticBaseRateLoader)(nil)
	_ shipping.WeightSurchargeConfigLoader = (*StaticWeightSurchargeLoader)(nil)
	_ shipping.FreeShippingConfigLoader    = (*StaticFreeShippingLoader)(nil)
	_ shipping.HalfPriceConfigLoader       = (*StaticHalfPriceLoader)(nil)
	_ shipping.FridayPromotionConfigLoader = (*StaticFridayPromotionLoader)(nil)
)
