package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/shipping"
	"github.com/parcelio/shipping-api/internal/usecase"
)

// Configuration loaders backed by MySQL. Each loads the snapshot for the
// single active shipping configuration; a missing or disabled
// configuration is a hard error, never a silent default.
var (
	ErrNoActiveConfig = errors.New("no active shipping configuration")
	ErrConfigDisabled = errors.New("rule configuration disabled or missing")
)

// activeConfigID resolves the single currently active configuration row.
func activeConfigID(ctx context.Context, db *sql.DB) (int64, error) {
	row := db.QueryRowContext(ctx, `
SELECT id FROM shipping_configs WHERE is_active = 1 ORDER BY id DESC LIMIT 1`)

	var id int64
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNoActiveConfig
		}
		return 0, err
	}
	return id, nil
}

type MySQLBaseRateConfigRepo struct {
	db        *sql.DB
	countries usecase.CountryRepository
}

func NewMySQLBaseRateConfigRepo(db *sql.DB, countries usecase.CountryRepository) *MySQLBaseRateConfigRepo {
	return &MySQLBaseRateConfigRepo{db: db, countries: countries}
}

func (r *MySQLBaseRateConfigRepo) Load(ctx context.Context) (shipping.BaseRateConfig, error) {
	configID, err := activeConfigID(ctx, r.db)
	if err != nil {
		return shipping.BaseRateConfig{}, err
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, default_cents, currency FROM base_rate_configs
WHERE config_id = ? AND is_enabled = 1`, configID)

	var (
		id           int64
		defaultCents int64
		currency     string
	)
	if err := row.Scan(&id, &defaultCents, &currency); err != nil {
		if err == sql.ErrNoRows {
			return shipping.BaseRateConfig{}, fmt.Errorf("base rate: %w", ErrConfigDisabled)
		}
		return shipping.BaseRateConfig{}, err
	}

	defaultRate, err := domain.NewMoney(defaultCents, currency)
	if err != nil {
		return shipping.BaseRateConfig{}, fmt.Errorf("base rate default: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT country_code, cents FROM base_rate_country_rates WHERE base_rate_config_id = ?`, id)
	if err != nil {
		return shipping.BaseRateConfig{}, err
	}
	defer rows.Close()

	rates := make(map[string]domain.Money)
	for rows.Next() {
		var (
			code  string
			cents int64
		)
		if err := rows.Scan(&code, &cents); err != nil {
			return shipping.BaseRateConfig{}, err
		}
		// Skip codes not present in country master data, same as the
		// loaders below do for eligibility scopes.
		country, err := r.countries.FindByCode(ctx, code)
		if err != nil {
			return shipping.BaseRateConfig{}, err
		}
		if country == nil {
			continue
		}
		rate, err := domain.NewMoney(cents, currency)
		if err != nil {
			return shipping.BaseRateConfig{}, fmt.Errorf("base rate %s: %w", code, err)
		}
		rates[country.Code()] = rate
	}
	if err := rows.Err(); err != nil {
		return shipping.BaseRateConfig{}, err
	}

	return shipping.NewBaseRateConfig(rates, defaultRate), nil
}

type MySQLWeightSurchargeConfigRepo struct {
	db *sql.DB
}

func NewMySQLWeightSurchargeConfigRepo(db *sql.DB) *MySQLWeightSurchargeConfigRepo {
	return &MySQLWeightSurchargeConfigRepo{db: db}
}

func (r *MySQLWeightSurchargeConfigRepo) Load(ctx context.Context) (shipping.WeightSurchargeConfig, error) {
	configID, err := activeConfigID(ctx, r.db)
	if err != nil {
		return shipping.WeightSurchargeConfig{}, err
	}

	row := r.db.QueryRowContext(ctx, `
SELECT limit_grams, per_kg_cents, currency FROM weight_surcharge_configs
WHERE config_id = ? AND is_enabled = 1`, configID)

	var (
		limitGrams int64
		perKgCents int64
		currency   string
	)
	if err := row.Scan(&limitGrams, &perKgCents, &currency); err != nil {
		if err == sql.ErrNoRows {
			return shipping.WeightSurchargeConfig{}, fmt.Errorf("weight surcharge: %w", ErrConfigDisabled)
		}
		return shipping.WeightSurchargeConfig{}, err
	}

	limit, err := domain.WeightFromGrams(limitGrams)
	if err != nil {
		return shipping.WeightSurchargeConfig{}, fmt.Errorf("weight surcharge limit: %w", err)
	}
	perKg, err := domain.NewMoney(perKgCents, currency)
	if err != nil {
		return shipping.WeightSurchargeConfig{}, fmt.Errorf("weight surcharge rate: %w", err)
	}

	return shipping.NewWeightSurchargeConfig(limit, perKg), nil
}

type MySQLFreeShippingConfigRepo struct {
	db        *sql.DB
	countries usecase.CountryRepository
}

func NewMySQLFreeShippingConfigRepo(db *sql.DB, countries usecase.CountryRepository) *MySQLFreeShippingConfigRepo {
	return &MySQLFreeShippingConfigRepo{db: db, countries: countries}
}

func (r *MySQLFreeShippingConfigRepo) Load(ctx context.Context) (shipping.FreeShippingConfig, error) {
	configID, err := activeConfigID(ctx, r.db)
	if err != nil {
		return shipping.FreeShippingConfig{}, err
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, threshold_cents, currency FROM free_shipping_configs
WHERE config_id = ? AND is_enabled = 1`, configID)

	var (
		id             int64
		thresholdCents int64
		currency       string
	)
	if err := row.Scan(&id, &thresholdCents, &currency); err != nil {
		if err == sql.ErrNoRows {
			return shipping.FreeShippingConfig{}, fmt.Errorf("free shipping: %w", ErrConfigDisabled)
		}
		return shipping.FreeShippingConfig{}, err
	}

	threshold, err := domain.NewMoney(thresholdCents, currency)
	if err != nil {
		return shipping.FreeShippingConfig{}, fmt.Errorf("free shipping threshold: %w", err)
	}

	countries, err := r.scopeCountries(ctx, `
SELECT country_code FROM free_shipping_countries WHERE free_shipping_config_id = ?`, id)
	if err != nil {
		return shipping.FreeShippingConfig{}, err
	}

	return shipping.NewFreeShippingConfig(threshold, countries), nil
}

func (r *MySQLFreeShippingConfigRepo) scopeCountries(ctx context.Context, query string, id int64) ([]domain.Country, error) {
	return loadScopeCountries(ctx, r.db, r.countries, query, id)
}

type MySQLHalfPriceConfigRepo struct {
	db        *sql.DB
	countries usecase.CountryRepository
}

func NewMySQLHalfPriceConfigRepo(db *sql.DB, countries usecase.CountryRepository) *MySQLHalfPriceConfigRepo {
	return &MySQLHalfPriceConfigRepo{db: db, countries: countries}
}

func (r *MySQLHalfPriceConfigRepo) Load(ctx context.Context) (shipping.HalfPriceConfig, error) {
	configID, err := activeConfigID(ctx, r.db)
	if err != nil {
		return shipping.HalfPriceConfig{}, err
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, threshold_cents, currency, discount_percent FROM half_price_configs
WHERE config_id = ? AND is_enabled = 1`, configID)

	var (
		id              int64
		thresholdCents  int64
		currency        string
		discountPercent int
	)
	if err := row.Scan(&id, &thresholdCents, &currency, &discountPercent); err != nil {
		if err == sql.ErrNoRows {
			return shipping.HalfPriceConfig{}, fmt.Errorf("half price: %w", ErrConfigDisabled)
		}
		return shipping.HalfPriceConfig{}, err
	}

	threshold, err := domain.NewMoney(thresholdCents, currency)
	if err != nil {
		return shipping.HalfPriceConfig{}, fmt.Errorf("half price threshold: %w", err)
	}

	countries, err := loadScopeCountries(ctx, r.db, r.countries, `
SELECT country_code FROM half_price_countries WHERE half_price_config_id = ?`, id)
	if err != nil {
		return shipping.HalfPriceConfig{}, err
	}

	return shipping.NewHalfPriceConfig(threshold, discountPercent, countries), nil
}

type MySQLFridayPromotionConfigRepo struct {
	db *sql.DB
}

func NewMySQLFridayPromotionConfigRepo(db *sql.DB) *MySQLFridayPromotionConfigRepo {
	return &MySQLFridayPromotionConfigRepo{db: db}
}

func (r *MySQLFridayPromotionConfigRepo) Load(ctx context.Context) (shipping.FridayPromotionConfig, error) {
	configID, err := activeConfigID(ctx, r.db)
	if err != nil {
		return shipping.FridayPromotionConfig{}, err
	}

	row := r.db.QueryRowContext(ctx, `
SELECT discount_percent FROM friday_promotion_configs
WHERE config_id = ? AND is_enabled = 1`, configID)

	var discountPercent int
	if err := row.Scan(&discountPercent); err != nil {
		if err == sql.ErrNoRows {
			return shipping.FridayPromotionConfig{}, fmt.Errorf("friday promotion: %w", ErrConfigDisabled)
		}
		return shipping.FridayPromotionConfig{}, err
	}

	return shipping.NewFridayPromotionConfig(discountPercent), nil
}

// loadScopeCountries resolves an eligibility list through the country
// repository, dropping codes absent from master data.
func loadScopeCountries(ctx context.Context, db *sql.DB, countries usecase.CountryRepository, query string, id int64) ([]domain.Country, error) {
	rows, err := db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Country
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		country, err := countries.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if country == nil {
			continue
		}
		out = append(out, *country)
	}
	return out, rows.Err()
}

var (
	_ shipping.BaseRateConfigLoader        = (*MySQLBaseRateConfigRepo)(nil)
	_ shipping.WeightSurchargeConfigLoader = (*MySQLWeightSurchargeConfigRepo)(nil)
	_ shipping.FreeShippingConfigLoader    = (*MySQLFreeShippingConfigRepo)(nil)
	_ shipping.HalfPriceConfigLoader       = (*MySQLHalfPriceConfigRepo)(nil)
	_ shipping.FridayPromotionConfigLoader = (*MySQLFridayPromotionConfigRepo)(nil)
)
