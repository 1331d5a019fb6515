package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisCountryCache decorates a country repository with a Redis read-through
// cache. Misses are cached as an empty value so unknown codes do not hammer
// the database. Cache failures fall back to the inner repository.
type RedisCountryCache struct {
	rdb   *redis.Client
	inner usecase.CountryRepository
	ttl   time.Duration
}

func NewRedisCountryCache(rdb *redis.Client, inner usecase.CountryRepository, ttl time.Duration) *RedisCountryCache {
	return &RedisCountryCache{rdb: rdb, inner: inner, ttl: ttl}
}

type countryPayload struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

const countryMiss = "-"

func (c *RedisCountryCache) FindByCode(ctx context.Context, code string) (*domain.Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := "country:code:" + code

	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if raw == countryMiss {
			return nil, nil
		}
		var p countryPayload
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			if country, err := domain.NewCountry(p.ID, p.Code, p.Name, p.Active); err == nil {
				return &country, nil
			}
		}
		// corrupt entry, fall through to the source
	} else if err != redis.Nil {
		// redis unavailable; serve from the source
		return c.inner.FindByCode(ctx, code)
	}

	country, err := c.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if country == nil {
		_ = c.rdb.Set(ctx, key, countryMiss, c.ttl).Err()
		return nil, nil
	}

	raw, err := json.Marshal(countryPayload{
		ID:     country.ID(),
		Code:   country.Code(),
		Name:   country.Name(),
		Active: country.Active(),
	})
	if err == nil {
		_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}
	return country, nil
}

func (c *RedisCountryCache) FindAllActive(ctx context.Context) ([]domain.Country, error) {
	// List queries are rare (CLI, admin); no caching.
	return c.inner.FindAllActive(ctx)
}

var _ usecase.CountryRepository = (*RedisCountryCache)(nil)
