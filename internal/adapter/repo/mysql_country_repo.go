package repo

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	domain "github.com/parcelio/shipping-api/internal/entity"
	"github.com/parcelio/shipping-api/internal/usecase"
)

// MySQLCountryRepo resolves country master data, memoizing per code.
// Misses are cached too; country master data only changes with a reseed.
type MySQLCountryRepo struct {
	db *sql.DB

	mu     sync.Mutex
	byCode map[string]*domain.Country
}

func NewMySQLCountryRepo(db *sql.DB) *MySQLCountryRepo {
	return &MySQLCountryRepo{db: db, byCode: make(map[string]*domain.Country)}
}

func (r *MySQLCountryRepo) FindByCode(ctx context.Context, code string) (*domain.Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	r.mu.Lock()
	if c, ok := r.byCode[code]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	row := r.db.QueryRowContext(ctx, `
SELECT id, code, name, active FROM countries WHERE code = ?`, code)

	var (
		id     int64
		dbCode string
		name   string
		active bool
	)
	err := row.Scan(&id, &dbCode, &name, &active)
	if err == sql.ErrNoRows {
		r.remember(code, nil)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	country, err := domain.NewCountry(id, dbCode, name, active)
	if err != nil {
		return nil, err
	}
	r.remember(code, &country)
	return &country, nil
}

func (r *MySQLCountryRepo) FindAllActive(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, code, name, active FROM countries WHERE active = 1 ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Country
	for rows.Next() {
		var (
			id     int64
			code   string
			name   string
			active bool
		)
		if err := rows.Scan(&id, &code, &name, &active); err != nil {
			return nil, err
		}
		country, err := domain.NewCountry(id, code, name, active)
		if err != nil {
			return nil, err
		}
		out = append(out, country)
	}
	return out, rows.Err()
}

func (r *MySQLCountryRepo) remember(code string, c *domain.Country) {
	r.mu.Lock()
	r.byCode[code] = c
	r.mu.Unlock()
}

var _ usecase.CountryRepository = (*MySQLCountryRepo)(nil)
