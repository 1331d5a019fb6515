package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// RecreateSchema drops and recreates every table, then seeds the
// reference configuration. Destructive; meant for local development and
// demos, mirrored by the shipping-cli -recreate-db flag.
func RecreateSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`DROP TABLE IF EXISTS shipping_event_outbox`,
		`DROP TABLE IF EXISTS friday_promotion_configs`,
		`DROP TABLE IF EXISTS half_price_countries`,
		`DROP TABLE IF EXISTS half_price_configs`,
		`DROP TABLE IF EXISTS free_shipping_countries`,
		`DROP TABLE IF EXISTS free_shipping_configs`,
		`DROP TABLE IF EXISTS weight_surcharge_configs`,
		`DROP TABLE IF EXISTS base_rate_country_rates`,
		`DROP TABLE IF EXISTS base_rate_configs`,
		`DROP TABLE IF EXISTS shipping_configs`,
		`DROP TABLE IF EXISTS countries`,

		`CREATE TABLE countries (
			id     BIGINT AUTO_INCREMENT PRIMARY KEY,
			code   CHAR(2)      NOT NULL UNIQUE,
			name   VARCHAR(120) NOT NULL,
			active TINYINT(1)   NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE shipping_configs (
			id        BIGINT AUTO_INCREMENT PRIMARY KEY,
			name      VARCHAR(120) NOT NULL,
			is_active TINYINT(1)   NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE base_rate_configs (
			id            BIGINT AUTO_INCREMENT PRIMARY KEY,
			config_id     BIGINT     NOT NULL REFERENCES shipping_configs(id),
			default_cents BIGINT     NOT NULL,
			currency      CHAR(3)    NOT NULL,
			priority      INT        NOT NULL DEFAULT 100,
			is_enabled    TINYINT(1) NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE base_rate_country_rates (
			base_rate_config_id BIGINT  NOT NULL REFERENCES base_rate_configs(id),
			country_code        CHAR(2) NOT NULL,
			cents               BIGINT  NOT NULL,
			PRIMARY KEY (base_rate_config_id, country_code)
		)`,
		`CREATE TABLE weight_surcharge_configs (
			id           BIGINT AUTO_INCREMENT PRIMARY KEY,
			config_id    BIGINT     NOT NULL REFERENCES shipping_configs(id),
			limit_grams  BIGINT     NOT NULL,
			per_kg_cents BIGINT     NOT NULL,
			currency     CHAR(3)    NOT NULL,
			priority     INT        NOT NULL DEFAULT 200,
			is_enabled   TINYINT(1) NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE free_shipping_configs (
			id              BIGINT AUTO_INCREMENT PRIMARY KEY,
			config_id       BIGINT     NOT NULL REFERENCES shipping_configs(id),
			threshold_cents BIGINT     NOT NULL,
			currency        CHAR(3)    NOT NULL,
			priority        INT        NOT NULL DEFAULT 300,
			is_enabled      TINYINT(1) NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE free_shipping_countries (
			free_shipping_config_id BIGINT  NOT NULL REFERENCES free_shipping_configs(id),
			country_code            CHAR(2) NOT NULL,
			PRIMARY KEY (free_shipping_config_id, country_code)
		)`,
		`CREATE TABLE half_price_configs (
			id               BIGINT AUTO_INCREMENT PRIMARY KEY,
			config_id        BIGINT     NOT NULL REFERENCES shipping_configs(id),
			threshold_cents  BIGINT     NOT NULL,
			currency         CHAR(3)    NOT NULL,
			discount_percent INT        NOT NULL,
			priority         INT        NOT NULL DEFAULT 305,
			is_enabled       TINYINT(1) NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE half_price_countries (
			half_price_config_id BIGINT  NOT NULL REFERENCES half_price_configs(id),
			country_code         CHAR(2) NOT NULL,
			PRIMARY KEY (half_price_config_id, country_code)
		)`,
		`CREATE TABLE friday_promotion_configs (
			id               BIGINT AUTO_INCREMENT PRIMARY KEY,
			config_id        BIGINT     NOT NULL REFERENCES shipping_configs(id),
			discount_percent INT        NOT NULL,
			priority         INT        NOT NULL DEFAULT 400,
			is_enabled       TINYINT(1) NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE shipping_event_outbox (
			id           BIGINT AUTO_INCREMENT PRIMARY KEY,
			event_name   VARCHAR(120) NOT NULL,
			payload      JSON         NOT NULL,
			created_at   DATETIME(6)  NOT NULL,
			published_at DATETIME(6)  NULL
		)`,

		// Reference seed: one active configuration.
		`INSERT INTO countries (code, name, active) VALUES
			('PL', 'Poland', 1),
			('DE', 'Germany', 1),
			('US', 'United States', 1),
			('FR', 'France', 1),
			('GB', 'United Kingdom', 1),
			('CZ', 'Czech Republic', 1),
			('ES', 'Spain', 1),
			('IT', 'Italy', 1)`,
		`INSERT INTO shipping_configs (id, name, is_active) VALUES (1, 'default', 1)`,
		`INSERT INTO base_rate_configs (id, config_id, default_cents, currency) VALUES (1, 1, 3999, 'PLN')`,
		`INSERT INTO base_rate_country_rates (base_rate_config_id, country_code, cents) VALUES
			(1, 'PL', 1000),
			(1, 'DE', 2000),
			(1, 'US', 5000)`,
		`INSERT INTO weight_surcharge_configs (config_id, limit_grams, per_kg_cents, currency) VALUES (1, 5000, 300, 'PLN')`,
		`INSERT INTO free_shipping_configs (id, config_id, threshold_cents, currency) VALUES (1, 1, 40000, 'PLN')`,
		`INSERT INTO free_shipping_countries (free_shipping_config_id, country_code) VALUES
			(1, 'PL'), (1, 'DE'), (1, 'FR'), (1, 'GB')`,
		`INSERT INTO half_price_configs (id, config_id, threshold_cents, currency, discount_percent) VALUES (1, 1, 40000, 'PLN', 50)`,
		`INSERT INTO half_price_countries (half_price_config_id, country_code) VALUES (1, 'US')`,
		`INSERT INTO friday_promotion_configs (config_id, discount_percent) VALUES (1, 50)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("recreate schema: %w", err)
		}
	}
	return nil
}
