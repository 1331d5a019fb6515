package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	MySQL struct {
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"mysql"`

	Redis struct {
		Addr       string        `koanf:"addr"`
		Password   string        `koanf:"password"`
		CountryTTL time.Duration `koanf:"country_ttl"`
	} `koanf:"redis"`

	Rabbit struct {
		URL      string `koanf:"url"`
		Exchange string `koanf:"exchange"`
	} `koanf:"rabbitmq"`

	Kafka struct {
		Brokers            []string `koanf:"brokers"`
		TopicEvents        string   `koanf:"topic_events"`
		TopicConfigChanged string   `koanf:"topic_config_changed"`
		GroupID            string   `koanf:"group_id"`
	} `koanf:"kafka"`

	Outbox struct {
		Enabled       bool          `koanf:"enabled"`
		DrainInterval time.Duration `koanf:"drain_interval"`
	} `koanf:"outbox"`

	// Rule priorities are externally configured; lower runs earlier.
	// Collisions are legal, ties break on rule name.
	Shipping struct {
		Priorities struct {
			BaseCountryRate   int `koanf:"base_country_rate"`
			WeightSurcharge   int `koanf:"weight_surcharge"`
			FreeShipping      int `koanf:"free_shipping"`
			HalfPriceShipping int `koanf:"half_price_shipping"`
			FridayPromotion   int `koanf:"friday_promotion"`
		} `koanf:"priorities"`
	} `koanf:"shipping"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix SHIPAPI_, nested with __)
	// e.g. SHIPAPI_MYSQL__DSN, SHIPAPI_REDIS__PASSWORD
	if err := k.Load(env.Provider("SHIPAPI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "SHIPAPI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	p := &c.Shipping.Priorities
	if p.BaseCountryRate == 0 {
		p.BaseCountryRate = 100
	}
	if p.WeightSurcharge == 0 {
		p.WeightSurcharge = 200
	}
	if p.FreeShipping == 0 {
		p.FreeShipping = 300
	}
	if p.HalfPriceShipping == 0 {
		p.HalfPriceShipping = 305
	}
	if p.FridayPromotion == 0 {
		p.FridayPromotion = 400
	}
	if c.Outbox.DrainInterval == 0 {
		c.Outbox.DrainInterval = 5 * time.Second
	}
	if c.Redis.CountryTTL == 0 {
		c.Redis.CountryTTL = 10 * time.Minute
	}
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql.dsn required")
	}
	return nil
}
