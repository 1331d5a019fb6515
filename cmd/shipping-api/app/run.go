package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/parcelio/shipping-api/configs"
	"github.com/parcelio/shipping-api/internal/adapter/cache"
	"github.com/parcelio/shipping-api/internal/adapter/http"
	"github.com/parcelio/shipping-api/internal/adapter/kafka"
	"github.com/parcelio/shipping-api/internal/adapter/observ"
	"github.com/parcelio/shipping-api/internal/adapter/queue"
	"github.com/parcelio/shipping-api/internal/adapter/repo"
	"github.com/parcelio/shipping-api/internal/logging"
	"github.com/parcelio/shipping-api/internal/shipping"
	"github.com/parcelio/shipping-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	cancel()

	logger.Info("shipping-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// country master data, cached in redis
	var countries usecase.CountryRepository = repo.NewMySQLCountryRepo(db)
	countries = cache.NewRedisCountryCache(rdb, countries, cfg.Redis.CountryTTL)

	// event sinks: audit log, metrics, rabbitmq, kafka, outbox
	sinks := usecase.FanoutSink{
		observ.NewLogSink(logging.New("audit")),
		observ.NewMetricsSink(),
	}

	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	rabbitSink, err := queue.NewRabbitEventPublisher(ch, cfg.Rabbit.Exchange)
	if err != nil {
		return nil, nil, err
	}

	producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
	if err != nil {
		return nil, nil, err
	}
	sinks = append(sinks, kafka.NewEventPublisher(producer, cfg.Kafka.TopicEvents))

	// Rabbit delivery is inline or via the outbox, never both: with the
	// outbox enabled the drainer is the only Rabbit publisher.
	drainCancel := func() {}
	if cfg.Outbox.Enabled {
		outbox := repo.NewOutboxSink(db)
		sinks = append(sinks, outbox)
		drainer := queue.NewOutboxDrainer(outbox, rabbitSink, cfg.Outbox.DrainInterval, logging.New("outbox"))
		var drainCtx context.Context
		drainCtx, drainCancel = context.WithCancel(context.Background())
		go drainer.Run(drainCtx)
	} else {
		sinks = append(sinks, rabbitSink)
	}

	// rule set, rebuilt on every config-changed signal
	factory := ruleFactory(cfg, db, countries)
	calcUC := usecase.NewCalculateShipping(factory(), sinks, logging.New("calculate"))

	setupConfigListener(cfg, factory, calcUC, logging.New("kafka"))

	// handlers + router
	h := http.NewShippingHandler(calcUC, countries)
	chh := http.NewCountryHandler(countries)
	router := http.NewRouter(h, chh, logging.New("http"))

	cleanup := func() {
		drainCancel()
		_ = producer.Close()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

// ruleFactory wires each rule to its MySQL-backed config loader. Fresh
// instances mean fresh config memos, so the factory is also the reload
// mechanism.
func ruleFactory(cfg configs.Config, db *sql.DB, countries usecase.CountryRepository) usecase.RuleFactory {
	p := cfg.Shipping.Priorities
	return func() []shipping.Rule {
		return []shipping.Rule{
			shipping.NewBaseCountryRateRule(repo.NewMySQLBaseRateConfigRepo(db, countries), p.BaseCountryRate),
			shipping.NewWeightSurchargeRule(repo.NewMySQLWeightSurchargeConfigRepo(db), p.WeightSurcharge),
			shipping.NewFreeShippingRule(repo.NewMySQLFreeShippingConfigRepo(db, countries), p.FreeShipping),
			shipping.NewHalfPriceShippingRule(repo.NewMySQLHalfPriceConfigRepo(db, countries), p.HalfPriceShipping),
			shipping.NewFridayPromotionRule(repo.NewMySQLFridayPromotionConfigRepo(db), p.FridayPromotion),
		}
	}
}

func setupConfigListener(cfg configs.Config, factory usecase.RuleFactory, calc *usecase.CalculateShipping, log *slog.Logger) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewConfigChangedHandler(factory, calc, log)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.TopicConfigChanged}, h.Handle)
	consumer.Logger = log

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			panic(err)
		}
	}()
}
