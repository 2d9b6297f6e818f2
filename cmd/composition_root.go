package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpin "supplyhub/internal/adapters/in/http"
	_ "supplyhub/internal/adapters/in/http/docs"
	"supplyhub/internal/adapters/out/kafka"
	"supplyhub/internal/adapters/out/postgres"
	"supplyhub/internal/adapters/out/postgres/actorrepo"
	"supplyhub/internal/adapters/out/postgres/changefeed"
	"supplyhub/internal/adapters/out/postgres/orderrepo"
	"supplyhub/internal/adapters/out/redisstore"
	"supplyhub/internal/core/application/notifier"
	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/core/application/usecases/queries"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/jobs"
	"supplyhub/internal/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase connects to the order store and sizes the connection pool.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	metrics    *metrics.Metrics
	uowFactory *postgres.GormUnitOfWorkFactory
	orders     *orderrepo.GormOrderRepository
	directory  *actorrepo.GormActorDirectory
	numbers    *order.NumberGenerator

	hub      *notifier.Hub
	notifier *notifier.Notifier
	listener *changefeed.Listener
	producer *kafka.OrderChangedProducer
	redis    *redis.Client

	closers []func() error
}

// NewCompositionRoot wires the adapters selected by cfg. Call Close when
// the process shuts down.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, l *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     l,
		metrics:    metrics.New(),
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		orders:     orderrepo.NewGormOrderRepository(gormDB),
		directory:  actorrepo.NewGormActorDirectory(gormDB),
		numbers:    order.NewNumberGenerator(),
		hub:        notifier.NewHub(notifier.DefaultSubscriberBuffer, l),
	}

	var sinks []ports.ChangeSink
	if cfg.ChangeFeedEnabled {
		// Every replica hears the feed, so the local hub is fed by the
		// listener only.
		listener, err := changefeed.NewListener(cfg.DSN(), cfg.ChangeFeedChannel, c.hub, l)
		if err != nil {
			return nil, err
		}
		c.listener = listener
		c.closers = append(c.closers, listener.Close)
		sinks = append(sinks, changefeed.NewSink(gormDB, cfg.ChangeFeedChannel))
	} else {
		sinks = append(sinks, c.hub)
	}

	if brokers := kafka.ParseBrokers(cfg.KafkaHost); len(brokers) > 0 {
		c.producer = kafka.NewOrderChangedProducer(kafka.NewWriter(brokers, cfg.KafkaOrderChangedTopic))
		c.closers = append(c.closers, c.producer.Close)
		sinks = append(sinks, c.producer)
	}

	if cfg.RedisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		c.closers = append(c.closers, c.redis.Close)
	}

	c.notifier = notifier.New(l, sinks, notifier.WithMetrics(c.metrics))
	return c, nil
}

func (c *CompositionRoot) Logger() *zap.Logger {
	return c.logger
}

func (c *CompositionRoot) Directory() *actorrepo.GormActorDirectory {
	return c.directory
}

// RunChangeFeed forwards the database change feed to the local hub until
// ctx is done. It returns at once when the feed is disabled.
func (c *CompositionRoot) RunChangeFeed(ctx context.Context) {
	if c.listener == nil {
		return
	}
	c.listener.Run(ctx)
}

func (c *CompositionRoot) idempotencyStore() ports.IdempotencyStore {
	if c.redis == nil {
		return nil
	}
	return redisstore.NewIdempotencyStore(c.redis, redisstore.DefaultTTL)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.directory, c.numbers, c.idempotencyStore(), c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orders, c.notifier)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		c.orders,
		c.CreateClaimOrderCommandHandler(),
		c.notifier,
	)
}

func (c *CompositionRoot) CreatePurgeTerminalOrdersCommandHandler() commands.PurgeTerminalOrdersCommandHandler {
	return commands.NewPurgeTerminalOrdersCommandHandler(c.orders)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActorOrdersQueryHandler() queries.ListActorOrdersQueryHandler {
	return queries.NewListActorOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListClaimableOrdersQueryHandler() queries.ListClaimableOrdersQueryHandler {
	return queries.NewListClaimableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVendorOrderStatsQueryHandler() queries.GetVendorOrderStatsQueryHandler {
	return queries.NewGetVendorOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProfileStatusQueryHandler() queries.GetProfileStatusQueryHandler {
	return queries.NewGetProfileStatusQueryHandler(c.directory)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		TransitionOrder:  c.CreateTransitionOrderCommandHandler(),
		ClaimOrder:       c.CreateClaimOrderCommandHandler(),
		ListClaimable:    c.CreateListClaimableOrdersQueryHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		ListActorOrders:  c.CreateListActorOrdersQueryHandler(),
		VendorOrderStats: c.CreateGetVendorOrderStatsQueryHandler(),
		ProfileStatus:    c.CreateGetProfileStatusQueryHandler(),
	}
	return httpin.NewServer(handlers, c.hub, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateAuthenticator() *httpin.Authenticator {
	return httpin.NewAuthenticator(c.cfg.JWTSecret)
}

func (c *CompositionRoot) CreateClaimRateLimiter() *httpin.RateLimiter {
	return httpin.NewRateLimiter(c.cfg.ClaimRateLimit, c.cfg.ClaimRateBurst)
}

// CreateJobManager schedules the notification retry job and, when a
// retention is configured, the terminal order purge.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	retry := jobs.NewNotificationRetryJob(c.notifier, c.cfg.NotificationRetrySchedule, c.logger)

	var purge *jobs.PurgeTerminalOrdersJob
	if c.cfg.PurgeRetention > 0 {
		purge = jobs.NewPurgeTerminalOrdersJob(
			c.CreatePurgeTerminalOrdersCommandHandler(),
			c.cfg.PurgeRetention,
			c.cfg.PurgeSchedule,
			c.logger,
		)
	}
	return jobs.NewJobManager(retry, purge)
}

// Close releases the feed listener, the Kafka writer and the Redis client.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
