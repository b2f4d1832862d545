// Package app wires tempo's repositories, handlers and infrastructure.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	scheduleCommands "github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	scheduleQueries "github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/services"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/subscribers"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/postgres"
	_ "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	DB          database.Connection
	UnitOfWork  *database.UnitOfWork
	RedisClient *redis.Client
	Locker      lock.Locker
	Metrics     observability.Metrics
	Prometheus  *observability.PrometheusMetrics
	Health      *observability.HealthRegistry

	// Events
	EventBus        *eventbus.InProcessEventBus
	Broker          *eventbus.BreakerPublisher
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor

	// Repositories
	TaskRepo         task.Repository
	AvailabilityRepo schedulingDomain.AvailabilityRepository
	ScheduleRepo     schedulingDomain.ScheduleRepository
	RunRepo          schedulingDomain.RunRepository
	OutboxRepo       outbox.Repository

	// Task Command Handlers
	CreateTaskHandler   *commands.CreateTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	DeleteTaskHandler   *commands.DeleteTaskHandler

	// Task Query Handlers
	GetTaskHandler        *queries.GetTaskHandler
	ListTasksHandler      *queries.ListTasksHandler
	TaskStatisticsHandler *queries.TaskStatisticsHandler

	// Schedule Command Handlers
	ConfigureAvailabilityHandler  *scheduleCommands.ConfigureAvailabilityHandler
	GenerateScheduleHandler       *scheduleCommands.GenerateScheduleHandler
	RemoveTaskFromScheduleHandler *scheduleCommands.RemoveTaskFromScheduleHandler
	ClearScheduleHandler          *scheduleCommands.ClearScheduleHandler

	// Schedule Query Handlers
	GetScheduleHandler     *scheduleQueries.GetScheduleHandler
	GetAvailabilityHandler *scheduleQueries.GetAvailabilityHandler

	// Subscribers
	ScheduleCleanupSubscriber *subscribers.ScheduleCleanupSubscriber
}

// NewContainer opens the store selected by cfg, applies migrations and
// builds every handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := database.NewConnection(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("database ready", "driver", conn.Driver().String())

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     conn,
		Health: observability.NewHealthRegistry(),
	}
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	c.initMetrics()
	c.initLocker(ctx)

	factory := NewRepositoryFactory(conn)
	c.UnitOfWork = factory.UnitOfWork()
	c.TaskRepo = factory.TaskRepository()
	c.AvailabilityRepo = factory.AvailabilityRepository()
	c.ScheduleRepo = factory.ScheduleRepository()
	c.RunRepo = factory.RunRepository()
	c.OutboxRepo = factory.OutboxRepository()

	c.initHandlers()
	c.initEvents()

	return c, nil
}

func (c *Container) initMetrics() {
	if c.Config.MetricsTextfile == "" {
		c.Metrics = observability.NewInMemoryMetrics()
		return
	}
	c.Prometheus = observability.NewPrometheusMetrics()
	c.Metrics = c.Prometheus
}

// initLocker prefers Redis when configured and reachable. An unreachable
// server leaves the process on the local lock.
func (c *Container) initLocker(ctx context.Context) {
	c.Locker = lock.NewLocalLocker()
	if c.Config.RedisURL == "" {
		return
	}

	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid redis url, using local lock", "error", err)
		return
	}
	client := redis.NewClient(opts)
	c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))

	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("redis unavailable, using local lock", "error", err)
		c.RedisClient = client
		return
	}

	c.RedisClient = client
	c.Locker = lock.NewRedisLocker(client, lock.RedisConfig{TTL: c.Config.LockTTL})
	c.Logger.Debug("redis lock enabled")
}

func (c *Container) initHandlers() {
	engineConfig := services.DefaultEngineConfig()

	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork, nil, c.Metrics)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork, c.Metrics)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork, c.Metrics)

	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo)
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo)
	c.TaskStatisticsHandler = queries.NewTaskStatisticsHandler(c.TaskRepo)

	c.ConfigureAvailabilityHandler = scheduleCommands.NewConfigureAvailabilityHandler(
		c.AvailabilityRepo,
		c.UnitOfWork,
		c.Metrics,
	)
	c.GenerateScheduleHandler = scheduleCommands.NewGenerateScheduleHandler(
		c.TaskRepo,
		c.AvailabilityRepo,
		c.ScheduleRepo,
		c.RunRepo,
		c.OutboxRepo,
		c.UnitOfWork,
		c.Locker,
		engineConfig,
		c.Metrics,
		c.Logger,
	)
	c.RemoveTaskFromScheduleHandler = scheduleCommands.NewRemoveTaskFromScheduleHandler(
		c.TaskRepo,
		c.ScheduleRepo,
		c.OutboxRepo,
		c.UnitOfWork,
		c.Locker,
		engineConfig,
		c.Metrics,
	)
	c.ClearScheduleHandler = scheduleCommands.NewClearScheduleHandler(
		c.ScheduleRepo,
		c.OutboxRepo,
		c.UnitOfWork,
		c.Locker,
		c.Metrics,
	)

	c.GetScheduleHandler = scheduleQueries.NewGetScheduleHandler(c.TaskRepo, c.ScheduleRepo, c.RunRepo)
	c.GetAvailabilityHandler = scheduleQueries.NewGetAvailabilityHandler(c.AvailabilityRepo)
}

// initEvents builds the publishing side of the outbox. Events always reach
// the in-process bus; a configured broker receives them too, behind a
// circuit breaker.
func (c *Container) initEvents() {
	c.EventBus = eventbus.NewInProcessEventBus(c.Logger)
	c.ScheduleCleanupSubscriber = subscribers.NewScheduleCleanupSubscriber(c.RemoveTaskFromScheduleHandler, c.Logger)
	c.EventBus.Subscribe(c.ScheduleCleanupSubscriber)

	targets := []eventbus.Publisher{c.EventBus}
	if c.Config.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(eventbus.RabbitMQConfig{URL: c.Config.RabbitMQURL}, c.Logger)
		if err != nil {
			c.Logger.Warn("rabbitmq unavailable, publishing in-process only", "error", err)
		} else {
			breakerConfig := eventbus.DefaultBreakerConfig()
			breakerConfig.FailureThreshold = c.Config.BreakerFailureThreshold
			breakerConfig.Timeout = c.Config.BreakerTimeout
			c.Broker = eventbus.NewBreakerPublisher(rabbit, breakerConfig, c.Metrics, c.Logger)
			c.Health.Register("rabbitmq", observability.RabbitMQHealthChecker(rabbit.Check))
			targets = append(targets, c.Broker)
		}
	}
	c.EventPublisher = eventbus.NewFanOutPublisher(targets...)

	processorConfig := outbox.DefaultProcessorConfig()
	processorConfig.BatchSize = c.Config.OutboxBatchSize
	processorConfig.MaxRetries = c.Config.OutboxMaxRetries
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, c.Metrics, c.Logger)
}

// Drain publishes every pending outbox message, including those emitted by
// subscribers while draining.
func (c *Container) Drain(ctx context.Context) error {
	return c.OutboxProcessor.Drain(ctx)
}

// FlushMetrics writes Prometheus metrics to the configured textfile.
func (c *Container) FlushMetrics() error {
	if c.Prometheus == nil || c.Config.MetricsTextfile == "" {
		return nil
	}
	if err := database.EnsureDirectory(c.Config.MetricsTextfile); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	return c.Prometheus.WriteToTextfile(c.Config.MetricsTextfile)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Error("failed to close event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error("failed to close redis client", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Error("failed to close database", "error", err)
		}
	}
}
