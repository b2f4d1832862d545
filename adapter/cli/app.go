package cli

import (
	"context"
	"errors"
	"time"

	internalApp "github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	scheduleCommands "github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	scheduleQueries "github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tempo/pkg/observability"
)

// ErrNotInitialized is returned by commands run without an application.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	CreateTaskHandler   *commands.CreateTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	DeleteTaskHandler   *commands.DeleteTaskHandler

	// Task Query Handlers
	GetTaskHandler        *queries.GetTaskHandler
	ListTasksHandler      *queries.ListTasksHandler
	TaskStatisticsHandler *queries.TaskStatisticsHandler

	// Schedule Command Handlers
	ConfigureAvailabilityHandler *scheduleCommands.ConfigureAvailabilityHandler
	GenerateScheduleHandler      *scheduleCommands.GenerateScheduleHandler
	ClearScheduleHandler         *scheduleCommands.ClearScheduleHandler

	// Schedule Query Handlers
	GetScheduleHandler     *scheduleQueries.GetScheduleHandler
	GetAvailabilityHandler *scheduleQueries.GetAvailabilityHandler

	// Operations
	Health          *observability.HealthRegistry
	OutboxRepo      outbox.Repository
	OutboxRetention time.Duration
	ExportDir       string

	drain        func(ctx context.Context) error
	flushMetrics func() error
}

// NewApp creates a new CLI application from a container.
func NewApp(c *internalApp.Container) *App {
	return &App{
		CreateTaskHandler:            c.CreateTaskHandler,
		CompleteTaskHandler:          c.CompleteTaskHandler,
		DeleteTaskHandler:            c.DeleteTaskHandler,
		GetTaskHandler:               c.GetTaskHandler,
		ListTasksHandler:             c.ListTasksHandler,
		TaskStatisticsHandler:        c.TaskStatisticsHandler,
		ConfigureAvailabilityHandler: c.ConfigureAvailabilityHandler,
		GenerateScheduleHandler:      c.GenerateScheduleHandler,
		ClearScheduleHandler:         c.ClearScheduleHandler,
		GetScheduleHandler:           c.GetScheduleHandler,
		GetAvailabilityHandler:       c.GetAvailabilityHandler,
		Health:                       c.Health,
		OutboxRepo:                   c.OutboxRepo,
		OutboxRetention:              c.Config.OutboxRetention,
		ExportDir:                    c.Config.ExportDir,
		drain:                        c.Drain,
		flushMetrics:                 c.FlushMetrics,
	}
}

// Drain publishes pending events so subscribers see the command's effects.
func (a *App) Drain(ctx context.Context) error {
	if a.drain == nil {
		return nil
	}
	return a.drain(ctx)
}

// Finish runs after every command: drain the outbox, then write metrics.
func (a *App) Finish(ctx context.Context) error {
	drainErr := a.Drain(ctx)
	var flushErr error
	if a.flushMetrics != nil {
		flushErr = a.flushMetrics()
	}
	return errors.Join(drainErr, flushErr)
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the application or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}
