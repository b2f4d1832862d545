package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	internalApp "github.com/felixgeelhaar/tempo/internal/app"
	"github.com/felixgeelhaar/tempo/pkg/config"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// skipAppAnnotation marks commands that run without a store.
const skipAppAnnotation = "tempo/skip-app"

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger

	container *internalApp.Container
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Tempo - weekly task scheduler",
	Long: `Tempo keeps a list of tasks with priorities, durations and deadlines
and fits the pending ones into your weekly availability.

Configure weekday and weekend windows, add tasks, then generate
a schedule and export it as text or iCalendar.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx = observability.WithCorrelationID(ctx, info.correlationID.String())
		ctx = context.WithValue(ctx, commandContextKey{}, info)
		cmd.SetContext(ctx)

		if err := bootstrap(ctx, cmd); err != nil {
			return err
		}

		logger.InfoContext(ctx, "command start",
			"command", cmd.CommandPath(),
		)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		info, ok := ctx.Value(commandContextKey{}).(commandContext)
		if !ok {
			return nil
		}

		if app := GetApp(); app != nil && !skipsApp(cmd) {
			if err := app.Finish(ctx); err != nil {
				logger.WarnContext(ctx, "post-command work failed", "error", err)
			}
		}

		logger.InfoContext(ctx, "command end",
			"command", cmd.CommandPath(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
		return nil
	},
}

// bootstrap loads configuration and builds the application unless one was
// installed with SetApp or the command needs none.
func bootstrap(ctx context.Context, cmd *cobra.Command) error {
	if GetApp() != nil || skipsApp(cmd) {
		return nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.ServiceVersion = Version
	if verbose {
		logCfg.Level = observability.LogLevelDebug
	}
	logger = observability.NewLogger(logCfg)

	c, err := internalApp.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	container = c
	SetApp(NewApp(c))
	return nil
}

func skipsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipAppAnnotation]; ok {
			return true
		}
	}
	return false
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Execute runs the command line and returns the process exit code: 0 on
// success, 130 when interrupted and 1 for any other error.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if container != nil {
		container.Close()
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Interrupted."))
		return 130
	default:
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
		return 1
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (yaml or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SilenceErrors = true
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
