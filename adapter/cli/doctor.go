package cli

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Check the configured backends",
	Long:    `Ping the database and, when configured, Redis and RabbitMQ.`,
	Aliases: []string{"health"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		results := app.Health.Check(cmd.Context())
		out := cmd.OutOrStdout()
		for _, r := range results {
			fmt.Fprintf(out, "%-10s %s  %s\n", r.Name, statusLabel(r.Status), SubtleStyle.Render(r.Message))
		}

		overall := observability.OverallStatus(results)
		fmt.Fprintf(out, "\noverall: %s\n", statusLabel(overall))
		if overall == observability.HealthStatusUnhealthy {
			return fmt.Errorf("backends unhealthy")
		}
		return nil
	},
}

func statusLabel(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusHealthy:
		return SuccessStyle.Render(string(status))
	case observability.HealthStatusDegraded:
		return WarningStyle.Render(string(status))
	default:
		return ErrorStyle.Render(string(status))
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
