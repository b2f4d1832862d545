package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		stats, err := app.TaskStatisticsHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute statistics: %w", err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Total tasks:     %d\n", stats.Total)
		fmt.Fprintf(&b, "Pending tasks:   %d\n", stats.Pending)
		fmt.Fprintf(&b, "Completed tasks: %d\n", stats.Completed)
		fmt.Fprintf(&b, "Pending hours:   %s", formatHours(stats.PendingHours))
		if stats.Pending > 0 {
			b.WriteString("\nPending by priority:")
			for _, p := range []string{"HIGH", "MEDIUM", "LOW"} {
				fmt.Fprintf(&b, "\n  %-6s %d", p, stats.ByPriority[p])
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.TitleStyle.Render("Task statistics"))
		fmt.Fprintln(out, cli.BoxStyle.Render(b.String()))
		return nil
	},
}
