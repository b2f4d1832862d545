package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Inspect and maintain the event outbox",
}

var outboxStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending, published and dead-lettered event counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		counts, err := app.OutboxRepo.Counts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count outbox messages: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pending:   %d\n", counts.Pending)
		fmt.Fprintf(out, "published: %d\n", counts.Published)
		fmt.Fprintf(out, "dead:      %d\n", counts.Dead)
		return nil
	},
}

var outboxPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete published events older than the retention period",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		deleted, err := app.OutboxRepo.DeleteOld(cmd.Context(), app.OutboxRetention)
		if err != nil {
			return fmt.Errorf("failed to prune outbox: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d published event(s) older than %s.\n", deleted, app.OutboxRetention)
		return nil
	},
}

func init() {
	outboxCmd.AddCommand(outboxStatusCmd)
	outboxCmd.AddCommand(outboxPruneCmd)
	rootCmd.AddCommand(outboxCmd)
}
