package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var (
	pendingOnly    bool
	filterPriority string
	overdue        bool
	limit          int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List every task in creation order, or only pending tasks in the
order the scheduler considers them.

Examples:
  tempo task list
  tempo task list --pending
  tempo task list --priority HIGH --overdue`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			PendingOnly: pendingOnly,
			Priority:    filterPriority,
			Overdue:     overdue,
			Limit:       limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "Tasks (%d):\n", len(tasks))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, t := range tasks {
			fmt.Fprintln(out, taskLine(t))
			fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("    %s, due %s", formatHours(t.DurationHours), t.Deadline)))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&pendingOnly, "pending", false, "only pending tasks, in scheduling order")
	listCmd.Flags().StringVarP(&filterPriority, "priority", "p", "", "filter by priority (HIGH, MEDIUM, LOW)")
	listCmd.Flags().BoolVar(&overdue, "overdue", false, "only pending tasks past their deadline")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "max number of tasks to show (0 = no limit)")
}
