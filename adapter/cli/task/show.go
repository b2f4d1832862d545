package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{TaskID: args[0]})
		if err != nil {
			return fmt.Errorf("show %s: %w", strings.ToUpper(args[0]), err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, taskLine(t))
		if t.Description != "" {
			fmt.Fprintf(out, "  %s\n", t.Description)
		}
		fmt.Fprintf(out, "  duration: %s\n", formatHours(t.DurationHours))
		fmt.Fprintf(out, "  deadline: %s\n", t.Deadline)
		fmt.Fprintf(out, "  created:  %s\n", t.CreatedAt.Local().Format("02-01-2006 15:04"))
		if t.CompletedAt != nil {
			fmt.Fprintf(out, "  done:     %s\n", t.CompletedAt.Local().Format("02-01-2006 15:04"))
		}
		return nil
	},
}
