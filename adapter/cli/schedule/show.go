package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show the current schedule",
	Aliases: []string{"view"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		view, err := app.GetScheduleHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get schedule: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.TitleStyle.Render("Weekly schedule"))
		if view.LastRun != nil {
			status := "complete"
			if !view.LastRun.Success {
				status = "incomplete"
			}
			fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("Generated %s (%s)",
				view.LastRun.GeneratedAt.Local().Format("02-01-2006 15:04"), status)))
		} else {
			fmt.Fprintln(out, cli.SubtleStyle.Render("Not generated yet. Use 'tempo schedule generate'."))
		}

		cli.RenderSchedule(out, view.Schedule, view.Unplaced)
		return nil
	},
}
