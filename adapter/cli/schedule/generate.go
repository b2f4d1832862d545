package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a schedule from the pending tasks",
	Long: `Place pending tasks, most urgent first, into the weekly availability.
Generation stops at the first task that does not fit; the tasks after it
stay unscheduled.`,
	Aliases: []string{"gen"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.GenerateScheduleHandler.Handle(cmd.Context(), commands.GenerateScheduleCommand{})
		if err != nil {
			return fmt.Errorf("failed to generate schedule: %w", err)
		}

		cli.RenderGenerateResult(cmd.OutOrStdout(), result)
		return nil
	},
}
