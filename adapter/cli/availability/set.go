package availability

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	scheduleCommands "github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var regenerate bool

var setCmd = &cobra.Command{
	Use:   "set weekday|weekend [HH:MM-HH:MM ...]",
	Short: "Replace the weekday or weekend windows",
	Long: `Replace one window list. Windows are validated before anything is
stored; one bad window rejects the whole update. No windows clears the list.

Examples:
  tempo availability set weekday 09:00-12:00 13:00-17:30
  tempo availability set weekend 10:00-14:00 --regenerate
  tempo availability set weekend`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.ConfigureAvailabilityHandler.Handle(ctx, scheduleCommands.ConfigureAvailabilityCommand{
			Kind:    args[0],
			Windows: args[1:],
		})
		if err != nil {
			return fmt.Errorf("failed to set availability: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Windows) == 0 {
			fmt.Fprintf(out, "Cleared %s availability.\n", result.Kind)
		} else {
			fmt.Fprintln(out, cli.SuccessStyle.Render(fmt.Sprintf("Set %d %s window(s).", len(result.Windows), result.Kind)))
		}
		fmt.Fprintf(out, "Weekly hours available: %.2f\n", result.Availability.TotalWeeklyHours())

		if !regenerate {
			return nil
		}
		generated, err := app.GenerateScheduleHandler.Handle(ctx, scheduleCommands.GenerateScheduleCommand{})
		if err != nil {
			return fmt.Errorf("failed to regenerate schedule: %w", err)
		}
		fmt.Fprintln(out)
		cli.RenderGenerateResult(out, generated)
		return nil
	},
}

func init() {
	setCmd.Flags().BoolVar(&regenerate, "regenerate", false, "regenerate the schedule after the update")
}
