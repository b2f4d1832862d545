package availability

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	scheduleCommands "github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all weekday and weekend windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		for _, kind := range []domain.AvailabilityKind{domain.KindWeekday, domain.KindWeekend} {
			_, err := app.ConfigureAvailabilityHandler.Handle(cmd.Context(), scheduleCommands.ConfigureAvailabilityCommand{
				Kind: string(kind),
			})
			if err != nil {
				return fmt.Errorf("failed to clear %s availability: %w", kind, err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Availability cleared.")
		return nil
	},
}
