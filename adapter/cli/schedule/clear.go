package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every placement",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		removed, err := app.ClearScheduleHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear schedule: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schedule cleared (%d placement(s) removed).\n", removed)
		return nil
	},
}
