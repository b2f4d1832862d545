package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Generate and view the weekly schedule",
	Long: `Fit pending tasks into the weekly availability, view the result and
export it.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(clearCmd)
	Cmd.AddCommand(exportCmd)
}
