package availability

import (
	"github.com/spf13/cobra"
)

// Cmd is the availability command group
var Cmd = &cobra.Command{
	Use:   "availability",
	Short: "Manage weekly availability",
	Long: `Set the time windows tempo may schedule into. Weekday windows apply
Monday to Friday, weekend windows to Saturday and Sunday.`,
	Aliases: []string{"avail"},
}

func init() {
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(clearCmd)
}
