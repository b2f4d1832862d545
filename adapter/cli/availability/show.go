package availability

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	scheduleQueries "github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		a, err := app.GetAvailabilityHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get availability: %w", err)
		}

		out := cmd.OutOrStdout()
		if !a.IsConfigured {
			fmt.Fprintln(out, "No availability configured.")
			fmt.Fprintln(out, cli.SubtleStyle.Render("Use 'tempo availability set weekday 09:00-17:00' to add some."))
			return nil
		}

		printWindows(out, "Weekdays (Mon-Fri)", a.Weekday)
		printWindows(out, "Weekend (Sat-Sun)", a.Weekend)
		fmt.Fprintf(out, "\nWeekly hours available: %.2f\n", a.TotalWeeklyHours)
		return nil
	},
}

func printWindows(w io.Writer, title string, windows []scheduleQueries.WindowDTO) {
	fmt.Fprintln(w, cli.TitleStyle.Render(title))
	if len(windows) == 0 {
		fmt.Fprintln(w, cli.SubtleStyle.Render("  none"))
		return
	}
	for _, win := range windows {
		fmt.Fprintf(w, "  %s - %s  %s\n", win.Start, win.End, cli.SubtleStyle.Render(fmt.Sprintf("(%.2fh)", win.Hours)))
	}
}
