package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var (
	priority    string
	duration    float64
	deadline    string
	description string
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new task",
	Long: `Add a pending task. Duration is in hours, the deadline is DD-MM-YYYY.

Examples:
  tempo task add "Write report" --duration 2 --priority HIGH --deadline 20-06-2025
  tempo task add "Gym" -d 1.5 -p LOW --deadline 21-06-2025 --description "leg day"`,
	Aliases: []string{"create"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), commands.CreateTaskCommand{
			Name:          args[0],
			Description:   description,
			Priority:      priority,
			DurationHours: duration,
			Deadline:      deadline,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		t := result.Task
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.SuccessStyle.Render("Task created: "+result.TaskID.String()))
		fmt.Fprintf(out, "  name:     %s\n", t.Name())
		fmt.Fprintf(out, "  priority: %s\n", t.Priority())
		fmt.Fprintf(out, "  duration: %s\n", formatHours(t.Duration().Hours()))
		fmt.Fprintf(out, "  deadline: %s\n", t.Deadline())
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&priority, "priority", "p", "MEDIUM", "task priority (HIGH, MEDIUM, LOW)")
	addCmd.Flags().Float64VarP(&duration, "duration", "d", 0, "estimated duration in hours")
	addCmd.Flags().StringVar(&deadline, "deadline", "", "deadline (DD-MM-YYYY)")
	addCmd.Flags().StringVar(&description, "description", "", "task description")
	_ = addCmd.MarkFlagRequired("duration")
	_ = addCmd.MarkFlagRequired("deadline")
}
