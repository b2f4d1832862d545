package task

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as complete",
	Long: `Mark a task as complete. Its placements leave the schedule.

Examples:
  tempo task complete T003`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		id, err := task.ParseID(args[0])
		if err != nil {
			return err
		}

		res, err := app.CompleteTaskHandler.Handle(cmd.Context(), commands.CompleteTaskCommand{TaskID: id})
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		msg := fmt.Sprintf("Task completed: %s %s", res.TaskID, res.Name)
		fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(msg))
		return nil
	},
}
