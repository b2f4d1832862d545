package task

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Add, list, complete and delete the tasks tempo schedules.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(statsCmd)
}

// formatHours prints whole hours with one decimal, like the export.
func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if h == float64(int64(h)) {
		s += ".0"
	}
	return s + "h"
}

func statusIcon(status string) string {
	if status == "COMPLETED" {
		return cli.SuccessStyle.Render("[x]")
	}
	return "[ ]"
}

func taskLine(t queries.TaskDTO) string {
	return fmt.Sprintf("%s %s %s %s",
		statusIcon(t.Status),
		cli.TitleStyle.Render(t.ID),
		t.Name,
		cli.PriorityStyle(t.Priority).Render("("+t.Priority+")"),
	)
}
