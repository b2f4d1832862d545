package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	scheduleCommands "github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

// RenderSchedule prints all seven days followed by the unplaced tasks.
func RenderSchedule(w io.Writer, schedule *domain.Schedule, unplaced []*task.Task) {
	for _, day := range domain.Days() {
		fmt.Fprintln(w, DayStyle.Render(strings.ToUpper(day.String())))
		placements := schedule.Placements(day)
		if len(placements) == 0 {
			fmt.Fprintln(w, SubtleStyle.Render("  No tasks scheduled for this day."))
			continue
		}
		for _, p := range placements {
			fmt.Fprintf(w, "  [%s - %s] %s %s\n",
				p.StartTime(), p.EndTime(), p.Task().Name(),
				PriorityStyle(p.Task().Priority().String()).Render(p.Task().Priority().String()))
		}
	}

	if len(unplaced) == 0 {
		return
	}
	fmt.Fprintln(w, DayStyle.Render("UNSCHEDULED TASKS"))
	for _, t := range unplaced {
		fmt.Fprintf(w, "  [%s] %s - %s, due %s\n", t.ID(), t.Name(), t.Duration(), t.Deadline())
	}
}

// RenderGenerateResult prints the outcome of a schedule generation.
func RenderGenerateResult(w io.Writer, result *scheduleCommands.GenerateScheduleResult) {
	RenderSchedule(w, result.Schedule, result.Unplaced)
	fmt.Fprintln(w)
	if result.Success {
		fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("Scheduled %d placement(s).", result.Schedule.Len())))
		return
	}
	fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf(
		"Schedule incomplete: %d placement(s), %d task(s) did not fit.",
		result.Schedule.Len(), len(result.Unplaced))))
}
