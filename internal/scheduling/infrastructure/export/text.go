package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

const (
	banner    = "═══════════════════════════════════════════════════════"
	separator = "────────────────────────────────────────────────────────────────"
)

// GeneratedLayout formats the "Generated on" line.
const GeneratedLayout = "02-01-2006 15:04:05"

// TextExporter writes the plain-text report.
type TextExporter struct{}

// Extension implements Exporter.
func (TextExporter) Extension() string { return "txt" }

// Export implements Exporter. Every day gets a section, empty or not.
func (TextExporter) Export(w io.Writer, snap Snapshot) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw, "           CUSTOMIZABLE TASK SCHEDULER - EXPORT         ")
	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Generated on: "+snap.GeneratedAt.Format(GeneratedLayout))
	fmt.Fprintln(bw)

	schedule := snap.Schedule
	if schedule == nil {
		schedule = domain.NewSchedule()
	}

	for _, day := range domain.Days() {
		fmt.Fprintf(bw, "\n>>> %s <<<\n", strings.ToUpper(day.String()))
		fmt.Fprintln(bw, separator)

		placements := schedule.Placements(day)
		if len(placements) == 0 {
			fmt.Fprintln(bw, "  No tasks scheduled for this day.")
			continue
		}
		for _, p := range placements {
			fmt.Fprintln(bw, p.String())
		}
	}

	if len(snap.Unplaced) > 0 {
		fmt.Fprintln(bw, "\n>>> UNSCHEDULED TASKS <<<")
		fmt.Fprintln(bw, separator)
		for _, t := range snap.Unplaced {
			fmt.Fprintf(bw, "  [%s] %s - Priority: %s - Duration: %sh\n",
				t.ID(), t.Name(), t.Priority(), formatHours(t.Duration().Hours()))
		}
	}

	fmt.Fprintln(bw, "\n"+banner)

	return bw.Flush()
}

// formatHours prints at least one decimal place: 2 -> "2.0", 1.25 -> "1.25".
func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
