// Package export renders a weekly schedule for use outside tempo.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

var (
	// ErrUnknownFormat is returned by New for an unsupported format name.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrEmptySchedule is returned by formats that cannot represent no placements.
	ErrEmptySchedule = errors.New("schedule has no placements to export")
)

// Snapshot is everything an exporter needs.
type Snapshot struct {
	Schedule    *domain.Schedule
	Unplaced    []*task.Task
	GeneratedAt time.Time
	// WeekStart is the Monday the placements are anchored to. Only
	// calendar formats use it.
	WeekStart time.Time
}

// Exporter writes a snapshot in one format.
type Exporter interface {
	Export(w io.Writer, snap Snapshot) error
	// Extension is the file extension without the dot.
	Extension() string
}

// New returns the exporter for a format name: "text" or "ics".
func New(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "txt":
		return TextExporter{}, nil
	case "ics", "ical", "icalendar":
		return ICalExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WeekStarting returns midnight of the Monday on or before t, in t's location.
func WeekStarting(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// FileName builds the default export file name for a snapshot.
func FileName(e Exporter, at time.Time) string {
	return fmt.Sprintf("schedule_%s.%s", at.Format("20060102_150405"), e.Extension())
}
