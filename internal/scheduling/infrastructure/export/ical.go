package export

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

const productID = "-//Tempo//Weekly Schedule//EN"

// PropXTempoTask carries the task id on every exported event.
const PropXTempoTask = "X-TEMPO-TASK"

// ICalExporter writes the schedule as a VCALENDAR. Each placement becomes an
// event on the date of its weekday within the week starting at
// Snapshot.WeekStart.
type ICalExporter struct{}

// Extension implements Exporter.
func (ICalExporter) Extension() string { return "ics" }

// Export implements Exporter. A calendar needs at least one event, so an
// empty schedule yields ErrEmptySchedule.
func (ICalExporter) Export(w io.Writer, snap Snapshot) error {
	if snap.Schedule == nil || snap.Schedule.IsEmpty() {
		return ErrEmptySchedule
	}
	cal, err := toICalendar(snap)
	if err != nil {
		return err
	}
	return ical.NewEncoder(w).Encode(cal)
}

func toICalendar(snap Snapshot) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	monday := WeekStarting(snap.WeekStart)
	stamp := snap.GeneratedAt.UTC()

	for _, day := range domain.Days() {
		date := monday.AddDate(0, 0, int(day))
		for i, p := range snap.Schedule.Placements(day) {
			start, err := at(date, p.StartTime())
			if err != nil {
				return nil, fmt.Errorf("placement %s: %w", p.TaskID(), err)
			}
			end, err := at(date, p.EndTime())
			if err != nil {
				return nil, fmt.Errorf("placement %s: %w", p.TaskID(), err)
			}

			t := p.Task()
			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s-%d-%d@tempo", t.ID(), date.Format("20060102"), day, i))
			event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
			event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
			event.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
			event.Props.SetText(ical.PropSummary, t.Name())

			description := fmt.Sprintf("Priority: %s\nDeadline: %s", t.Priority(), t.Deadline())
			if t.Description() != "" {
				description = t.Description() + "\n" + description
			}
			event.Props.SetText(ical.PropDescription, description)

			// Set directly so no VALUE=TEXT parameter is written.
			event.Props.Set(&ical.Prop{Name: PropXTempoTask, Params: ical.Params{}, Value: t.ID().String()})

			cal.Children = append(cal.Children, event.Component)
		}
	}

	return cal, nil
}

func at(date time.Time, clock string) (time.Time, error) {
	minutes, err := domain.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location()), nil
}
