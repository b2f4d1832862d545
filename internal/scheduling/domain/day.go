package domain

import "strings"

// Day is a day of the scheduling week. Monday is zero.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of buckets in every schedule.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Days returns Monday through Sunday.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// DayAt maps an ever-increasing cursor onto the week.
func DayAt(index int) Day {
	return Day(index % DaysPerWeek)
}

// ParseDay resolves a day name, ignoring case.
func ParseDay(s string) (Day, bool) {
	for i, name := range dayNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Day(i), true
		}
	}
	return 0, false
}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return "Unknown"
	}
	return dayNames[d]
}

// IsWeekend reports whether weekend availability applies.
func (d Day) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

// IsValid reports whether d is one of the seven days.
func (d Day) IsValid() bool {
	return d >= Monday && d <= Sunday
}
