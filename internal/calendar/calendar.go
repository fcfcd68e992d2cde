// Package calendar provides pure date arithmetic and grid derivation for the
// agenda views. All functions are deterministic and operate on local calendar
// fields; none of them touch wall-clock state.
package calendar

import (
	"fmt"
	"time"
)

const isoDateLayout = "2006-01-02"

// GridCells is the fixed size of a month grid: six weeks of seven days.
const GridCells = 42

// DaysPerWeek is the length of a week strip.
const DaysPerWeek = 7

// ToISODate formats a date as zero-padded YYYY-MM-DD using the date's own
// calendar fields.
func ToISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// ParseISODate parses a YYYY-MM-DD string anchored to local midnight, so the
// resulting day never shifts with the process time zone offset.
func ParseISODate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(isoDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid ISO date %q: %w", value, err)
	}
	return parsed, nil
}

// Midnight truncates a time to local midnight of the same calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays performs calendar-correct day arithmetic across month and year
// boundaries.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// StartOfWeek returns the Monday on or before the given date, at midnight.
// Sunday wraps to six days back per ISO weekday numbering.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return AddDays(Midnight(t), -offset)
}

// FirstOfMonth returns the first day of the date's month at midnight.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts a month anchor by the given number of months, pinned to the
// first day so short months cannot skew navigation.
func AddMonths(t time.Time, months int) time.Time {
	first := FirstOfMonth(t)
	return time.Date(first.Year(), first.Month()+time.Month(months), 1, 0, 0, 0, 0, first.Location())
}

// Cell is one slot of a month grid. The flags are independent of each other.
type Cell struct {
	Date       time.Time
	ISO        string
	Day        int
	OtherMonth bool
	Selected   bool
	Today      bool
	HasEvents  bool
}

// MonthGrid builds the 42-cell grid for the month containing reference,
// starting on the Monday on or before the 1st. hasEvents reports whether any
// event falls on the given ISO date; a nil func marks no cell.
func MonthGrid(reference, selected, today time.Time, hasEvents func(iso string) bool) []Cell {
	first := FirstOfMonth(reference)
	gridStart := StartOfWeek(first)
	selectedISO := ToISODate(selected)
	todayISO := ToISODate(today)

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		current := AddDays(gridStart, i)
		iso := ToISODate(current)
		cells = append(cells, Cell{
			Date:       current,
			ISO:        iso,
			Day:        current.Day(),
			OtherMonth: current.Month() != first.Month(),
			Selected:   iso == selectedISO,
			Today:      iso == todayISO,
			HasEvents:  hasEvents != nil && hasEvents(iso),
		})
	}
	return cells
}

// WeekDay is one slot of the seven-day week strip.
type WeekDay struct {
	Date      time.Time
	ISO       string
	Day       int
	Label     string
	Selected  bool
	Today     bool
	HasEvents bool
}

// WeekStrip builds the seven-day strip for the week containing selected,
// Monday first.
func WeekStrip(selected, today time.Time, hasEvents func(iso string) bool) []WeekDay {
	weekStart := StartOfWeek(selected)
	selectedISO := ToISODate(selected)
	todayISO := ToISODate(today)

	days := make([]WeekDay, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		current := AddDays(weekStart, i)
		iso := ToISODate(current)
		days = append(days, WeekDay{
			Date:      current,
			ISO:       iso,
			Day:       current.Day(),
			Label:     WeekdayLabels[i],
			Selected:  iso == selectedISO,
			Today:     iso == todayISO,
			HasEvents: hasEvents != nil && hasEvents(iso),
		})
	}
	return days
}
