package calendar

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := ParseISODate(value)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return parsed
}

func TestStartOfWeekAnchorsOnMonday(t *testing.T) {
	monday := date(t, "2026-02-16")
	if got := StartOfWeek(monday); !got.Equal(monday) {
		t.Fatalf("expected Monday to be its own week start, got %v", got)
	}

	wednesday := date(t, "2026-02-18")
	if got := StartOfWeek(wednesday); !got.Equal(monday) {
		t.Fatalf("expected week start %v, got %v", monday, got)
	}
}

func TestStartOfWeekWrapsSundayBackSixDays(t *testing.T) {
	sunday := date(t, "2026-02-22")
	expected := AddDays(sunday, -6)
	if got := StartOfWeek(sunday); !got.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestStartOfWeekZeroesTimeOfDay(t *testing.T) {
	afternoon := time.Date(2026, time.February, 16, 15, 42, 7, 0, time.Local)
	got := StartOfWeek(afternoon)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
	if got.Day() != 16 {
		t.Fatalf("expected same Monday, got %v", got)
	}
}

func TestParseISODateRoundTrip(t *testing.T) {
	inputs := []string{"2026-01-01", "2026-02-28", "2024-02-29", "2026-12-31"}
	for _, input := range inputs {
		parsed, err := ParseISODate(input)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", input, err)
		}
		if got := ToISODate(parsed); got != input {
			t.Fatalf("round trip changed %s to %s", input, got)
		}
		if parsed.Hour() != 0 || parsed.Minute() != 0 {
			t.Fatalf("expected local midnight for %s, got %v", input, parsed)
		}
	}
}

func TestParseISODateRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "2026-2-1", "17/02/2026", "2026-13-01"} {
		if _, err := ParseISODate(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestAddDaysCrossesMonthAndYearBoundaries(t *testing.T) {
	if got := ToISODate(AddDays(date(t, "2026-01-31"), 1)); got != "2026-02-01" {
		t.Fatalf("expected 2026-02-01, got %s", got)
	}
	if got := ToISODate(AddDays(date(t, "2026-12-31"), 1)); got != "2027-01-01" {
		t.Fatalf("expected 2027-01-01, got %s", got)
	}
	if got := ToISODate(AddDays(date(t, "2026-03-01"), -1)); got != "2026-02-28" {
		t.Fatalf("expected 2026-02-28, got %s", got)
	}
}

func TestMonthGridShape(t *testing.T) {
	selected := date(t, "2026-02-17")
	today := date(t, "2026-02-16")
	cells := MonthGrid(selected, selected, today, nil)

	if len(cells) != GridCells {
		t.Fatalf("expected %d cells, got %d", GridCells, len(cells))
	}
	if cells[0].Date.Weekday() != time.Monday {
		t.Fatalf("expected grid to start on Monday, got %v", cells[0].Date.Weekday())
	}
	// February 2026 starts on a Sunday, so the grid begins the prior Monday.
	if cells[0].ISO != "2026-01-26" {
		t.Fatalf("expected grid start 2026-01-26, got %s", cells[0].ISO)
	}
}

func TestMonthGridFlagsAreIndependent(t *testing.T) {
	selected := date(t, "2026-02-17")
	today := date(t, "2026-02-17")
	hasEvents := func(iso string) bool { return iso == "2026-02-17" || iso == "2026-01-26" }
	cells := MonthGrid(selected, selected, today, hasEvents)

	var selectedCell, firstCell *Cell
	for i := range cells {
		switch cells[i].ISO {
		case "2026-02-17":
			selectedCell = &cells[i]
		case "2026-01-26":
			firstCell = &cells[i]
		}
	}
	if selectedCell == nil || firstCell == nil {
		t.Fatalf("expected both cells in grid")
	}
	if !selectedCell.Selected || !selectedCell.Today || !selectedCell.HasEvents {
		t.Fatalf("expected selected cell to carry all three flags: %+v", selectedCell)
	}
	if selectedCell.OtherMonth {
		t.Fatalf("selected cell must belong to the reference month")
	}
	if !firstCell.OtherMonth {
		t.Fatalf("expected January cell to be flagged other-month")
	}
	if !firstCell.HasEvents {
		t.Fatalf("other-month cells still report their events")
	}
}

func TestWeekStripCoversSelectedWeek(t *testing.T) {
	selected := date(t, "2026-02-18")
	days := WeekStrip(selected, date(t, "2026-02-16"), nil)

	if len(days) != DaysPerWeek {
		t.Fatalf("expected %d days, got %d", DaysPerWeek, len(days))
	}
	if days[0].ISO != "2026-02-16" || days[6].ISO != "2026-02-22" {
		t.Fatalf("unexpected week bounds: %s .. %s", days[0].ISO, days[6].ISO)
	}
	if days[0].Label != "Seg" || days[6].Label != "Dom" {
		t.Fatalf("unexpected day labels: %s .. %s", days[0].Label, days[6].Label)
	}
	if !days[0].Today {
		t.Fatalf("expected Monday flagged as today")
	}
	if !days[2].Selected {
		t.Fatalf("expected Wednesday flagged as selected")
	}
}

func TestMonthTitle(t *testing.T) {
	if got := MonthTitle(date(t, "2026-02-01")); got != "Fevereiro de 2026" {
		t.Fatalf("unexpected month title: %s", got)
	}
	if got := MonthTitle(date(t, "2026-03-15")); got != "Março de 2026" {
		t.Fatalf("unexpected month title: %s", got)
	}
}

func TestWeekTitle(t *testing.T) {
	if got := WeekTitle(date(t, "2026-02-18")); got != "Semana de 16 de fev. - 22 de fev." {
		t.Fatalf("unexpected week title: %s", got)
	}
}

func TestDateParts(t *testing.T) {
	day, month, err := DateParts("2026-02-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day != "05" || month != "FEB" {
		t.Fatalf("unexpected parts: %s %s", day, month)
	}
}
