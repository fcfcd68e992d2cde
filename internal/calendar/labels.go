package calendar

import (
	"fmt"
	"strings"
	"time"
)

// WeekdayLabels holds the fixed pt-BR weekday abbreviations, Monday first.
var WeekdayLabels = [DaysPerWeek]string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sab", "Dom"}

var monthNames = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var shortMonthNames = [12]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// English short months are used only on the per-event date card.
var cardMonthNames = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// MonthTitle renders a month heading such as "Fevereiro de 2026".
func MonthTitle(t time.Time) string {
	name := monthNames[int(t.Month())-1]
	return fmt.Sprintf("%s%s de %d", strings.ToUpper(name[:1]), name[1:], t.Year())
}

// ShortDate renders a compact pt-BR date such as "17 de fev.".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s", t.Day(), shortMonthNames[int(t.Month())-1])
}

// WeekTitle renders the week-strip heading for the week containing selected,
// such as "Semana de 16 de fev. - 22 de fev.".
func WeekTitle(selected time.Time) string {
	start := StartOfWeek(selected)
	end := AddDays(start, DaysPerWeek-1)
	return fmt.Sprintf("Semana de %s - %s", ShortDate(start), ShortDate(end))
}

// DateParts splits an ISO date into the day number and uppercase short month
// shown on an event's date card.
func DateParts(iso string) (day string, month string, err error) {
	parsed, err := ParseISODate(iso)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("%02d", parsed.Day()), cardMonthNames[int(parsed.Month())-1], nil
}
