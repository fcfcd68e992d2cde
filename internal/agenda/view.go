package agenda

import (
	"strings"
	"time"

	"github.com/vidaplena/agenda/internal/calendar"
)

// CalendarMode selects which calendar surface is shown.
type CalendarMode string

const (
	CalendarMonth CalendarMode = "month"
	CalendarWeek  CalendarMode = "week"
)

// EmptyMessage is rendered when the active filter matches no events.
const EmptyMessage = "Sem eventos para este filtro."

var priorityLabels = map[string]string{
	"alta":  "Alta",
	"media": "Média",
	"baixa": "Baixa",
}

// State is the explicit application state the view controller owns. It
// replaces the legacy free-standing globals; every derivation runs over a
// State value plus the stores.
type State struct {
	Filter       FilterMode
	CalendarView CalendarMode
	SelectedDate time.Time
	CurrentMonth time.Time
	Search       string
}

// NewState anchors the initial state on the given instant: today selected at
// local midnight, its month as the grid anchor, day filter, month view.
func NewState(now time.Time) State {
	selected := calendar.Midnight(now)
	return State{
		Filter:       FilterDay,
		CalendarView: CalendarMonth,
		SelectedDate: selected,
		CurrentMonth: calendar.FirstOfMonth(selected),
	}
}

// SelectDate picks a calendar cell or week day: it always forces the day
// filter and realigns the month anchor to the selected date.
func (s *State) SelectDate(date time.Time) {
	s.shiftSelected(date)
	s.Filter = FilterDay
}

// SetFilter switches the day/week scope without touching the selection.
func (s *State) SetFilter(mode FilterMode) {
	s.Filter = mode
}

// SetCalendarView switches between the month grid and the week strip.
func (s *State) SetCalendarView(mode CalendarMode) {
	s.CalendarView = mode
}

// SetSearch updates the search text, trimmed.
func (s *State) SetSearch(text string) {
	s.Search = strings.TrimSpace(text)
}

// NextPeriod advances the visible period: one month forward in month view,
// one week forward in week view. Filter and search are never altered.
func (s *State) NextPeriod() {
	s.shiftPeriod(1)
}

// PrevPeriod moves the visible period back.
func (s *State) PrevPeriod() {
	s.shiftPeriod(-1)
}

func (s *State) shiftPeriod(direction int) {
	if s.CalendarView == CalendarWeek {
		s.shiftSelected(calendar.AddDays(s.SelectedDate, direction*calendar.DaysPerWeek))
		return
	}
	s.CurrentMonth = calendar.AddMonths(s.CurrentMonth, direction)
}

func (s *State) shiftSelected(date time.Time) {
	s.SelectedDate = calendar.Midnight(date)
	s.CurrentMonth = calendar.FirstOfMonth(s.SelectedDate)
}

// EventItem decorates an event with the labels its row renders.
type EventItem struct {
	Event
	DayLabel      string
	MonthLabel    string
	PriorityLabel string
}

// ViewModel is everything the rendering layer needs for one frame: which
// calendar surface to show, its title and cells, and the filtered event list.
type ViewModel struct {
	Mode         CalendarMode
	Title        string
	Cells        []calendar.Cell
	WeekDays     []calendar.WeekDay
	Events       []EventItem
	Empty        bool
	EmptyMessage string
}

// BuildView derives the view model for the current state. It is a pure
// read: neither the state nor the store is mutated.
func BuildView(state State, store *EventStore, today time.Time) ViewModel {
	view := ViewModel{Mode: state.CalendarView}

	hasEvents := store.EventsOn
	if state.CalendarView == CalendarWeek {
		view.Title = calendar.WeekTitle(state.SelectedDate)
		view.WeekDays = calendar.WeekStrip(state.SelectedDate, today, hasEvents)
	} else {
		view.Title = calendar.MonthTitle(state.CurrentMonth)
		view.Cells = calendar.MonthGrid(state.CurrentMonth, state.SelectedDate, today, hasEvents)
	}

	filtered := store.Filter(Query{
		Filter:       state.Filter,
		SelectedDate: state.SelectedDate,
		Search:       state.Search,
	})
	view.Events = make([]EventItem, 0, len(filtered))
	for _, event := range filtered {
		item := EventItem{Event: event, PriorityLabel: priorityLabel(event.Priority)}
		if day, month, err := calendar.DateParts(event.Date); err == nil {
			item.DayLabel = day
			item.MonthLabel = month
		}
		view.Events = append(view.Events, item)
	}

	if len(view.Events) == 0 {
		view.Empty = true
		view.EmptyMessage = EmptyMessage
	}
	return view
}

func priorityLabel(priority string) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}
	return priority
}
