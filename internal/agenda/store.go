package agenda

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/vidaplena/agenda/internal/calendar"
	"go.uber.org/zap"
)

var (
	errMissingBackend = errors.New("agenda: backend is required")
	noOpLogger        = zap.NewNop()
)

// FilterMode scopes the visible event list by date.
type FilterMode string

const (
	FilterDay  FilterMode = "day"
	FilterWeek FilterMode = "week"
)

// Query describes a read-only projection over the event cache.
type Query struct {
	Filter       FilterMode
	SelectedDate time.Time
	Search       string
}

// EventStore is the client-side cache of events. Mutations go through the
// backend and the cache is rebuilt wholesale from it, never patched
// incrementally, so cross-record state cannot drift.
type EventStore struct {
	backend Backend
	events  []Event
	logger  *zap.Logger
}

// NewEventStore builds a store over the given backend. The cache starts
// empty; call Refresh to populate it.
func NewEventStore(backend Backend, logger *zap.Logger) (*EventStore, error) {
	if backend == nil {
		return nil, errMissingBackend
	}
	if logger == nil {
		logger = noOpLogger
	}
	return &EventStore{backend: backend, logger: logger}, nil
}

// Refresh replaces the cache with the backend's canonical list, normalized
// and sorted by order.
func (s *EventStore) Refresh(ctx context.Context) error {
	list, err := s.backend.ListEvents(ctx)
	if err != nil {
		s.logger.Error("event refresh failed", zap.Error(err))
		return err
	}
	normalized := Normalize(list)
	SortByOrder(normalized)
	s.events = normalized
	return nil
}

// List returns a copy of the cached events sorted by order ascending.
func (s *EventStore) List() []Event {
	return append([]Event(nil), s.events...)
}

// EventsOn reports whether any cached event falls on the given ISO date.
func (s *EventStore) EventsOn(iso string) bool {
	for _, event := range s.events {
		if event.Date == iso {
			return true
		}
	}
	return false
}

// Find returns the cached event with the given id.
func (s *EventStore) Find(id string) (Event, bool) {
	for _, event := range s.events {
		if event.ID == id {
			return event, true
		}
	}
	return Event{}, false
}

// Create persists a new event and rebuilds the cache.
func (s *EventStore) Create(ctx context.Context, event Event) error {
	if _, err := s.backend.CreateEvent(ctx, event); err != nil {
		s.logger.Error("event create failed", zap.Error(err))
		return err
	}
	return s.Refresh(ctx)
}

// Update persists changed fields of an existing event and rebuilds the cache.
func (s *EventStore) Update(ctx context.Context, event Event) error {
	if _, err := s.backend.UpdateEvent(ctx, event); err != nil {
		s.logger.Error("event update failed", zap.Error(err), zap.String("event_id", event.ID))
		return err
	}
	return s.Refresh(ctx)
}

// Delete removes an event and rebuilds the cache, so it disappears from all
// views immediately.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteEvent(ctx, id); err != nil {
		s.logger.Error("event delete failed", zap.Error(err), zap.String("event_id", id))
		return err
	}
	return s.Refresh(ctx)
}

// Reorder applies a drag-and-drop permutation of the visible rows. The new
// order is applied to the cache optimistically before the backend confirms;
// a backend failure restores the previous cache state. Zero visible rows is
// a no-op without a backend call.
func (s *EventStore) Reorder(ctx context.Context, visibleIDs []string) error {
	if len(visibleIDs) == 0 {
		return nil
	}

	updates, err := ComputeReorder(s.events, visibleIDs)
	if err != nil {
		return err
	}

	snapshot := s.List()
	s.applyOrders(updates)

	if err := s.backend.ReorderEvents(ctx, updates); err != nil {
		s.events = snapshot
		s.logger.Error("event reorder failed", zap.Error(err), zap.Int("rows", len(updates)))
		return err
	}
	return s.Refresh(ctx)
}

func (s *EventStore) applyOrders(updates []OrderUpdate) {
	orders := make(map[string]int, len(updates))
	for _, update := range updates {
		orders[update.ID] = update.Order
	}
	for i := range s.events {
		if order, ok := orders[s.events[i].ID]; ok {
			slot := order
			s.events[i].Order = &slot
		}
	}
	SortByOrder(s.events)
}

// Filter produces the visible subset for a query without mutating the cache:
// date scope first, then case-insensitive substring search over title,
// location and attendees, then sort by order ascending.
func (s *EventStore) Filter(query Query) []Event {
	selectedISO := calendar.ToISODate(query.SelectedDate)
	filtered := make([]Event, 0, len(s.events))

	switch query.Filter {
	case FilterWeek:
		weekStart := calendar.StartOfWeek(query.SelectedDate)
		weekEnd := calendar.AddDays(weekStart, calendar.DaysPerWeek-1)
		startISO := calendar.ToISODate(weekStart)
		endISO := calendar.ToISODate(weekEnd)
		for _, event := range s.events {
			if event.Date >= startISO && event.Date <= endISO {
				filtered = append(filtered, event)
			}
		}
	default:
		for _, event := range s.events {
			if event.Date == selectedISO {
				filtered = append(filtered, event)
			}
		}
	}

	if search := strings.ToLower(strings.TrimSpace(query.Search)); search != "" {
		matched := filtered[:0]
		for _, event := range filtered {
			haystack := strings.ToLower(event.Title + " " + event.Location + " " + strings.Join(event.Attendees, " "))
			if strings.Contains(haystack, search) {
				matched = append(matched, event)
			}
		}
		filtered = matched
	}

	SortByOrder(filtered)
	return filtered
}

// LeaderStore is the client-side cache of leader contacts. Leaders carry no
// ordering; List sorts by name at read time.
type LeaderStore struct {
	backend Backend
	leaders []Leader
	logger  *zap.Logger
}

// NewLeaderStore builds a store over the given backend.
func NewLeaderStore(backend Backend, logger *zap.Logger) (*LeaderStore, error) {
	if backend == nil {
		return nil, errMissingBackend
	}
	if logger == nil {
		logger = noOpLogger
	}
	return &LeaderStore{backend: backend, logger: logger}, nil
}

// Refresh replaces the cache with the backend's canonical list.
func (s *LeaderStore) Refresh(ctx context.Context) error {
	list, err := s.backend.ListLeaders(ctx)
	if err != nil {
		s.logger.Error("leader refresh failed", zap.Error(err))
		return err
	}
	s.leaders = list
	return nil
}

// List returns the cached leaders sorted by name ascending, recomputed on
// every call.
func (s *LeaderStore) List() []Leader {
	sorted := append([]Leader(nil), s.leaders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// Create persists a new leader and rebuilds the cache.
func (s *LeaderStore) Create(ctx context.Context, leader Leader) error {
	if _, err := s.backend.CreateLeader(ctx, leader); err != nil {
		s.logger.Error("leader create failed", zap.Error(err))
		return err
	}
	return s.Refresh(ctx)
}

// Update persists changed fields of an existing leader and rebuilds the cache.
func (s *LeaderStore) Update(ctx context.Context, leader Leader) error {
	if _, err := s.backend.UpdateLeader(ctx, leader); err != nil {
		s.logger.Error("leader update failed", zap.Error(err), zap.String("leader_id", leader.ID))
		return err
	}
	return s.Refresh(ctx)
}

// Delete removes a leader and rebuilds the cache.
func (s *LeaderStore) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteLeader(ctx, id); err != nil {
		s.logger.Error("leader delete failed", zap.Error(err), zap.String("leader_id", id))
		return err
	}
	return s.Refresh(ctx)
}
