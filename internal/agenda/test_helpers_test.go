package agenda

import (
	"context"
	"errors"
	"sort"
	"testing"
)

var errBackendDown = errors.New("backend unavailable")

// stubBackend is an in-memory Backend with switchable failure modes.
type stubBackend struct {
	events  []Event
	leaders []Leader

	failReorder bool
	failList    bool

	reorderCalls int
	listCalls    int
}

func (b *stubBackend) ListEvents(context.Context) ([]Event, error) {
	b.listCalls++
	if b.failList {
		return nil, errBackendDown
	}
	return append([]Event(nil), b.events...), nil
}

func (b *stubBackend) CreateEvent(_ context.Context, event Event) (Event, error) {
	if event.Order == nil {
		maxOrder := 0
		for _, existing := range b.events {
			if existing.Order != nil && *existing.Order > maxOrder {
				maxOrder = *existing.Order
			}
		}
		slot := maxOrder + 1
		event.Order = &slot
	}
	b.events = append(b.events, event)
	return event, nil
}

func (b *stubBackend) UpdateEvent(_ context.Context, event Event) (Event, error) {
	for i := range b.events {
		if b.events[i].ID == event.ID {
			if event.Order == nil {
				event.Order = b.events[i].Order
			}
			b.events[i] = event
			return event, nil
		}
	}
	return Event{}, errors.New("stub: unknown event")
}

func (b *stubBackend) DeleteEvent(_ context.Context, id string) error {
	remaining := b.events[:0]
	for _, event := range b.events {
		if event.ID != id {
			remaining = append(remaining, event)
		}
	}
	b.events = remaining
	return nil
}

func (b *stubBackend) ReorderEvents(_ context.Context, updates []OrderUpdate) error {
	b.reorderCalls++
	if b.failReorder {
		return errBackendDown
	}
	for _, update := range updates {
		for i := range b.events {
			if b.events[i].ID == update.ID {
				slot := update.Order
				b.events[i].Order = &slot
			}
		}
	}
	return nil
}

func (b *stubBackend) ListLeaders(context.Context) ([]Leader, error) {
	list := append([]Leader(nil), b.leaders...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (b *stubBackend) CreateLeader(_ context.Context, leader Leader) (Leader, error) {
	b.leaders = append(b.leaders, leader)
	return leader, nil
}

func (b *stubBackend) UpdateLeader(_ context.Context, leader Leader) (Leader, error) {
	for i := range b.leaders {
		if b.leaders[i].ID == leader.ID {
			b.leaders[i] = leader
			return leader, nil
		}
	}
	return Leader{}, errors.New("stub: unknown leader")
}

func (b *stubBackend) DeleteLeader(_ context.Context, id string) error {
	remaining := b.leaders[:0]
	for _, leader := range b.leaders {
		if leader.ID != id {
			remaining = append(remaining, leader)
		}
	}
	b.leaders = remaining
	return nil
}

func newTestStore(t *testing.T, backend Backend) *EventStore {
	t.Helper()
	store, err := NewEventStore(backend, nil)
	if err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	return store
}

func weekStubEvents() []Event {
	return []Event{
		{ID: "treino", Title: "Treino", Date: "2026-02-17", Time: "08:30", Location: "Academia Green Fit", Priority: "alta", Attendees: []string{"GM"}, Order: intPtr(1)},
		{ID: "reuniao", Title: "Reunião com o time", Date: "2026-02-17", Time: "09:45", Location: "Escritório Green Leaf", Priority: "media", Attendees: []string{"J", "B"}, Order: intPtr(2)},
		{ID: "almoco", Title: "Almoço com Stephanie", Date: "2026-02-19", Time: "13:00", Location: "Café Mallota", Priority: "baixa", Attendees: []string{"S"}, Order: intPtr(3)},
		{ID: "culto", Title: "Culto", Date: "2026-02-27", Time: "18:00", Location: "Templo", Priority: "alta", Attendees: []string{"D"}, Order: intPtr(4)},
	}
}
