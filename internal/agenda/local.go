package agenda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalBackend persists events and leaders to a single JSON file, the way
// the original local-only variant used browser storage. It satisfies the
// same Backend contract as the remote API, including max+1 order assignment
// and the all-or-nothing reorder batch.
type LocalBackend struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	state localState
}

type localState struct {
	Events  []Event  `json:"events"`
	Leaders []Leader `json:"leaders"`
}

// NewLocalBackend opens (or seeds) the JSON file at path.
func NewLocalBackend(path string, logger *zap.Logger) (*LocalBackend, error) {
	if path == "" {
		return nil, errors.New("agenda: data path is required")
	}
	if logger == nil {
		logger = noOpLogger
	}

	backend := &LocalBackend{path: path, logger: logger}
	if err := backend.load(); err != nil {
		return nil, err
	}
	return backend, nil
}

func (b *LocalBackend) load() error {
	raw, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		b.state = localState{Events: seedEvents(), Leaders: []Leader{}}
		return b.save()
	}
	if err != nil {
		return fmt.Errorf("agenda: read %s: %w", b.path, err)
	}

	if err := json.Unmarshal(raw, &b.state); err != nil {
		return fmt.Errorf("agenda: decode %s: %w", b.path, err)
	}
	b.state.Events = Normalize(b.state.Events)
	if b.state.Leaders == nil {
		b.state.Leaders = []Leader{}
	}
	return nil
}

func (b *LocalBackend) save() error {
	encoded, err := json.MarshalIndent(b.state, "", "  ")
	if err != nil {
		return fmt.Errorf("agenda: encode state: %w", err)
	}
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("agenda: create data dir: %w", err)
		}
	}
	if err := os.WriteFile(b.path, encoded, 0o644); err != nil {
		return fmt.Errorf("agenda: write %s: %w", b.path, err)
	}
	return nil
}

// seedEvents returns the default events shipped with a fresh store.
func seedEvents() []Event {
	defaults := []Event{
		{
			ID:        uuid.NewString(),
			Title:     "Treino",
			Date:      "2026-02-17",
			Time:      "08:30",
			Location:  "Academia Green Fit",
			Priority:  "alta",
			Attendees: []string{"GM"},
		},
		{
			ID:        uuid.NewString(),
			Title:     "Reunião com o time",
			Date:      "2026-02-22",
			Time:      "09:45",
			Location:  "Escritório Green Leaf",
			Priority:  "media",
			Attendees: []string{"J", "B"},
		},
		{
			ID:        uuid.NewString(),
			Title:     "Almoço com Stephanie",
			Date:      "2026-02-27",
			Time:      "13:00",
			Location:  "Café Mallota",
			Priority:  "baixa",
			Attendees: []string{"S"},
		},
	}
	return Normalize(defaults)
}

func (b *LocalBackend) ListEvents(_ context.Context) ([]Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := append([]Event(nil), b.state.Events...)
	SortByOrder(list)
	return list, nil
}

func (b *LocalBackend) CreateEvent(_ context.Context, event Event) (Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Order == nil {
		maxOrder := 0
		for _, existing := range b.state.Events {
			if existing.Order != nil && *existing.Order > maxOrder {
				maxOrder = *existing.Order
			}
		}
		slot := maxOrder + 1
		event.Order = &slot
	}
	if event.Attendees == nil {
		event.Attendees = []string{}
	}

	b.state.Events = append(b.state.Events, event)
	if err := b.save(); err != nil {
		return Event{}, err
	}
	return event, nil
}

func (b *LocalBackend) UpdateEvent(_ context.Context, event Event) (Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, existing := range b.state.Events {
		if existing.ID != event.ID {
			continue
		}
		if event.Order == nil {
			event.Order = existing.Order
		}
		if event.Attendees == nil {
			event.Attendees = []string{}
		}
		b.state.Events[i] = event
		if err := b.save(); err != nil {
			return Event{}, err
		}
		return event, nil
	}
	return Event{}, fmt.Errorf("%w: %s", ErrUnknownEventID, event.ID)
}

func (b *LocalBackend) DeleteEvent(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	remaining := b.state.Events[:0]
	for _, event := range b.state.Events {
		if event.ID != id {
			remaining = append(remaining, event)
		}
	}
	b.state.Events = remaining
	return b.save()
}

func (b *LocalBackend) ReorderEvents(_ context.Context, updates []OrderUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(updates) == 0 {
		return errors.New("agenda: no updates provided")
	}

	index := make(map[string]int, len(b.state.Events))
	for i, event := range b.state.Events {
		index[event.ID] = i
	}
	// Validate the whole batch before touching anything.
	for _, update := range updates {
		if _, ok := index[update.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEventID, update.ID)
		}
	}
	for _, update := range updates {
		slot := update.Order
		b.state.Events[index[update.ID]].Order = &slot
	}
	return b.save()
}

func (b *LocalBackend) ListLeaders(_ context.Context) ([]Leader, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := append([]Leader(nil), b.state.Leaders...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (b *LocalBackend) CreateLeader(_ context.Context, leader Leader) (Leader, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if leader.ID == "" {
		leader.ID = uuid.NewString()
	}
	if leader.Ministries == nil {
		leader.Ministries = []string{}
	}
	b.state.Leaders = append(b.state.Leaders, leader)
	if err := b.save(); err != nil {
		return Leader{}, err
	}
	return leader, nil
}

func (b *LocalBackend) UpdateLeader(_ context.Context, leader Leader) (Leader, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, existing := range b.state.Leaders {
		if existing.ID != leader.ID {
			continue
		}
		if leader.Ministries == nil {
			leader.Ministries = []string{}
		}
		b.state.Leaders[i] = leader
		if err := b.save(); err != nil {
			return Leader{}, err
		}
		return leader, nil
	}
	return Leader{}, fmt.Errorf("agenda: unknown leader id %s", leader.ID)
}

func (b *LocalBackend) DeleteLeader(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	remaining := b.state.Leaders[:0]
	for _, leader := range b.state.Leaders {
		if leader.ID != id {
			remaining = append(remaining, leader)
		}
	}
	b.state.Leaders = remaining
	return b.save()
}
