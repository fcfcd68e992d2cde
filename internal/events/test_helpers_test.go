package events

import (
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type staticIDGenerator struct {
	ids   []string
	index int
}

func (g *staticIDGenerator) NewID() (string, error) {
	if g.index >= len(g.ids) {
		return "", errors.New("exhausted ids")
	}
	id := g.ids[g.index]
	g.index++
	return id, nil
}

func newTestService(t *testing.T, ids []string) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:agenda_events_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Event{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{
		Database:   db,
		IDProvider: &staticIDGenerator{ids: ids},
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return service, db
}

func mustEventID(t *testing.T, value string) EventID {
	t.Helper()
	id, err := NewEventID(value)
	if err != nil {
		t.Fatalf("unexpected event id error: %v", err)
	}
	return id
}

func mustChangeRequest(t *testing.T, id, title, date, timeOfDay, location, priority string, attendees []string, order *int) ChangeRequest {
	t.Helper()
	request, err := NewChangeRequest(id, title, date, timeOfDay, location, priority, attendees, order)
	if err != nil {
		t.Fatalf("unexpected change request error: %v", err)
	}
	return request
}
