package leaders

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type staticIDGenerator struct {
	ids  []string
	next int
}

func (g *staticIDGenerator) NewID() (string, error) {
	if g.next >= len(g.ids) {
		return "", fmt.Errorf("static id generator exhausted after %d ids", len(g.ids))
	}
	id := g.ids[g.next]
	g.next++
	return id, nil
}

func newTestService(t *testing.T, ids []string) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:agenda_leaders_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Leader{}); err != nil {
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

func mustLeaderID(t *testing.T, value string) LeaderID {
	t.Helper()
	id, err := NewLeaderID(value)
	if err != nil {
		t.Fatalf("failed to build leader id %q: %v", value, err)
	}
	return id
}

func mustChangeRequest(t *testing.T, id, name, phone string, ministries []string, optIn *bool) ChangeRequest {
	t.Helper()
	request, err := NewChangeRequest(id, name, phone, ministries, optIn)
	if err != nil {
		t.Fatalf("failed to build change request for %q: %v", name, err)
	}
	return request
}

func boolPtr(value bool) *bool {
	return &value
}
