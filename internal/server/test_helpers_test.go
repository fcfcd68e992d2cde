package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/vidaplena/agenda/internal/events"
	"github.com/vidaplena/agenda/internal/leaders"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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

func newTestHandler(t *testing.T, eventIDs, leaderIDs []string) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:agenda_server_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	if err := db.AutoMigrate(&events.Event{}, &leaders.Leader{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	eventsService, err := events.NewService(events.ServiceConfig{
		Database:   db,
		IDProvider: &staticIDGenerator{ids: eventIDs},
	})
	if err != nil {
		t.Fatalf("failed to build events service: %v", err)
	}
	leadersService, err := leaders.NewService(leaders.ServiceConfig{
		Database:   db,
		IDProvider: &staticIDGenerator{ids: leaderIDs},
	})
	if err != nil {
		t.Fatalf("failed to build leaders service: %v", err)
	}

	handler, err := NewHTTPHandler(Dependencies{
		EventsService:  eventsService,
		LeadersService: leadersService,
	})
	if err != nil {
		t.Fatalf("failed to build handler: %v", err)
	}
	return handler
}

func performJSON(t *testing.T, handler http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}
