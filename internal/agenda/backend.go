package agenda

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidaplena/agenda/internal/config"
	"go.uber.org/zap"
)

// Backend is the persistence capability the client stores talk to. The
// backend is the sole durable owner of both entity types; the stores hold
// transient caches rebuilt wholesale after cross-record mutations.
type Backend interface {
	ListEvents(ctx context.Context) ([]Event, error)
	CreateEvent(ctx context.Context, event Event) (Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ReorderEvents(ctx context.Context, updates []OrderUpdate) error

	ListLeaders(ctx context.Context) ([]Leader, error)
	CreateLeader(ctx context.Context, leader Leader) (Leader, error)
	UpdateLeader(ctx context.Context, leader Leader) (Leader, error)
	DeleteLeader(ctx context.Context, id string) error
}

var errUnknownBackendMode = errors.New("agenda: unknown backend mode")

// NewBackend selects a backend implementation from configuration: "remote"
// talks JSON over HTTP to the API server, "local" persists to a JSON file
// with no server involved.
func NewBackend(cfg config.ClientConfig, logger *zap.Logger) (Backend, error) {
	switch cfg.Mode {
	case "remote":
		return NewRemoteBackend(cfg.BaseURL, logger), nil
	case "local":
		return NewLocalBackend(cfg.DataPath, logger)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackendMode, cfg.Mode)
	}
}
