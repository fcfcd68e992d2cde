package events

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errMissingDatabase   = errors.New("database handle is required")
	errMissingIDProvider = errors.New("id provider is required")
	noOpLogger           = zap.NewNop()
)

// ServiceError carries a dotted operation.reason code alongside the cause.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

func (e *ServiceError) Code() string {
	return e.code
}

const (
	opServiceNew = "events.service.new"
	opList       = "events.list"
	opCreate     = "events.create"
	opUpdate     = "events.update"
	opDelete     = "events.delete"
	opReorder    = "events.reorder"
)

func newServiceError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &ServiceError{code: code, err: cause}
}

// IDProvider issues identifiers for events created without one.
type IDProvider interface {
	NewID() (string, error)
}

type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider IDProvider
	Logger     *zap.Logger
}

// Service exposes the persistence operations for events: list, create,
// update, delete and the atomic reorder batch.
type Service struct {
	db         *gorm.DB
	idProvider IDProvider
	logger     *zap.Logger
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, newServiceError(opServiceNew, "missing_database", errMissingDatabase)
	}
	if cfg.IDProvider == nil {
		return nil, newServiceError(opServiceNew, "missing_id_provider", errMissingIDProvider)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{
		db:         cfg.Database,
		idProvider: cfg.IDProvider,
		logger:     logger,
	}, nil
}

// List returns every stored event ordered by (order_index, date, time)
// ascending.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	if s.db == nil {
		s.logError(opList, "missing_database", errMissingDatabase)
		return nil, newServiceError(opList, "missing_database", errMissingDatabase)
	}

	events := make([]Event, 0)
	if err := s.db.WithContext(ctx).
		Order("order_index ASC, event_date ASC, event_time ASC").
		Find(&events).Error; err != nil {
		s.logError(opList, "query_failed", err)
		return nil, newServiceError(opList, "query_failed", err)
	}
	return events, nil
}

// Create inserts a new event. When the request carries no order, the event is
// appended after the current maximum; when it carries no id, one is generated.
func (s *Service) Create(ctx context.Context, request ChangeRequest) (Event, error) {
	if s.db == nil {
		s.logError(opCreate, "missing_database", errMissingDatabase)
		return Event{}, newServiceError(opCreate, "missing_database", errMissingDatabase)
	}

	id := request.ID.String()
	if id == "" {
		generated, err := s.idProvider.NewID()
		if err != nil {
			s.logError(opCreate, "id_generation_failed", err)
			return Event{}, newServiceError(opCreate, "id_generation_failed", err)
		}
		id = generated
	}

	created := Event{
		ID:        id,
		Title:     request.Title,
		Date:      request.Date,
		Time:      request.Time,
		Location:  request.Location,
		Priority:  request.Priority,
		Attendees: StringList(request.Attendees),
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if request.Order != nil {
			created.OrderIndex = *request.Order
		} else {
			var maxOrder int
			row := tx.Model(&Event{}).Select("COALESCE(MAX(order_index), 0)").Row()
			if err := row.Scan(&maxOrder); err != nil {
				return newServiceError(opCreate, "max_order_failed", err)
			}
			created.OrderIndex = maxOrder + 1
		}
		if err := tx.Create(&created).Error; err != nil {
			return newServiceError(opCreate, "insert_failed", err)
		}
		return nil
	})
	if txErr != nil {
		s.logError(opCreate, "transaction_failed", txErr, zap.String("event_id", id))
		return Event{}, txErr
	}

	return created, nil
}

// Update replaces every stored field of the event except the identifier.
// A nil request order keeps the previously stored order.
func (s *Service) Update(ctx context.Context, request ChangeRequest) (Event, error) {
	if s.db == nil {
		s.logError(opUpdate, "missing_database", errMissingDatabase)
		return Event{}, newServiceError(opUpdate, "missing_database", errMissingDatabase)
	}
	if request.ID == "" {
		return Event{}, fmt.Errorf("%w: empty", ErrInvalidEventID)
	}

	var updated Event
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", request.ID.String()).
			Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrEventNotFound, request.ID)
		}
		if err != nil {
			return newServiceError(opUpdate, "select_failed", err)
		}

		updated = Event{
			ID:         existing.ID,
			Title:      request.Title,
			Date:       request.Date,
			Time:       request.Time,
			Location:   request.Location,
			Priority:   request.Priority,
			Attendees:  StringList(request.Attendees),
			OrderIndex: existing.OrderIndex,
		}
		if request.Order != nil {
			updated.OrderIndex = *request.Order
		}

		if err := tx.Save(&updated).Error; err != nil {
			return newServiceError(opUpdate, "save_failed", err)
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrEventNotFound) {
			s.logError(opUpdate, "transaction_failed", txErr, zap.String("event_id", request.ID.String()))
		}
		return Event{}, txErr
	}

	return updated, nil
}

// Delete removes the event by id. Surviving events are never renumbered.
func (s *Service) Delete(ctx context.Context, id EventID) error {
	if s.db == nil {
		s.logError(opDelete, "missing_database", errMissingDatabase)
		return newServiceError(opDelete, "missing_database", errMissingDatabase)
	}
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidEventID)
	}

	if err := s.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&Event{}).Error; err != nil {
		s.logError(opDelete, "delete_failed", err, zap.String("event_id", id.String()))
		return newServiceError(opDelete, "delete_failed", err)
	}
	return nil
}

// Reorder applies a batch of order assignments in one transaction. The batch
// is all-or-nothing: an empty batch or any update matching no stored event
// rolls the whole batch back, since a partial apply would leave duplicate or
// missing slots in the total order.
func (s *Service) Reorder(ctx context.Context, updates []OrderUpdate) error {
	if s.db == nil {
		s.logError(opReorder, "missing_database", errMissingDatabase)
		return newServiceError(opReorder, "missing_database", errMissingDatabase)
	}
	if len(updates) == 0 {
		return ErrEmptyReorder
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			if update.ID == "" {
				return fmt.Errorf("%w: empty", ErrInvalidEventID)
			}
			result := tx.Model(&Event{}).
				Where("id = ?", update.ID.String()).
				Update("order_index", update.Order)
			if result.Error != nil {
				return newServiceError(opReorder, "update_failed", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrEventNotFound, update.ID)
			}
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrEventNotFound) && !errors.Is(txErr, ErrInvalidEventID) {
			s.logError(opReorder, "transaction_failed", txErr, zap.Int("updates", len(updates)))
		}
		return txErr
	}
	return nil
}

func (s *Service) loggerOrDefault() *zap.Logger {
	if s == nil || s.logger == nil {
		return noOpLogger
	}
	return s.logger
}

func (s *Service) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.loggerOrDefault().Error("events service error", attrs...)
}
