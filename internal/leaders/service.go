package leaders

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
	opServiceNew = "leaders.service.new"
	opList       = "leaders.list"
	opCreate     = "leaders.create"
	opUpdate     = "leaders.update"
	opDelete     = "leaders.delete"
)

func newServiceError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &ServiceError{code: code, err: cause}
}

// IDProvider issues identifiers for leaders created without one.
type IDProvider interface {
	NewID() (string, error)
}

type ServiceConfig struct {
	Database   *gorm.DB
	IDProvider IDProvider
	Logger     *zap.Logger
}

// Service exposes the persistence operations for leader contacts.
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

// List returns every stored leader ordered by name ascending.
func (s *Service) List(ctx context.Context) ([]Leader, error) {
	if s.db == nil {
		s.logError(opList, "missing_database", errMissingDatabase)
		return nil, newServiceError(opList, "missing_database", errMissingDatabase)
	}

	leaders := make([]Leader, 0)
	if err := s.db.WithContext(ctx).
		Order("name ASC").
		Find(&leaders).Error; err != nil {
		s.logError(opList, "query_failed", err)
		return nil, newServiceError(opList, "query_failed", err)
	}
	return leaders, nil
}

// Create inserts a new leader, generating an identifier when the request
// carries none. A nil OptIn defaults to true.
func (s *Service) Create(ctx context.Context, request ChangeRequest) (Leader, error) {
	if s.db == nil {
		s.logError(opCreate, "missing_database", errMissingDatabase)
		return Leader{}, newServiceError(opCreate, "missing_database", errMissingDatabase)
	}

	id := request.ID.String()
	if id == "" {
		generated, err := s.idProvider.NewID()
		if err != nil {
			s.logError(opCreate, "id_generation_failed", err)
			return Leader{}, newServiceError(opCreate, "id_generation_failed", err)
		}
		id = generated
	}

	optIn := true
	if request.OptIn != nil {
		optIn = *request.OptIn
	}

	created := Leader{
		ID:         id,
		Name:       request.Name,
		Phone:      request.Phone,
		Ministries: request.Ministries,
		OptIn:      optIn,
	}
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		s.logError(opCreate, "insert_failed", err, zap.String("leader_id", id))
		return Leader{}, newServiceError(opCreate, "insert_failed", err)
	}
	return created, nil
}

// Update replaces every stored field of the leader except the identifier.
// A nil OptIn keeps the previously stored value.
func (s *Service) Update(ctx context.Context, request ChangeRequest) (Leader, error) {
	if s.db == nil {
		s.logError(opUpdate, "missing_database", errMissingDatabase)
		return Leader{}, newServiceError(opUpdate, "missing_database", errMissingDatabase)
	}
	if request.ID == "" {
		return Leader{}, fmt.Errorf("%w: empty", ErrInvalidLeaderID)
	}

	var updated Leader
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Leader
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", request.ID.String()).
			Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrLeaderNotFound, request.ID)
		}
		if err != nil {
			return newServiceError(opUpdate, "select_failed", err)
		}

		updated = Leader{
			ID:         existing.ID,
			Name:       request.Name,
			Phone:      request.Phone,
			Ministries: request.Ministries,
			OptIn:      existing.OptIn,
		}
		if request.OptIn != nil {
			updated.OptIn = *request.OptIn
		}

		if err := tx.Save(&updated).Error; err != nil {
			return newServiceError(opUpdate, "save_failed", err)
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrLeaderNotFound) {
			s.logError(opUpdate, "transaction_failed", txErr, zap.String("leader_id", request.ID.String()))
		}
		return Leader{}, txErr
	}

	return updated, nil
}

// Delete removes the leader by id.
func (s *Service) Delete(ctx context.Context, id LeaderID) error {
	if s.db == nil {
		s.logError(opDelete, "missing_database", errMissingDatabase)
		return newServiceError(opDelete, "missing_database", errMissingDatabase)
	}
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLeaderID)
	}

	if err := s.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&Leader{}).Error; err != nil {
		s.logError(opDelete, "delete_failed", err, zap.String("leader_id", id.String()))
		return newServiceError(opDelete, "delete_failed", err)
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
	s.loggerOrDefault().Error("leaders service error", attrs...)
}
