package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/fintrack-api/internal/apperror"
	"github.com/redmonkez12/fintrack-api/internal/logging"
)

const msgRecordNotFound = "Record not found"

// Store is the persistence contract for records. Every method is scoped to
// the owning user.
type Store interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Record, error)
	Create(ctx context.Context, rec Record) (*Record, error)
	Update(ctx context.Context, id, userID uuid.UUID, fields UpdateFields) (*Record, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (*Record, error)
}

// CreateInput holds the fields of a new record
type CreateInput struct {
	Amount      float64
	Description string
	Type        string
}

// Service handles record business logic
type Service struct {
	store  Store
	logger *logging.Logger
}

func NewService(store Store, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger}
}

// List returns the user's records, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	logger := s.log(ctx).WithFields(map[string]any{"operation": "list_records", "user_id": userID})

	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("failed to list records", "error", err.Error())
		return nil, apperror.Internal(err)
	}

	logger.Debug("records listed", "count", len(records))
	return records, nil
}

// Get returns a single record owned by the user
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*Record, error) {
	logger := s.log(ctx).WithFields(map[string]any{"operation": "get_record", "user_id": userID, "record_id": id})

	rec, err := s.store.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.mapError(logger, err)
	}
	return rec, nil
}

// Create stores a new record for the user
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Record, error) {
	logger := s.log(ctx).WithFields(map[string]any{"operation": "create_record", "user_id": userID})

	rec, err := s.store.Create(ctx, Record{
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Type:        in.Type,
	})
	if err != nil {
		logger.Error("failed to create record", "error", err.Error())
		return nil, apperror.Internal(err)
	}

	logger.Info("record created", "record_id", rec.ID)
	return rec, nil
}

// Update applies a partial update to a record owned by the user
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, fields UpdateFields) (*Record, error) {
	logger := s.log(ctx).WithFields(map[string]any{"operation": "update_record", "user_id": userID, "record_id": id})

	if fields.IsEmpty() {
		return s.Get(ctx, id, userID)
	}

	rec, err := s.store.Update(ctx, id, userID, fields)
	if err != nil {
		return nil, s.mapError(logger, err)
	}

	logger.Info("record updated")
	return rec, nil
}

// Delete removes a record owned by the user and returns its last state
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) (*Record, error) {
	logger := s.log(ctx).WithFields(map[string]any{"operation": "delete_record", "user_id": userID, "record_id": id})

	rec, err := s.store.Delete(ctx, id, userID)
	if err != nil {
		return nil, s.mapError(logger, err)
	}

	logger.Info("record deleted")
	return rec, nil
}

func (s *Service) mapError(logger *logging.Logger, err error) error {
	if errors.Is(err, ErrNotFound) {
		logger.Warn("record not found")
		return apperror.NotFound(msgRecordNotFound)
	}
	logger.Error("record store failed", "error", err.Error())
	return apperror.Internal(fmt.Errorf("record store: %w", err))
}

func (s *Service) log(ctx context.Context) *logging.Logger {
	if logger, ok := logging.LoggerFromContext(ctx); ok {
		return logger
	}
	return s.logger
}
