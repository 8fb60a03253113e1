package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/fintrack-api/internal/database"
)

// Repository handles record persistence. Every query is scoped to the owner.
type Repository struct {
	db  bun.IDB
	now func() time.Time
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// ListByUser returns the owner's records, newest first
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	var rows []database.Record
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for i := range rows {
		records = append(records, *mapDBRecordToModel(&rows[i]))
	}
	return records, nil
}

// GetByID retrieves one of the owner's records
func (r *Repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Record, error) {
	row := new(database.Record)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return mapDBRecordToModel(row), nil
}

// Create inserts a record for rec.UserID
func (r *Repository) Create(ctx context.Context, rec Record) (*Record, error) {
	now := r.now().UTC()
	row := &database.Record{
		ID:          uuid.New(),
		UserID:      rec.UserID,
		Amount:      rec.Amount,
		Description: rec.Description,
		Type:        rec.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return mapDBRecordToModel(row), nil
}

// Update writes the non-nil fields of one of the owner's records
func (r *Repository) Update(ctx context.Context, id, userID uuid.UUID, fields UpdateFields) (*Record, error) {
	row := new(database.Record)
	q := r.db.NewUpdate().
		Model(row).
		Set("updated_at = ?", r.now().UTC())

	if fields.Amount != nil {
		q = q.Set("amount = ?", *fields.Amount)
	}
	if fields.Description != nil {
		q = q.Set("description = ?", *fields.Description)
	}
	if fields.Type != nil {
		q = q.Set("type = ?", *fields.Type)
	}

	res, err := q.Where("id = ?", id).
		Where("user_id = ?", userID).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return mapDBRecordToModel(row), nil
}

// Delete removes one of the owner's records and returns it
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) (*Record, error) {
	row := new(database.Record)
	res, err := r.db.NewDelete().
		Model(row).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}

	return mapDBRecordToModel(row), nil
}

func requireAffected(res sql.Result) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapDBRecordToModel(row *database.Record) *Record {
	return &Record{
		ID:          row.ID,
		UserID:      row.UserID,
		Amount:      row.Amount,
		Description: row.Description,
		Type:        row.Type,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
