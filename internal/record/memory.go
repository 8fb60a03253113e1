package record

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[uuid.UUID]Record),
		now:     time.Now,
	}
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0)
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (r *MemoryRepository) Create(ctx context.Context, rec Record) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	rec.ID = uuid.New()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID] = rec

	return &rec, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id, userID uuid.UUID, fields UpdateFields) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}

	if fields.Amount != nil {
		rec.Amount = *fields.Amount
	}
	if fields.Description != nil {
		rec.Description = *fields.Description
	}
	if fields.Type != nil {
		rec.Type = *fields.Type
	}
	rec.UpdatedAt = r.now().UTC()
	r.records[id] = rec

	return &rec, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id, userID uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, ErrNotFound
	}
	delete(r.records, id)

	return &rec, nil
}

// DeleteByUser removes every record owned by userID
func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.records {
		if rec.UserID == userID {
			delete(r.records, id)
		}
	}
	return nil
}
