package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Email uniqueness is
// enforced under the same lock as the write.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
	now     func() time.Time

	cascade []func(ctx context.Context, userID uuid.UUID) error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]User),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

// OnDelete registers fn to run after a user is removed, mirroring the
// ON DELETE CASCADE constraints of the SQL schema.
func (r *MemoryRepository) OnDelete(fn func(ctx context.Context, userID uuid.UUID) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cascade = append(r.cascade, fn)
}

func (r *MemoryRepository) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	now := r.now().UTC()
	u := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID

	return &u, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if fields.Email != nil && *fields.Email != u.Email {
		if _, taken := r.byEmail[*fields.Email]; taken {
			return nil, ErrDuplicateEmail
		}
		delete(r.byEmail, u.Email)
		u.Email = *fields.Email
		r.byEmail[u.Email] = u.ID
	}
	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.PasswordHash != nil {
		u.PasswordHash = *fields.PasswordHash
	}
	u.UpdatedAt = r.now().UTC()
	r.byID[id] = u

	return &u, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	u, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	cascade := r.cascade
	r.mu.Unlock()

	for _, fn := range cascade {
		if err := fn(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to cascade user delete: %w", err)
		}
	}

	return &u, nil
}
