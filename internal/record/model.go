package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var ErrNotFound = errors.New("record not found")

// Record is a single income or expense entry owned by a user
type Record struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateFields holds a partial update. Nil fields are left unchanged.
type UpdateFields struct {
	Amount      *float64
	Description *string
	Type        *string
}

func (f UpdateFields) IsEmpty() bool {
	return f.Amount == nil && f.Description == nil && f.Type == nil
}
