package user

import (
	"time"

	"github.com/google/uuid"
)

// User owns expenses. Email is stored trimmed and lower-cased and is
// unique in that normalized form.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

// ExpenseSummary is the nested expense shape returned by GetByID.
type ExpenseSummary struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	DueDate     time.Time  `json:"due_date" gorm:"column:due_date"`
	PaidAt      *time.Time `json:"paid_at,omitempty" gorm:"column:paid_at"`
	IsPaid      bool       `json:"is_paid" gorm:"column:is_paid"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (ExpenseSummary) TableName() string {
	return "expenses"
}
