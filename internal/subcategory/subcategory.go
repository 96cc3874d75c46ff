package subcategory

import (
	"time"

	"github.com/google/uuid"
)

// SubCategory belongs to exactly one category; its name is unique within
// that category and stored word-title-cased.
type SubCategory struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex:idx_subcategories_name_category"`
	Description *string   `json:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id" gorm:"column:category_id;not null;uniqueIndex:idx_subcategories_name_category"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (SubCategory) TableName() string {
	return "subcategories"
}

// ExpenseSummary is the nested expense shape returned by GetByID, read
// straight from the expenses table.
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
