package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a cost owed by one user under one subcategory. IsPaid is kept
// consistent with PaidAt at write time: a set PaidAt forces IsPaid true and
// an explicit IsPaid without PaidAt stamps the current time.
type Expense struct {
	ID            uuid.UUID  `json:"id" gorm:"primaryKey"`
	Description   string     `json:"description" gorm:"not null"`
	Amount        float64    `json:"amount" gorm:"not null"`
	DueDate       time.Time  `json:"due_date" gorm:"column:due_date;not null"`
	PaidAt        *time.Time `json:"paid_at,omitempty" gorm:"column:paid_at"`
	IsPaid        bool       `json:"is_paid" gorm:"column:is_paid;not null"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
	UserID        uuid.UUID  `json:"user_id" gorm:"column:user_id;not null"`
	SubCategoryID uuid.UUID  `json:"sub_category_id" gorm:"column:sub_category_id;not null"`
}

func (Expense) TableName() string {
	return "expenses"
}

// Filter is the descriptor of optional predicates for expense listing.
// All present fields combine with AND semantics.
//
// LatePayment true restricts to unpaid expenses already past due.
// LatePayment false restricts to expenses that are paid OR not yet due —
// the logical negation of late, not merely "late filter absent".
type Filter struct {
	UserID        *uuid.UUID
	SubCategoryID *uuid.UUID
	IsPaid        *bool
	LatePayment   *bool
}

// ReportFilter is the report-generation variant of Filter: owner and
// subcategory accept sets and match with IN semantics; an empty set leaves
// that dimension unrestricted.
type ReportFilter struct {
	UserIDs        []uuid.UUID
	SubCategoryIDs []uuid.UUID
	IsPaid         *bool
	LatePayment    *bool
}
