package category

import (
	"time"

	"github.com/google/uuid"
)

// Category groups subcategories of spending. Name is unique across the
// whole table and stored sentence-cased.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// SubCategorySummary is the nested child shape returned by GetByID. It is
// read straight from the subcategories table so this package does not
// depend on the subcategory package.
type SubCategorySummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

func (SubCategorySummary) TableName() string {
	return "subcategories"
}
