package category

import (
	"strings"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/google/uuid"
)

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

type CategoryDetailResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Description   *string              `json:"description,omitempty"`
	SubCategories []SubCategorySummary `json:"subCategories"`
}

type PagedCategoriesResponse struct {
	Result   []CategoryResponse `json:"result"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

type PostCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (dto PostCategoryDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("", "O nome da categoria é obrigatório")
	}
	return nil
}

type PutCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (dto PutCategoryDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("", "O nome da categoria é obrigatório")
	}
	return nil
}

// PatchCategoryDTO merges only provided fields; nil means leave untouched.
type PatchCategoryDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (dto PatchCategoryDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return internal.NewValidationError("", "O nome da categoria não pode ser vazio")
	}
	return nil
}

func toResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func newCategory(name string, description *string) *Category {
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
