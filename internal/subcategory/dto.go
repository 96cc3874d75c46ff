package subcategory

import (
	"strings"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/google/uuid"
)

type SubCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id"`
}

type SubCategoryDetailResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	CategoryID  uuid.UUID        `json:"category_id"`
	Expenses    []ExpenseSummary `json:"expenses"`
}

type PagedSubCategoriesResponse struct {
	Result   []SubCategoryResponse `json:"result"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
}

type PostSubCategoryDTO struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id"`
}

func (dto PostSubCategoryDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("", "O nome da subcategoria é obrigatório")
	}
	if dto.CategoryID == uuid.Nil {
		return internal.NewValidationError("", "O id da categoria é obrigatório")
	}
	return nil
}

type PutSubCategoryDTO struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id"`
}

func (dto PutSubCategoryDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("", "O nome da subcategoria é obrigatório")
	}
	if dto.CategoryID == uuid.Nil {
		return internal.NewValidationError("", "O id da categoria é obrigatório")
	}
	return nil
}

type PatchSubCategoryDTO struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

func (dto PatchSubCategoryDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return internal.NewValidationError("", "O nome da subcategoria não pode ser vazio")
	}
	if dto.CategoryID != nil && *dto.CategoryID == uuid.Nil {
		return internal.NewValidationError("", "O id da categoria não pode ser vazio")
	}
	return nil
}

func toResponse(sc *SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		CategoryID:  sc.CategoryID,
	}
}

func newSubCategory(name string, description *string, categoryID uuid.UUID) *SubCategory {
	return &SubCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		CreatedAt:   time.Now(),
	}
}
