package expense

import (
	"strings"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/google/uuid"
)

type ExpenseResponse struct {
	ID            uuid.UUID  `json:"id"`
	Description   string     `json:"description"`
	Amount        float64    `json:"amount"`
	DueDate       time.Time  `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	IsPaid        bool       `json:"is_paid"`
	CreatedAt     time.Time  `json:"created_at"`
	UserID        uuid.UUID  `json:"user_id"`
	SubCategoryID uuid.UUID  `json:"sub_category_id"`
}

// PagedExpensesResponse adds the running total of the filtered set to the
// usual page envelope: total and totalAmount cover every match, not just
// the returned page.
type PagedExpensesResponse struct {
	Result      []ExpenseResponse `json:"result"`
	Total       int64             `json:"total"`
	TotalAmount float64           `json:"totalAmount"`
	Page        int               `json:"page"`
	PageSize    int               `json:"pageSize"`
}

type PostExpenseDTO struct {
	Description   string     `json:"description"`
	Amount        *float64   `json:"amount"`
	DueDate       *time.Time `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	IsPaid        bool       `json:"is_paid"`
	UserID        uuid.UUID  `json:"user_id"`
	SubCategoryID uuid.UUID  `json:"sub_category_id"`
}

func (dto PostExpenseDTO) Validate() error {
	return validateExpenseFields(dto.Description, dto.Amount, dto.DueDate, dto.UserID, dto.SubCategoryID)
}

// PutExpenseDTO fully replaces the expense; there is deliberately no Patch
// for expenses.
type PutExpenseDTO struct {
	Description   string     `json:"description"`
	Amount        *float64   `json:"amount"`
	DueDate       *time.Time `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	IsPaid        bool       `json:"is_paid"`
	UserID        uuid.UUID  `json:"user_id"`
	SubCategoryID uuid.UUID  `json:"sub_category_id"`
}

func (dto PutExpenseDTO) Validate() error {
	return validateExpenseFields(dto.Description, dto.Amount, dto.DueDate, dto.UserID, dto.SubCategoryID)
}

func validateExpenseFields(description string, amount *float64, dueDate *time.Time, userID, subCategoryID uuid.UUID) error {
	if strings.TrimSpace(description) == "" {
		return internal.NewValidationError("", "A descrição da despesa é obrigatória")
	}
	if amount == nil || *amount <= 0 {
		return internal.NewValidationError("", "O valor do custo deve ser maior que zero")
	}
	if dueDate == nil || dueDate.IsZero() {
		return internal.NewValidationError("", "A data de vencimento é obrigatória")
	}
	if userID == uuid.Nil {
		return internal.NewValidationError("", "O id do usuário é obrigatório")
	}
	if subCategoryID == uuid.Nil {
		return internal.NewValidationError("", "O id da subcategoria é obrigatório")
	}
	return nil
}

func toResponse(e *Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		DueDate:       e.DueDate,
		PaidAt:        e.PaidAt,
		IsPaid:        e.IsPaid,
		CreatedAt:     e.CreatedAt,
		UserID:        e.UserID,
		SubCategoryID: e.SubCategoryID,
	}
}
