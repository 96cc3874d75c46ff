package user

import (
	"strings"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type UserDetailResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	CreatedAt time.Time        `json:"created_at"`
	Expenses  []ExpenseSummary `json:"expenses"`
}

type PagedUsersResponse struct {
	Result   []UserResponse `json:"result"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type PostUserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (dto PostUserDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("", "O nome do usuário é obrigatório")
	}
	if err := validateEmail(dto.Email); err != nil {
		return err
	}
	return nil
}

type PutUserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (dto PutUserDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("", "O nome do usuário é obrigatório")
	}
	if err := validateEmail(dto.Email); err != nil {
		return err
	}
	return nil
}

type PatchUserDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (dto PatchUserDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return internal.NewValidationError("", "O nome do usuário não pode ser vazio")
	}
	if dto.Email != nil {
		if err := validateEmail(*dto.Email); err != nil {
			return err
		}
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return internal.NewValidationError("", "O E-mail do usuário é obrigatório")
	}
	if !strings.Contains(email, "@") {
		return internal.NewValidationError("", "O E-mail do usuário é inválido")
	}
	return nil
}

func toResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func newUser(name, email string) *User {
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
}
