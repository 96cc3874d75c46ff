package user

import (
	"log/slog"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/core/common/strutil"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	List(limit, offset int) ([]*User, error)
	Count() (int64, error)
	GetByID(id uuid.UUID) (*User, error)
	ExistsByEmail(email string, excludeID uuid.UUID) (bool, error)
	ListExpenses(userID uuid.UUID, isPaid *bool) ([]ExpenseSummary, error)
	Create(user *User) error
	Update(user *User) error
	Delete(id uuid.UUID) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Get(page, pageSize int) (*PagedUsersResponse, error) {
	total, err := s.repo.Count()
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return nil, internal.NewUnavailableError("02x01", err)
	}

	users, err := s.repo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewUnavailableError("02x01", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}

	return &PagedUsersResponse{
		Result:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) GetByID(id uuid.UUID, isPaid *bool) (*UserDetailResponse, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.NewUnavailableError("02x04", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError("02x03", "Usuário não encontrado")
	}

	expenses, err := s.repo.ListExpenses(id, isPaid)
	if err != nil {
		s.logger.Error("failed to list expenses of user", "error", err, "user_id", id)
		return nil, internal.NewUnavailableError("02x04", err)
	}

	return &UserDetailResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Expenses:  expenses,
	}, nil
}

func (s *Service) Create(dto PostUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strutil.TitleCase(dto.Name)
	email := strutil.NormalizeEmail(dto.Email)

	taken, err := s.repo.ExistsByEmail(email, uuid.Nil)
	if err != nil {
		return nil, internal.NewUnavailableError("02x05", err)
	}
	if taken {
		return nil, internal.NewConflictError("02x06", "Não é possivel cadastrar um usuario com este E-mail")
	}

	u := newUser(name, email)
	if err := s.repo.Create(u); err != nil {
		return nil, s.translateWriteError(err, "02x06", "Não é possivel cadastrar um usuario com este E-mail", "02x05")
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email)

	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) Update(id uuid.UUID, dto PutUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("02x08", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError("02x09", "Usuário não encontrado")
	}

	email := strutil.NormalizeEmail(dto.Email)

	taken, err := s.repo.ExistsByEmail(email, id)
	if err != nil {
		return nil, internal.NewUnavailableError("02x08", err)
	}
	if taken {
		return nil, internal.NewConflictError("02x10", "Não é possivel atualizar um usuario com este E-mail")
	}

	u.Name = strutil.TitleCase(dto.Name)
	u.Email = email

	if err := s.repo.Update(u); err != nil {
		return nil, s.translateWriteError(err, "02x10", "Não é possivel atualizar um usuario com este E-mail", "02x08")
	}

	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) Patch(id uuid.UUID, dto PatchUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("02x12", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError("02x13", "Usuário não encontrado")
	}

	if dto.Name != nil {
		u.Name = strutil.TitleCase(*dto.Name)
	}

	if dto.Email != nil {
		email := strutil.NormalizeEmail(*dto.Email)

		// excluding the user itself keeps an identical-value Patch from
		// conflicting against its own row
		taken, err := s.repo.ExistsByEmail(email, id)
		if err != nil {
			return nil, internal.NewUnavailableError("02x12", err)
		}
		if taken {
			return nil, internal.NewConflictError("02x14", "Não é possivel atualizar um usuario com este E-mail")
		}
		u.Email = email
	}

	if err := s.repo.Update(u); err != nil {
		return nil, s.translateWriteError(err, "02x14", "Não é possivel atualizar um usuario com este E-mail", "02x12")
	}

	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) Delete(id uuid.UUID) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewUnavailableError("02x16", err)
	}
	if u == nil {
		return internal.NewNotFoundError("02x17", "Usuário não encontrado")
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewUnavailableError("02x16", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

func (s *Service) translateWriteError(err error, conflictCode, conflictMsg, storeCode string) error {
	if internal.IsDuplicateKey(err) {
		return internal.NewConflictError(conflictCode, conflictMsg)
	}
	s.logger.Error("user write failed", "error", err)
	return internal.NewUnavailableError(storeCode, err)
}
