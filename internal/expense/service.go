package expense

import (
	"log/slog"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	// Search resolves the whole filtered set once: the returned total and
	// sum cover every match while the slice holds only the requested page,
	// all under the same predicate set and the same now.
	Search(f Filter, now time.Time, limit, offset int) ([]*Expense, int64, float64, error)
	GetByID(id uuid.UUID) (*Expense, error)
	UserExists(id uuid.UUID) (bool, error)
	SubCategoryExists(id uuid.UUID) (bool, error)
	Create(expense *Expense) error
	Update(expense *Expense) error
	Delete(id uuid.UUID) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source, used by tests exercising the
// lateness and paid-at rules.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Get(f Filter, page, pageSize int) (*PagedExpensesResponse, error) {
	expenses, total, totalAmount, err := s.repo.Search(f, s.now(), pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("failed to search expenses", "error", err)
		return nil, internal.NewUnavailableError("04x01", err)
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, toResponse(e))
	}

	return &PagedExpensesResponse{
		Result:      responses,
		Total:       total,
		TotalAmount: totalAmount,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func (s *Service) GetByID(id uuid.UUID) (*ExpenseResponse, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, internal.NewUnavailableError("04x04", err)
	}
	if e == nil {
		return nil, internal.NewNotFoundError("04x03", "Despesa não encontrada")
	}

	resp := toResponse(e)
	return &resp, nil
}

func (s *Service) Create(dto PostExpenseDTO) (*ExpenseResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(dto.UserID, dto.SubCategoryID, "04x07"); err != nil {
		return nil, err
	}

	paidAt, isPaid, err := s.reconcilePayment(dto.PaidAt, dto.IsPaid)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		ID:            uuid.New(),
		Description:   dto.Description,
		Amount:        *dto.Amount,
		DueDate:       *dto.DueDate,
		PaidAt:        paidAt,
		IsPaid:        isPaid,
		CreatedAt:     s.now(),
		UserID:        dto.UserID,
		SubCategoryID: dto.SubCategoryID,
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", dto.UserID)
		return nil, internal.NewUnavailableError("04x07", err)
	}

	s.logger.Info("expense created", "expense_id", e.ID, "user_id", e.UserID, "amount", e.Amount)

	resp := toResponse(e)
	return &resp, nil
}

func (s *Service) Update(id uuid.UUID, dto PutExpenseDTO) (*ExpenseResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("04x09", err)
	}
	if e == nil {
		return nil, internal.NewNotFoundError("", "Despesa não encontrada")
	}

	if err := s.checkReferences(dto.UserID, dto.SubCategoryID, "04x09"); err != nil {
		return nil, err
	}

	paidAt, isPaid, err := s.reconcilePayment(dto.PaidAt, dto.IsPaid)
	if err != nil {
		return nil, err
	}

	e.Description = dto.Description
	e.Amount = *dto.Amount
	e.DueDate = *dto.DueDate
	e.PaidAt = paidAt
	e.IsPaid = isPaid
	e.UserID = dto.UserID
	e.SubCategoryID = dto.SubCategoryID

	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewUnavailableError("04x09", err)
	}

	resp := toResponse(e)
	return &resp, nil
}

func (s *Service) Delete(id uuid.UUID) error {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewUnavailableError("04x11", err)
	}
	if e == nil {
		return internal.NewNotFoundError("", "Despesa não encontrada")
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return internal.NewUnavailableError("04x11", err)
	}

	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}

func (s *Service) checkReferences(userID, subCategoryID uuid.UUID, storeCode string) error {
	userExists, err := s.repo.UserExists(userID)
	if err != nil {
		return internal.NewUnavailableError(storeCode, err)
	}
	if !userExists {
		return internal.NewNotFoundError("", "Usuário não encontrado")
	}

	subCategoryExists, err := s.repo.SubCategoryExists(subCategoryID)
	if err != nil {
		return internal.NewUnavailableError(storeCode, err)
	}
	if !subCategoryExists {
		return internal.NewNotFoundError("", "Subcategoria não encontrada")
	}

	return nil
}

// reconcilePayment keeps IsPaid and PaidAt consistent: a set PaidAt must
// not be in the future and forces IsPaid true; an explicit IsPaid without
// PaidAt stamps now; neither means unpaid.
func (s *Service) reconcilePayment(paidAt *time.Time, isPaid bool) (*time.Time, bool, error) {
	now := s.now()

	if paidAt != nil && paidAt.After(now) {
		return nil, false, internal.NewValidationError("", "PaidAt não pode conter uma data futura")
	}

	if isPaid && paidAt == nil {
		paidAt = &now
	}

	return paidAt, paidAt != nil, nil
}
