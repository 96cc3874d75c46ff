package subcategory

import (
	"log/slog"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/core/common/strutil"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	List(limit, offset int) ([]*SubCategory, error)
	Count() (int64, error)
	GetByID(id uuid.UUID) (*SubCategory, error)
	ExistsByNameInCategory(name string, categoryID, excludeID uuid.UUID) (bool, error)
	CategoryExists(categoryID uuid.UUID) (bool, error)
	ListExpenses(subCategoryID uuid.UUID, isPaid *bool) ([]ExpenseSummary, error)
	Create(subCategory *SubCategory) error
	Update(subCategory *SubCategory) error
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

func (s *Service) Get(page, pageSize int) (*PagedSubCategoriesResponse, error) {
	total, err := s.repo.Count()
	if err != nil {
		s.logger.Error("failed to count subcategories", "error", err)
		return nil, internal.NewUnavailableError("03x01", err)
	}

	subCategories, err := s.repo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("failed to list subcategories", "error", err)
		return nil, internal.NewUnavailableError("03x01", err)
	}

	responses := make([]SubCategoryResponse, 0, len(subCategories))
	for _, sc := range subCategories {
		responses = append(responses, toResponse(sc))
	}

	return &PagedSubCategoriesResponse{
		Result:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetByID returns the subcategory with its expenses nested; isPaid, when
// present, narrows the nested list.
func (s *Service) GetByID(id uuid.UUID, isPaid *bool) (*SubCategoryDetailResponse, error) {
	sc, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get subcategory", "error", err, "subcategory_id", id)
		return nil, internal.NewUnavailableError("03x04", err)
	}
	if sc == nil {
		return nil, internal.NewNotFoundError("03x03", "Subcategoria não encontrada")
	}

	expenses, err := s.repo.ListExpenses(id, isPaid)
	if err != nil {
		s.logger.Error("failed to list expenses of subcategory", "error", err, "subcategory_id", id)
		return nil, internal.NewUnavailableError("03x04", err)
	}

	return &SubCategoryDetailResponse{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		CategoryID:  sc.CategoryID,
		Expenses:    expenses,
	}, nil
}

func (s *Service) Create(dto PostSubCategoryDTO) (*SubCategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strutil.TitleCase(dto.Name)

	taken, err := s.repo.ExistsByNameInCategory(name, dto.CategoryID, uuid.Nil)
	if err != nil {
		return nil, internal.NewUnavailableError("03x05", err)
	}
	if taken {
		return nil, internal.NewConflictError("03x06", "Já existe uma subcategoria com esse nome nesta categoria")
	}

	catExists, err := s.repo.CategoryExists(dto.CategoryID)
	if err != nil {
		return nil, internal.NewUnavailableError("03x05", err)
	}
	if !catExists {
		return nil, internal.NewNotFoundError("03x07", "Não existe uma categoria com esse Id para ser adcionada há uma subcategoria")
	}

	sc := newSubCategory(name, dto.Description, dto.CategoryID)
	if err := s.repo.Create(sc); err != nil {
		return nil, s.translateWriteError(err, "03x06", "03x05")
	}

	s.logger.Info("subcategory created", "subcategory_id", sc.ID, "category_id", sc.CategoryID, "name", sc.Name)

	resp := toResponse(sc)
	return &resp, nil
}

func (s *Service) Update(id uuid.UUID, dto PutSubCategoryDTO) (*SubCategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("03x09", err)
	}
	if sc == nil {
		return nil, internal.NewNotFoundError("03x10", "Subcategoria não encontrada")
	}

	catExists, err := s.repo.CategoryExists(dto.CategoryID)
	if err != nil {
		return nil, internal.NewUnavailableError("03x09", err)
	}
	if !catExists {
		return nil, internal.NewNotFoundError("03x11", "Não existe uma categoria com esse Id para ser adcionada há uma subcategoria")
	}

	name := strutil.TitleCase(dto.Name)

	taken, err := s.repo.ExistsByNameInCategory(name, dto.CategoryID, id)
	if err != nil {
		return nil, internal.NewUnavailableError("03x09", err)
	}
	if taken {
		return nil, internal.NewConflictError("03x12", "Já existe uma subcategoria com esse nome nesta categoria")
	}

	sc.Name = name
	sc.Description = dto.Description
	sc.CategoryID = dto.CategoryID

	if err := s.repo.Update(sc); err != nil {
		return nil, s.translateWriteError(err, "03x12", "03x09")
	}

	resp := toResponse(sc)
	return &resp, nil
}

func (s *Service) Patch(id uuid.UUID, dto PatchSubCategoryDTO) (*SubCategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("03x13", err)
	}
	if sc == nil {
		return nil, internal.NewNotFoundError("03x14", "Subcategoria não encontrada")
	}

	if dto.CategoryID != nil {
		catExists, err := s.repo.CategoryExists(*dto.CategoryID)
		if err != nil {
			return nil, internal.NewUnavailableError("03x13", err)
		}
		if !catExists {
			return nil, internal.NewNotFoundError("03x15", "Não existe uma categoria com esse Id para ser adcionada há uma subcategoria")
		}
		sc.CategoryID = *dto.CategoryID
	}

	if dto.Name != nil {
		sc.Name = strutil.TitleCase(*dto.Name)
	}

	// re-validate uniqueness only when a uniqueness-sensitive field changed
	if dto.Name != nil || dto.CategoryID != nil {
		taken, err := s.repo.ExistsByNameInCategory(sc.Name, sc.CategoryID, id)
		if err != nil {
			return nil, internal.NewUnavailableError("03x13", err)
		}
		if taken {
			return nil, internal.NewConflictError("03x16", "Já existe uma subcategoria com esse nome nesta categoria")
		}
	}

	if dto.Description != nil {
		sc.Description = dto.Description
	}

	if err := s.repo.Update(sc); err != nil {
		return nil, s.translateWriteError(err, "03x16", "03x13")
	}

	resp := toResponse(sc)
	return &resp, nil
}

func (s *Service) Delete(id uuid.UUID) error {
	sc, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewUnavailableError("03x17", err)
	}
	if sc == nil {
		return internal.NewNotFoundError("03x18", "Subcategoria não encontrada")
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete subcategory", "error", err, "subcategory_id", id)
		return internal.NewUnavailableError("03x17", err)
	}

	s.logger.Info("subcategory deleted", "subcategory_id", id)
	return nil
}

func (s *Service) translateWriteError(err error, conflictCode, storeCode string) error {
	if internal.IsDuplicateKey(err) {
		return internal.NewConflictError(conflictCode, "Já existe uma subcategoria com esse nome nesta categoria")
	}
	s.logger.Error("subcategory write failed", "error", err)
	return internal.NewUnavailableError(storeCode, err)
}
