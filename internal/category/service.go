package category

import (
	"log/slog"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/core/common/strutil"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	List(limit, offset int) ([]*Category, error)
	Count() (int64, error)
	GetByID(id uuid.UUID) (*Category, error)
	ExistsByName(name string, excludeID uuid.UUID) (bool, error)
	ListSubCategories(categoryID uuid.UUID) ([]SubCategorySummary, error)
	Create(category *Category) error
	Update(category *Category) error
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

func (s *Service) Get(page, pageSize int) (*PagedCategoriesResponse, error) {
	total, err := s.repo.Count()
	if err != nil {
		s.logger.Error("failed to count categories", "error", err)
		return nil, internal.NewUnavailableError("01x01", err)
	}

	categories, err := s.repo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, internal.NewUnavailableError("01x01", err)
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, toResponse(c))
	}

	return &PagedCategoriesResponse{
		Result:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) GetByID(id uuid.UUID) (*CategoryDetailResponse, error) {
	cat, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return nil, internal.NewUnavailableError("01x04", err)
	}
	if cat == nil {
		return nil, internal.NewNotFoundError("01x03", "Categoria não encontrada")
	}

	children, err := s.repo.ListSubCategories(id)
	if err != nil {
		s.logger.Error("failed to list subcategories of category", "error", err, "category_id", id)
		return nil, internal.NewUnavailableError("01x04", err)
	}

	return &CategoryDetailResponse{
		ID:            cat.ID,
		Name:          cat.Name,
		Description:   cat.Description,
		SubCategories: children,
	}, nil
}

func (s *Service) Create(dto PostCategoryDTO) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strutil.SentenceCase(dto.Name)

	taken, err := s.repo.ExistsByName(name, uuid.Nil)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err)
		return nil, internal.NewUnavailableError("01x05", err)
	}
	if taken {
		return nil, internal.NewConflictError("01x06", "Já existe uma categoria com esse nome")
	}

	cat := newCategory(name, dto.Description)
	if err := s.repo.Create(cat); err != nil {
		return nil, s.translateWriteError(err, "01x06", "Já existe uma categoria com esse nome", "01x05")
	}

	s.logger.Info("category created", "category_id", cat.ID, "name", cat.Name)

	resp := toResponse(cat)
	return &resp, nil
}

func (s *Service) Update(id uuid.UUID, dto PutCategoryDTO) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("01x09", err)
	}
	if cat == nil {
		return nil, internal.NewNotFoundError("01x10", "Categoria não encontrada")
	}

	name := strutil.SentenceCase(dto.Name)

	taken, err := s.repo.ExistsByName(name, id)
	if err != nil {
		return nil, internal.NewUnavailableError("01x09", err)
	}
	if taken {
		return nil, internal.NewConflictError("01x11", "Já existe uma categoria com esse nome")
	}

	cat.Name = name
	cat.Description = dto.Description

	if err := s.repo.Update(cat); err != nil {
		return nil, s.translateWriteError(err, "01x11", "Já existe uma categoria com esse nome", "01x09")
	}

	resp := toResponse(cat)
	return &resp, nil
}

func (s *Service) Patch(id uuid.UUID, dto PatchCategoryDTO) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("01x12", err)
	}
	if cat == nil {
		return nil, internal.NewNotFoundError("01x13", "Categoria não encontrada")
	}

	if dto.Name != nil {
		name := strutil.SentenceCase(*dto.Name)

		taken, err := s.repo.ExistsByName(name, id)
		if err != nil {
			return nil, internal.NewUnavailableError("01x12", err)
		}
		if taken {
			return nil, internal.NewConflictError("01x14", "Já existe uma categoria com esse nome")
		}
		cat.Name = name
	}

	if dto.Description != nil {
		cat.Description = dto.Description
	}

	if err := s.repo.Update(cat); err != nil {
		return nil, s.translateWriteError(err, "01x14", "Já existe uma categoria com esse nome", "01x12")
	}

	resp := toResponse(cat)
	return &resp, nil
}

func (s *Service) Delete(id uuid.UUID) error {
	cat, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewUnavailableError("01x16", err)
	}
	if cat == nil {
		return internal.NewNotFoundError("01x17", "Categoria não encontrada")
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return internal.NewUnavailableError("01x16", err)
	}

	s.logger.Info("category deleted", "category_id", id)
	return nil
}

// translateWriteError maps a duplicate-key commit to Conflict: the unique
// constraint is the final authority when two Posts race past the pre-check.
func (s *Service) translateWriteError(err error, conflictCode, conflictMsg, storeCode string) error {
	if internal.IsDuplicateKey(err) {
		return internal.NewConflictError(conflictCode, conflictMsg)
	}
	s.logger.Error("category write failed", "error", err)
	return internal.NewUnavailableError(storeCode, err)
}
