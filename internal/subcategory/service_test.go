package subcategory_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/subcategory"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSubCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SubCategory Service Suite")
}

// MockRepository implements subcategory.RepositoryAPI for testing
type MockRepository struct {
	subCategories map[uuid.UUID]*subcategory.SubCategory
	categories    map[uuid.UUID]bool
	expenses      map[uuid.UUID][]subcategory.ExpenseSummary
	shouldFail    bool
	failError     error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		subCategories: make(map[uuid.UUID]*subcategory.SubCategory),
		categories:    make(map[uuid.UUID]bool),
		expenses:      make(map[uuid.UUID][]subcategory.ExpenseSummary),
	}
}

func (m *MockRepository) List(limit, offset int) ([]*subcategory.SubCategory, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*subcategory.SubCategory
	for _, sc := range m.subCategories {
		result = append(result, sc)
	}
	if offset >= len(result) {
		return nil, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (m *MockRepository) Count() (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return int64(len(m.subCategories)), nil
}

func (m *MockRepository) GetByID(id uuid.UUID) (*subcategory.SubCategory, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.subCategories[id], nil
}

func (m *MockRepository) ExistsByNameInCategory(name string, categoryID, excludeID uuid.UUID) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	for _, sc := range m.subCategories {
		if sc.Name == name && sc.CategoryID == categoryID && sc.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) CategoryExists(categoryID uuid.UUID) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.categories[categoryID], nil
}

func (m *MockRepository) ListExpenses(subCategoryID uuid.UUID, isPaid *bool) ([]subcategory.ExpenseSummary, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []subcategory.ExpenseSummary
	for _, e := range m.expenses[subCategoryID] {
		if isPaid != nil && e.IsPaid != *isPaid {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *MockRepository) Create(sc *subcategory.SubCategory) error {
	if m.shouldFail {
		return m.failError
	}
	m.subCategories[sc.ID] = sc
	return nil
}

func (m *MockRepository) Update(sc *subcategory.SubCategory) error {
	if m.shouldFail {
		return m.failError
	}
	m.subCategories[sc.ID] = sc
	return nil
}

func (m *MockRepository) Delete(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.subCategories, id)
	return nil
}

func (m *MockRepository) AddCategory(id uuid.UUID) {
	m.categories[id] = true
}

var _ = Describe("SubCategory Service", func() {
	var (
		mockRepo   *MockRepository
		service    *subcategory.Service
		logger     *slog.Logger
		categoryID uuid.UUID
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = subcategory.NewService(mockRepo, logger)

		categoryID = uuid.New()
		mockRepo.AddCategory(categoryID)
	})

	Describe("Create", func() {
		It("should title-case the name", func() {
			resp, err := service.Create(subcategory.PostSubCategoryDTO{Name: "cartão de crédito", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Name).To(Equal("Cartão De Crédito"))
		})

		It("should reject a missing category id", func() {
			_, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood"})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should return not found when the category does not exist", func() {
			_, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: uuid.New()})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
			Expect(appErr.Envelope()).To(Equal("03x07 - Não existe uma categoria com esse Id para ser adcionada há uma subcategoria"))
		})

		It("should conflict on a duplicate name within the same category", func() {
			_, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(subcategory.PostSubCategoryDTO{Name: "ifood", CategoryID: categoryID})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
			Expect(appErr.Envelope()).To(Equal("03x06 - Já existe uma subcategoria com esse nome nesta categoria"))
		})

		It("should allow the same name under a different category", func() {
			otherCategory := uuid.New()
			mockRepo.AddCategory(otherCategory)

			_, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: otherCategory})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("GetByID", func() {
		It("should nest expenses filtered by isPaid when present", func() {
			created, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())

			mockRepo.expenses[created.ID] = []subcategory.ExpenseSummary{
				{ID: uuid.New(), Description: "Jantar", IsPaid: true},
				{ID: uuid.New(), Description: "Almoço", IsPaid: false},
			}

			unpaid := false
			detail, err := service.GetByID(created.ID, &unpaid)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Expenses).To(HaveLen(1))
			Expect(detail.Expenses[0].Description).To(Equal("Almoço"))
		})

		It("should return not found for an unknown id", func() {
			_, err := service.GetByID(uuid.New(), nil)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Envelope()).To(Equal("03x03 - Subcategoria não encontrada"))
		})
	})

	Describe("Update", func() {
		It("should reject moving to a nonexistent category", func() {
			created, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(created.ID, subcategory.PutSubCategoryDTO{Name: "Ifood", CategoryID: uuid.New()})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})

		It("should allow keeping the same name on the same subcategory", func() {
			created, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(created.ID, subcategory.PutSubCategoryDTO{Name: "ifood", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Ifood"))
		})
	})

	Describe("Patch", func() {
		It("should conflict when moving into a category that already has the name", func() {
			otherCategory := uuid.New()
			mockRepo.AddCategory(otherCategory)

			_, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: otherCategory})
			Expect(err).NotTo(HaveOccurred())
			created, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Patch(created.ID, subcategory.PatchSubCategoryDTO{CategoryID: &otherCategory})
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("should leave omitted fields untouched", func() {
			desc := "Pedidos pelo aplicativo"
			created, err := service.Create(subcategory.PostSubCategoryDTO{Name: "Ifood", Description: &desc, CategoryID: categoryID})
			Expect(err).NotTo(HaveOccurred())

			name := "delivery"
			patched, err := service.Patch(created.ID, subcategory.PatchSubCategoryDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(patched.Name).To(Equal("Delivery"))
			Expect(patched.Description).To(HaveValue(Equal(desc)))
			Expect(patched.CategoryID).To(Equal(categoryID))
		})
	})

	Describe("Delete", func() {
		It("should return not found for an unknown id", func() {
			err := service.Delete(uuid.New())
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Envelope()).To(Equal("03x18 - Subcategoria não encontrada"))
		})
	})
})
