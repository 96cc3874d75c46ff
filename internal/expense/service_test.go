package expense_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/expense"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExpenseService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Service Suite")
}

// MockRepository implements expense.RepositoryAPI for testing
type MockRepository struct {
	expenses      map[uuid.UUID]*expense.Expense
	users         map[uuid.UUID]bool
	subCategories map[uuid.UUID]bool
	shouldFail    bool
	failError     error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		expenses:      make(map[uuid.UUID]*expense.Expense),
		users:         make(map[uuid.UUID]bool),
		subCategories: make(map[uuid.UUID]bool),
	}
}

func (m *MockRepository) Search(f expense.Filter, now time.Time, limit, offset int) ([]*expense.Expense, int64, float64, error) {
	if m.shouldFail {
		return nil, 0, 0, m.failError
	}

	var matched []*expense.Expense
	var totalAmount float64
	for _, e := range m.expenses {
		if f.UserID != nil && e.UserID != *f.UserID {
			continue
		}
		if f.SubCategoryID != nil && e.SubCategoryID != *f.SubCategoryID {
			continue
		}
		if f.IsPaid != nil && e.IsPaid != *f.IsPaid {
			continue
		}
		if f.LatePayment != nil {
			late := !e.IsPaid && e.DueDate.Before(now)
			if *f.LatePayment != late {
				continue
			}
		}
		matched = append(matched, e)
		totalAmount += e.Amount
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, totalAmount, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, totalAmount, nil
}

func (m *MockRepository) GetByID(id uuid.UUID) (*expense.Expense, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.expenses[id], nil
}

func (m *MockRepository) UserExists(id uuid.UUID) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.users[id], nil
}

func (m *MockRepository) SubCategoryExists(id uuid.UUID) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	return m.subCategories[id], nil
}

func (m *MockRepository) Create(e *expense.Expense) error {
	if m.shouldFail {
		return m.failError
	}
	m.expenses[e.ID] = e
	return nil
}

func (m *MockRepository) Update(e *expense.Expense) error {
	if m.shouldFail {
		return m.failError
	}
	m.expenses[e.ID] = e
	return nil
}

func (m *MockRepository) Delete(id uuid.UUID) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.expenses, id)
	return nil
}

var _ = Describe("Expense Service", func() {
	var (
		mockRepo      *MockRepository
		service       *expense.Service
		logger        *slog.Logger
		now           time.Time
		userID        uuid.UUID
		subCategoryID uuid.UUID
	)

	ptr := func(v float64) *float64 { return &v }
	timePtr := func(t time.Time) *time.Time { return &t }

	validDTO := func() expense.PostExpenseDTO {
		due := now.AddDate(0, 0, 7)
		return expense.PostExpenseDTO{
			Description:   "Jantar de sexta",
			Amount:        ptr(54.90),
			DueDate:       &due,
			UserID:        userID,
			SubCategoryID: subCategoryID,
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		service = expense.NewService(mockRepo, logger).WithClock(func() time.Time { return now })

		userID = uuid.New()
		subCategoryID = uuid.New()
		mockRepo.users[userID] = true
		mockRepo.subCategories[subCategoryID] = true
	})

	Describe("Create", func() {
		It("should reject a non-positive amount", func() {
			dto := validDTO()
			dto.Amount = ptr(0)

			_, err := service.Create(dto)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Message).To(Equal("O valor do custo deve ser maior que zero"))
		})

		It("should reject a future paid-at", func() {
			dto := validDTO()
			dto.PaidAt = timePtr(now.Add(time.Hour))

			_, err := service.Create(dto)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("PaidAt não pode conter uma data futura"))
		})

		It("should stamp now when is_paid is set without paid_at", func() {
			dto := validDTO()
			dto.IsPaid = true

			resp, err := service.Create(dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsPaid).To(BeTrue())
			Expect(resp.PaidAt).To(HaveValue(Equal(now)))
		})

		It("should force is_paid true when paid_at is set", func() {
			dto := validDTO()
			dto.PaidAt = timePtr(now.Add(-time.Hour))
			dto.IsPaid = false

			resp, err := service.Create(dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsPaid).To(BeTrue())
		})

		It("should leave the expense unpaid when neither field is set", func() {
			resp, err := service.Create(validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsPaid).To(BeFalse())
			Expect(resp.PaidAt).To(BeNil())
		})

		It("should return not found for an unknown user", func() {
			dto := validDTO()
			dto.UserID = uuid.New()

			_, err := service.Create(dto)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
			Expect(appErr.Message).To(Equal("Usuário não encontrado"))
		})

		It("should return not found for an unknown subcategory", func() {
			dto := validDTO()
			dto.SubCategoryID = uuid.New()

			_, err := service.Create(dto)
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Subcategoria não encontrada"))
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			// one paid, one late, one upcoming
			paid := validDTO()
			paid.PaidAt = timePtr(now.Add(-24 * time.Hour))
			_, err := service.Create(paid)
			Expect(err).NotTo(HaveOccurred())

			late := validDTO()
			late.Description = "Conta atrasada"
			late.Amount = ptr(200)
			late.DueDate = timePtr(now.AddDate(0, 0, -5))
			_, err = service.Create(late)
			Expect(err).NotTo(HaveOccurred())

			upcoming := validDTO()
			upcoming.Description = "Conta futura"
			upcoming.Amount = ptr(100)
			_, err = service.Create(upcoming)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should sum the amount of the whole filtered set", func() {
			page, err := service.Get(expense.Filter{}, 1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(3)))
			Expect(page.TotalAmount).To(BeNumerically("~", 354.90, 0.001))
			Expect(page.Result).To(HaveLen(2))
		})

		It("should restrict to late expenses when latePayment is true", func() {
			late := true
			page, err := service.Get(expense.Filter{LatePayment: &late}, 1, 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(1)))
			Expect(page.Result[0].Description).To(Equal("Conta atrasada"))
		})

		It("should restrict to paid-or-not-yet-due when latePayment is false", func() {
			late := false
			page, err := service.Get(expense.Filter{LatePayment: &late}, 1, 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(2)))
		})
	})

	Describe("GetByID", func() {
		It("should return not found for an unknown id", func() {
			_, err := service.GetByID(uuid.New())
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Envelope()).To(Equal("04x03 - Despesa não encontrada"))
		})
	})

	Describe("Update", func() {
		It("should re-run the paid-at reconciliation", func() {
			created, err := service.Create(validDTO())
			Expect(err).NotTo(HaveOccurred())

			due := now.AddDate(0, 0, 7)
			updated, err := service.Update(created.ID, expense.PutExpenseDTO{
				Description:   "Jantar de sexta",
				Amount:        ptr(54.90),
				DueDate:       &due,
				IsPaid:        true,
				UserID:        userID,
				SubCategoryID: subCategoryID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsPaid).To(BeTrue())
			Expect(updated.PaidAt).To(HaveValue(Equal(now)))
		})

		It("should clear the payment when the replacement omits it", func() {
			dto := validDTO()
			dto.IsPaid = true
			created, err := service.Create(dto)
			Expect(err).NotTo(HaveOccurred())

			due := now.AddDate(0, 0, 7)
			updated, err := service.Update(created.ID, expense.PutExpenseDTO{
				Description:   "Jantar de sexta",
				Amount:        ptr(54.90),
				DueDate:       &due,
				UserID:        userID,
				SubCategoryID: subCategoryID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsPaid).To(BeFalse())
			Expect(updated.PaidAt).To(BeNil())
		})
	})

	Describe("Delete", func() {
		It("should return not found for an unknown id", func() {
			err := service.Delete(uuid.New())
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})
})
