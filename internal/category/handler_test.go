package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/expensecontrol/api/internal/category"
	categoryPostgres "github.com/expensecontrol/api/internal/category/postgres"
	"github.com/expensecontrol/api/internal/subcategory"
	"github.com/expensecontrol/api/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    category.RepositoryAPI
		service *category.Service
		handler *category.Handler
		router  *chi.Mux
	)

	doJSON := func(method, target, body string) *httptest.ResponseRecorder {
		var reader *strings.Reader
		if body == "" {
			reader = strings.NewReader("{}")
		} else {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, target, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		// subcategories table backs the nested children of GET /categories/{id}
		err = db.AutoMigrate(&category.Category{}, &subcategory.SubCategory{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, slogger)
		handler = category.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/categories", handler.Get)
		router.Post("/categories", handler.Post)
		router.Get("/categories/{id}", handler.GetByID)
		router.Put("/categories/{id}", handler.Put)
		router.Delete("/categories/{id}", handler.Delete)
	})

	It("should create a category and wrap it in the envelope", func() {
		w := doJSON(http.MethodPost, "/categories", `{"name":"alimentação"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var env struct {
			Result category.CategoryResponse `json:"result"`
			Errors []string                  `json:"errors"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Errors).To(BeEmpty())
		Expect(env.Result.Name).To(Equal("Alimentação"))
	})

	It("should answer a duplicate create with a coded 409 envelope", func() {
		Expect(doJSON(http.MethodPost, "/categories", `{"name":"Alimentação"}`).Code).To(Equal(http.StatusCreated))

		w := doJSON(http.MethodPost, "/categories", `{"name":"ALIMENTAÇÃO"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Result).To(BeNil())
		Expect(env.Errors).To(ConsistOf("01x06 - Já existe uma categoria com esse nome"))
	})

	It("should reject a malformed id before touching the store", func() {
		w := doJSON(http.MethodGet, "/categories/not-a-uuid", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Errors).To(ConsistOf("Id inválido"))
	})

	It("should answer a missing category with a coded 404 envelope", func() {
		w := doJSON(http.MethodGet, "/categories/6a2f43f1-56b0-4f21-9c21-000000000000", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Errors).To(ConsistOf("01x03 - Categoria não encontrada"))
	})

	It("should reject an out-of-range pageSize", func() {
		w := doJSON(http.MethodGet, "/categories?pageSize=500", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Errors).To(ConsistOf("O parâmetro pageSize deve estar entre 1 e 100"))
	})

	It("should list with pagination metadata", func() {
		Expect(doJSON(http.MethodPost, "/categories", `{"name":"Alimentação"}`).Code).To(Equal(http.StatusCreated))
		Expect(doJSON(http.MethodPost, "/categories", `{"name":"Transporte"}`).Code).To(Equal(http.StatusCreated))

		w := doJSON(http.MethodGet, "/categories?page=1&pageSize=1", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var env struct {
			Result category.PagedCategoriesResponse `json:"result"`
			Errors []string                         `json:"errors"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Result.Total).To(Equal(int64(2)))
		Expect(env.Result.Result).To(HaveLen(1))
		Expect(env.Result.PageSize).To(Equal(1))
	})

	It("should delete and then 404 on a second delete", func() {
		created := doJSON(http.MethodPost, "/categories", `{"name":"Alimentação"}`)
		var env struct {
			Result category.CategoryResponse `json:"result"`
		}
		Expect(json.NewDecoder(created.Body).Decode(&env)).To(Succeed())

		target := "/categories/" + env.Result.ID.String()
		Expect(doJSON(http.MethodDelete, target, "").Code).To(Equal(http.StatusNoContent))
		Expect(doJSON(http.MethodDelete, target, "").Code).To(Equal(http.StatusNotFound))
	})
})
