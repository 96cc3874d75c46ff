package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/expensecontrol/api/internal/category"
	"github.com/expensecontrol/api/internal/expense"
	"github.com/expensecontrol/api/internal/report"
	"github.com/expensecontrol/api/internal/subcategory"
	"github.com/expensecontrol/api/internal/transport/middleware"
	"github.com/expensecontrol/api/internal/transport/swagger"
	"github.com/expensecontrol/api/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, categoryHandler *category.Handler, subCategoryHandler *subcategory.Handler, userHandler *user.Handler, expenseHandler *expense.Handler, reportHandler *report.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/v1", func(r chi.Router) {
		r.Route("/categories", func(cr chi.Router) {
			cr.Get("/", categoryHandler.Get)
			cr.Post("/", categoryHandler.Post)
			cr.Get("/{id}", categoryHandler.GetByID)
			cr.Put("/{id}", categoryHandler.Put)
			cr.Patch("/{id}", categoryHandler.Patch)
			cr.Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/subcategories", func(sr chi.Router) {
			sr.Get("/", subCategoryHandler.Get)
			sr.Post("/", subCategoryHandler.Post)
			sr.Get("/{id}", subCategoryHandler.GetByID)
			sr.Put("/{id}", subCategoryHandler.Put)
			sr.Patch("/{id}", subCategoryHandler.Patch)
			sr.Delete("/{id}", subCategoryHandler.Delete)
		})

		r.Route("/users", func(ur chi.Router) {
			// registered before /{id} so "email" is never parsed as an id
			ur.Post("/email", reportHandler.SendReport)

			ur.Get("/", userHandler.Get)
			ur.Post("/", userHandler.Post)
			ur.Get("/{id}", userHandler.GetByID)
			ur.Put("/{id}", userHandler.Put)
			ur.Patch("/{id}", userHandler.Patch)
			ur.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/expenses", func(er chi.Router) {
			er.Get("/", expenseHandler.Get)
			er.Post("/", expenseHandler.Post)
			er.Get("/{id}", expenseHandler.GetByID)
			er.Put("/{id}", expenseHandler.Put)
			er.Delete("/{id}", expenseHandler.Delete)
		})
	})
}
