package expense

import (
	"encoding/json"
	"net/http"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/transport"
	"github.com/expensecontrol/api/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	Get(f Filter, page, pageSize int) (*PagedExpensesResponse, error)
	GetByID(id uuid.UUID) (*ExpenseResponse, error)
	Create(dto PostExpenseDTO) (*ExpenseResponse, error)
	Update(id uuid.UUID, dto PutExpenseDTO) (*ExpenseResponse, error)
	Delete(id uuid.UUID) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, appErr := transport.ParsePagination(r)
	if appErr != nil {
		h.WriteErrors(w, appErr.StatusCode, appErr.Envelope())
		return
	}

	f, appErr := parseFilter(r)
	if appErr != nil {
		h.WriteErrors(w, appErr.StatusCode, appErr.Envelope())
		return
	}

	page, err := h.Service.Get(f, p.Page, p.PageSize)
	if err != nil {
		h.HandleServiceError(w, err, "04x02")
		return
	}

	h.WriteResult(w, http.StatusOK, page)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	e, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err, "04x05")
		return
	}

	h.WriteResult(w, http.StatusOK, e)
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	var dto PostExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteErrors(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	e, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err, "04x05")
		return
	}

	h.WriteResult(w, http.StatusCreated, e)
}

func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto PutExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteErrors(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	e, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err, "04x05")
		return
	}

	h.WriteResult(w, http.StatusOK, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err, "04x05")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseFilter(r *http.Request) (Filter, *internal.AppError) {
	var f Filter

	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, internal.NewValidationError("", "O parâmetro userId é inválido")
		}
		f.UserID = &id
	}

	if raw := r.URL.Query().Get("subCategoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, internal.NewValidationError("", "O parâmetro subCategoryId é inválido")
		}
		f.SubCategoryID = &id
	}

	isPaid, appErr := transport.ParseOptionalBool(r, "isPaid")
	if appErr != nil {
		return f, appErr
	}
	f.IsPaid = isPaid

	latePayment, appErr := transport.ParseOptionalBool(r, "latePayment")
	if appErr != nil {
		return f, appErr
	}
	f.LatePayment = latePayment

	return f, nil
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		appErr := internal.NewValidationError("", "Id inválido")
		h.WriteErrors(w, appErr.StatusCode, appErr.Envelope())
		return uuid.Nil, false
	}
	return id, true
}
