package subcategory

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
	Get(page, pageSize int) (*PagedSubCategoriesResponse, error)
	GetByID(id uuid.UUID, isPaid *bool) (*SubCategoryDetailResponse, error)
	Create(dto PostSubCategoryDTO) (*SubCategoryResponse, error)
	Update(id uuid.UUID, dto PutSubCategoryDTO) (*SubCategoryResponse, error)
	Patch(id uuid.UUID, dto PatchSubCategoryDTO) (*SubCategoryResponse, error)
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

	page, err := h.Service.Get(p.Page, p.PageSize)
	if err != nil {
		h.HandleServiceError(w, err, "03x02")
		return
	}

	h.WriteResult(w, http.StatusOK, page)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	isPaid, appErr := transport.ParseOptionalBool(r, "isPaid")
	if appErr != nil {
		h.WriteErrors(w, appErr.StatusCode, appErr.Envelope())
		return
	}

	sc, err := h.Service.GetByID(id, isPaid)
	if err != nil {
		h.HandleServiceError(w, err, "03x04")
		return
	}

	h.WriteResult(w, http.StatusOK, sc)
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	var dto PostSubCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteErrors(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	sc, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err, "03x05")
		return
	}

	h.WriteResult(w, http.StatusCreated, sc)
}

func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto PutSubCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteErrors(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	sc, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err, "03x09")
		return
	}

	h.WriteResult(w, http.StatusOK, sc)
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto PatchSubCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteErrors(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	sc, err := h.Service.Patch(id, dto)
	if err != nil {
		h.HandleServiceError(w, err, "03x13")
		return
	}

	h.WriteResult(w, http.StatusOK, sc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err, "03x17")
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
