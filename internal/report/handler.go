package report

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/expensecontrol/api/internal/transport"
	"github.com/expensecontrol/api/pkg/logger"
)

type ServiceAPI interface {
	SendReport(ctx context.Context, dto SendReportDTO) (*SendResult, error)
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

// SendReport handles POST /users/email: filter, spreadsheet, dispatch.
func (h *Handler) SendReport(w http.ResponseWriter, r *http.Request) {
	var dto SendReportDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteErrors(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	result, err := h.Service.SendReport(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err, "02x22")
		return
	}

	h.WriteResult(w, http.StatusOK, result)
}
