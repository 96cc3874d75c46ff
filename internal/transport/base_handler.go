package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/pkg/logger"
)

// Envelope is the uniform response shape: every endpoint answers with the
// payload under result or a list of human-readable messages under errors,
// never both.
type Envelope struct {
	Result any      `json:"result"`
	Errors []string `json:"errors"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteResult writes a successful envelope.
func (h *BaseHandler) WriteResult(w http.ResponseWriter, status int, result any) {
	h.writeEnvelope(w, status, Envelope{Result: result, Errors: []string{}})
}

// WriteErrors writes a failed envelope with one or more messages.
func (h *BaseHandler) WriteErrors(w http.ResponseWriter, status int, messages ...string) {
	h.writeEnvelope(w, status, Envelope{Errors: messages})
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	if env.Errors == nil {
		env.Errors = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// HandleServiceError maps a service error onto the envelope. Expected
// conditions arrive as *internal.AppError and keep their own status and
// diagnostic code; anything else is an unanticipated fault reported as 500
// under the handler's fallback code with no internal detail leaked.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error, fallbackCode string) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.Type == internal.ErrorTypeInternal || appErr.Type == internal.ErrorTypeUnavailable {
			h.Logger.Error("service failure", "code", appErr.Code, "error", appErr)
		}
		h.WriteErrors(w, appErr.StatusCode, appErr.Envelope())
		return
	}

	h.Logger.Error("unhandled service error", "code", fallbackCode, "error", err)
	h.WriteErrors(w, http.StatusInternalServerError, fallbackCode+" - Erro interno de servidor")
}

// Pagination carries the validated page window of a list request.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// ParsePagination reads page and pageSize query parameters. Absent values
// fall back to page 1 / size 25; present but out-of-range values are a
// caller validation error.
func ParsePagination(r *http.Request) (Pagination, *internal.AppError) {
	p := Pagination{Page: 1, PageSize: defaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return p, internal.NewValidationError("", "O parâmetro page deve ser maior ou igual a 1")
		}
		p.Page = v
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxPageSize {
			return p, internal.NewValidationError("", "O parâmetro pageSize deve estar entre 1 e 100")
		}
		p.PageSize = v
	}

	return p, nil
}

// ParseOptionalBool reads an optional boolean query parameter, returning
// nil when the parameter is absent.
func ParseOptionalBool(r *http.Request, name string) (*bool, *internal.AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, internal.NewValidationError("", "O parâmetro "+name+" deve ser true ou false")
	}
	return &v, nil
}
