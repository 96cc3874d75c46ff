package report

import (
	"strings"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/expense"
	"github.com/google/uuid"
)

// SendReportDTO is the request for the report-by-email operation. The
// userId and subCategoryId lists restrict with IN semantics when non-empty.
type SendReportDTO struct {
	ToName         string      `json:"toName"`
	ToEmail        string      `json:"toEmail"`
	UserIDs        []uuid.UUID `json:"userId,omitempty"`
	SubCategoryIDs []uuid.UUID `json:"subCategoryId,omitempty"`
	IsPaid         *bool       `json:"isPaid,omitempty"`
	LatePayment    *bool       `json:"latePayment,omitempty"`
}

func (dto SendReportDTO) Validate() error {
	if strings.TrimSpace(dto.ToName) == "" {
		return internal.NewValidationError("", "O nome do destinatário é obrigatório")
	}
	email := strings.TrimSpace(dto.ToEmail)
	if email == "" || !strings.Contains(email, "@") {
		return internal.NewValidationError("", "O E-mail do destinatário é inválido")
	}
	return nil
}

func (dto SendReportDTO) filter() expense.ReportFilter {
	return expense.ReportFilter{
		UserIDs:        dto.UserIDs,
		SubCategoryIDs: dto.SubCategoryIDs,
		IsPaid:         dto.IsPaid,
		LatePayment:    dto.LatePayment,
	}
}

// SendResult is the dispatcher outcome surfaced to the caller. On provider
// failure Message and StatusCode carry the provider's response verbatim.
type SendResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}
