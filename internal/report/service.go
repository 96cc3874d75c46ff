package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/expense"
)

// ExpenseSource resolves the report filter against the store, reusing the
// same predicate composition as expense listing.
type ExpenseSource interface {
	FindMatching(f expense.ReportFilter, now time.Time) ([]*expense.Expense, error)
}

// Sender dispatches the encoded document through the email provider. The
// error return is reserved for transport faults; provider rejections come
// back as an unsuccessful SendResult.
type Sender interface {
	SendEmail(ctx context.Context, toName, toEmail, base64Document string) (*SendResult, error)
}

type Service struct {
	source ExpenseSource
	sender Sender
	logger *slog.Logger
	now    func() time.Time
}

func NewService(source ExpenseSource, sender Sender, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		sender: sender,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source used for lateness, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SendReport runs the filter, builds the spreadsheet and dispatches it.
// An empty matching set is a NotFound: there is nothing to report on, no
// document is generated and the sender is never invoked. Dispatch happens
// synchronously in the calling request and is never retried.
func (s *Service) SendReport(ctx context.Context, dto SendReportDTO) (*SendResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	expenses, err := s.source.FindMatching(dto.filter(), s.now())
	if err != nil {
		s.logger.Error("failed to resolve report filter", "error", err)
		return nil, internal.NewUnavailableError("02x21", err)
	}

	if len(expenses) == 0 {
		return nil, internal.NewNotFoundError("02x20", "Não há informações para gerar relatório com este filtro")
	}

	document, totalAmount, err := buildWorkbook(expenses)
	if err != nil {
		s.logger.Error("failed to build report workbook", "error", err)
		return nil, internal.NewInternalError("02x22", err)
	}

	s.logger.Info("report generated",
		"rows", len(expenses),
		"total_amount", totalAmount,
		"to_email", dto.ToEmail)

	result, err := s.sender.SendEmail(ctx, dto.ToName, dto.ToEmail, document)
	if err != nil {
		s.logger.Error("failed to reach email provider", "error", err)
		return nil, internal.NewInternalError("02x22", err)
	}

	if !result.Success {
		// surface the provider's status and message verbatim, once
		return nil, internal.NewExternalError(result.StatusCode, result.Message)
	}

	s.logger.Info("report dispatched", "to_email", dto.ToEmail, "status_code", result.StatusCode)
	return result, nil
}
