package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/report"
)

const attachmentName = "relatorio.xlsx"

// Client sends transactional email through the Brevo SMTP API.
type Client struct {
	apiURL    string
	apiKey    string
	fromName  string
	fromEmail string
	logger    *slog.Logger

	httpClient *http.Client
}

func NewClient(cfg internal.EmailConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		fromName:   cfg.FromName,
		fromEmail:  cfg.FromEmail,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type attachment struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type sendEmailRequest struct {
	Sender      party        `json:"sender"`
	To          []party      `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
	Attachment  []attachment `json:"attachment"`
}

// SendEmail dispatches the base64-encoded spreadsheet as an attachment.
// A non-2xx provider response is not an error: the status and body come
// back in the SendResult so the caller can surface them as-is. The error
// return is reserved for transport failures.
func (c *Client) SendEmail(ctx context.Context, toName, toEmail, base64Document string) (*report.SendResult, error) {
	payload := sendEmailRequest{
		Sender: party{Email: c.fromEmail, Name: c.fromName},
		To:     []party{{Email: toEmail, Name: toName}},
		Subject: fmt.Sprintf("relatorio de gasto customizado %s", toName),
		HTMLContent: fmt.Sprintf(
			"<p><strong>Olá %s, tudo bem ?.</strong></p> <br /><p>Segue em anexo o relatório solicitado</p>",
			toName),
		Attachment: []attachment{{Content: base64Document, Name: attachmentName}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("email provider rejected send",
			"status_code", resp.StatusCode,
			"to_email", toEmail)
		return &report.SendResult{
			Success:    false,
			Message:    string(respBody),
			StatusCode: resp.StatusCode,
		}, nil
	}

	c.logger.Info("email dispatched",
		"status_code", resp.StatusCode,
		"to_email", toEmail)

	return &report.SendResult{
		Success:    true,
		Message:    "Email Enviado com sucesso",
		StatusCode: resp.StatusCode,
	}, nil
}
