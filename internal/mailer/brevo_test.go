package mailer_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/expensecontrol/api/internal"
	"github.com/expensecontrol/api/internal/mailer"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBrevoMailer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Brevo Mailer Suite")
}

var _ = Describe("Brevo Client", func() {
	var (
		logger *slog.Logger
		server *httptest.Server

		gotHeaders http.Header
		gotBody    map[string]any
		respStatus int
		respBody   string
	)

	newClient := func() *mailer.Client {
		cfg := internal.EmailConfig{
			APIURL:    server.URL,
			APIKey:    "test-api-key",
			FromName:  "Expense Control",
			FromEmail: "no-reply@expensecontrol.local",
			Timeout:   5 * time.Second,
		}
		return mailer.NewClient(cfg, logger)
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		respStatus = http.StatusCreated
		respBody = `{"messageId":"<202506150001.123@smtp-relay>"}`
		gotHeaders = nil
		gotBody = nil

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeaders = r.Header.Clone()
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)
			w.WriteHeader(respStatus)
			_, _ = w.Write([]byte(respBody))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("SendEmail", func() {
		It("should authenticate with the api-key header", func() {
			_, err := newClient().SendEmail(context.Background(), "Maria", "maria@foo.com", "ZG9j")
			Expect(err).NotTo(HaveOccurred())
			Expect(gotHeaders.Get("api-key")).To(Equal("test-api-key"))
			Expect(gotHeaders.Get("Content-Type")).To(Equal("application/json"))
		})

		It("should build the payload with sender, recipient, subject and attachment", func() {
			_, err := newClient().SendEmail(context.Background(), "Maria", "maria@foo.com", "ZG9j")
			Expect(err).NotTo(HaveOccurred())

			sender := gotBody["sender"].(map[string]any)
			Expect(sender["email"]).To(Equal("no-reply@expensecontrol.local"))
			Expect(sender["name"]).To(Equal("Expense Control"))

			to := gotBody["to"].([]any)
			Expect(to).To(HaveLen(1))
			Expect(to[0].(map[string]any)["email"]).To(Equal("maria@foo.com"))
			Expect(to[0].(map[string]any)["name"]).To(Equal("Maria"))

			Expect(gotBody["subject"]).To(Equal("relatorio de gasto customizado Maria"))
			Expect(gotBody["htmlContent"]).To(ContainSubstring("Olá Maria"))

			attachments := gotBody["attachment"].([]any)
			Expect(attachments).To(HaveLen(1))
			Expect(attachments[0].(map[string]any)["content"]).To(Equal("ZG9j"))
			Expect(attachments[0].(map[string]any)["name"]).To(Equal("relatorio.xlsx"))
		})

		It("should report success with the provider status", func() {
			result, err := newClient().SendEmail(context.Background(), "Maria", "maria@foo.com", "ZG9j")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.Message).To(Equal("Email Enviado com sucesso"))
			Expect(result.StatusCode).To(Equal(http.StatusCreated))
		})

		It("should pass a provider rejection through without erroring", func() {
			respStatus = http.StatusUnauthorized
			respBody = `{"code":"unauthorized","message":"Key not found"}`

			result, err := newClient().SendEmail(context.Background(), "Maria", "maria@foo.com", "ZG9j")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeFalse())
			Expect(result.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(result.Message).To(Equal(respBody))
		})

		It("should return an error when the provider is unreachable", func() {
			server.Close()

			result, err := newClient().SendEmail(context.Background(), "Maria", "maria@foo.com", "ZG9j")
			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})
})
