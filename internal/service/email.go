package service

import (
	"context"
	"fmt"
	"strings"

	"librarium-backend/internal/config"
	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	cfg config.EmailConfig
}

// NewEmailService sends through SendGrid. When email is disabled in config
// the service logs what it would have sent and reports success.
func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) SendOverdueReminder(ctx context.Context, to, name string, loans []domain.OverdueLoan) error {
	if len(loans) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Overdue reminder: %d material(s) past due", len(loans))

	var plain, html strings.Builder
	plain.WriteString(fmt.Sprintf("Hello %s,\n\nThe following materials are overdue:\n", name))
	html.WriteString(fmt.Sprintf("<html><body><p>Hello %s,</p><p>The following materials are overdue:</p><ul>", name))
	for _, l := range loans {
		plain.WriteString(fmt.Sprintf("- %s, due %s, %d day(s) overdue, accrued fee %s\n",
			l.MaterialName, l.ReturnDate.Format("2006-01-02"), l.OverdueDays, l.LateFee.StringFixed(2)))
		html.WriteString(fmt.Sprintf("<li><strong>%s</strong>, due %s, %d day(s) overdue, accrued fee %s</li>",
			l.MaterialName, l.ReturnDate.Format("2006-01-02"), l.OverdueDays, l.LateFee.StringFixed(2)))
	}
	plain.WriteString("\nPlease return them as soon as possible.\n")
	html.WriteString("</ul><p>Please return them as soon as possible.</p></body></html>")

	return s.send(to, name, subject, plain.String(), html.String())
}

func (s *emailService) SendInvoiceNotice(ctx context.Context, to, name string, invoice *domain.Invoice) error {
	subject := fmt.Sprintf("Invoice #%d: %s", invoice.ID, invoice.Reason)
	plain := fmt.Sprintf("Hello %s,\n\nAn invoice of %s has been issued to you.\nReason: %s\nDate: %s\n",
		name, invoice.Amount.StringFixed(2), invoice.Reason, invoice.InvoiceDate.Format("2006-01-02"))
	html := fmt.Sprintf(`<html><body><p>Hello %s,</p><p>An invoice of <strong>%s</strong> has been issued to you.</p><p>Reason: %s<br>Date: %s</p></body></html>`,
		name, invoice.Amount.StringFixed(2), invoice.Reason, invoice.InvoiceDate.Format("2006-01-02"))

	return s.send(to, name, subject, plain, html)
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	if !s.cfg.Enabled {
		logger.Info("Email disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.From)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.cfg.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Debug("Email sent", "to", to, "subject", subject)
	return nil
}
