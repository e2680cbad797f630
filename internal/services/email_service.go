package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"github.com/hostelhq/hostel-api/internal/config"
	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

// SendPaymentReceipt emails a tenant after a successful payment.
func (s *EmailService) SendPaymentReceipt(ctx context.Context, user *models.User, payment *models.Payment) error {
	data := struct {
		Name        string
		Amount      int64
		PeriodLabel string
		Reference   string
		ChargeName  string
	}{
		Name:        user.FullName,
		Amount:      payment.Amount,
		PeriodLabel: payment.PeriodLabel,
		Reference:   payment.Reference,
		ChargeName:  payment.Charge.Name,
	}

	body, err := s.renderTemplate("payment_receipt.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Payment received", body)
}

// ArrearsLine is one outstanding charge in a reminder email.
type ArrearsLine struct {
	ChargeName string
	Periods    int
	Amount     int64
}

// SendArrearsReminder emails a tenant a summary of their outstanding
// periods across charges.
func (s *EmailService) SendArrearsReminder(ctx context.Context, user *models.User, lines []ArrearsLine, total int64) error {
	data := struct {
		Name  string
		Lines []ArrearsLine
		Total int64
	}{
		Name:  user.FullName,
		Lines: lines,
		Total: total,
	}

	body, err := s.renderTemplate("arrears_reminder.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Outstanding rent and charges", body)
}

func (s *EmailService) send(to, subject, html string) error {
	if s.config.ResendAPIKey == "" {
		logger.Warn("Email skipped: RESEND_API_KEY not configured", "to", to, "subject", subject)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	_, err := s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", to, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: %s", to, subject))
	return nil
}

func (s *EmailService) renderTemplate(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
