package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/stridewear/storefront-api/internal/core/ports"
)

// EmailConfig holds email service configuration
type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	CompanyName    string
}

// EmailService implements the EmailService interface
type EmailService struct {
	config *EmailConfig
	logger *logrus.Logger
	client *sendgrid.Client
	tmpl   *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(config *EmailConfig, logger *logrus.Logger) (ports.EmailService, error) {
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	tmpl, err := template.ParseFiles("templates/email/otp.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load OTP email template: %w", err)
	}

	return &EmailService{
		config: config,
		logger: logger,
		client: client,
		tmpl:   tmpl,
	}, nil
}

// OTPEmailData holds data for the one-time code template
type OTPEmailData struct {
	CompanyName string
	Code        string
	Minutes     int
}

// SendOTPEmail delivers a one-time code to the recipient.
func (e *EmailService) SendOTPEmail(ctx context.Context, toEmail, code string, ttl time.Duration) error {
	data := OTPEmailData{
		CompanyName: e.config.CompanyName,
		Code:        code,
		Minutes:     int(ttl.Minutes()),
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render OTP email: %w", err)
	}

	subject := fmt.Sprintf("Your %s verification code", e.config.CompanyName)
	return e.sendEmail(toEmail, subject, buf.String())
}

// sendEmail sends an email using SendGrid
func (e *EmailService) sendEmail(to, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)

	response, err := e.client.Send(message)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
			"error":   err,
		}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"to":          to,
		"subject":     subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")

	return nil
}
