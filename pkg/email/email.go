package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email delivery of bills. The core only decides
// whether to offer sending; delivery failures surface as errors to the
// caller and never affect ledger state.
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// IsConfigured reports whether SMTP credentials are present. Sending is
// only offered when this is true and the invoice snapshot has an email.
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != "" && s.config.SMTPUsername != "" && s.config.SMTPPassword != ""
}

// SendBill sends the rendered bill text to a customer.
func (s *EmailService) SendBill(toEmail, toName, subject, billText string, invoiceID uint) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}
	if toEmail == "" {
		return fmt.Errorf("recipient email is required")
	}

	htmlContent, err := s.renderBillEmail(toName, billText, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(toEmail, subject, htmlContent)
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderBillEmail renders the bill email template
func (s *EmailService) renderBillEmail(name, billText string, invoiceID uint) (string, error) {
	tmpl, err := template.New("bill").Parse(billTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Name      string
		Bill      string
		InvoiceID uint
	}{
		Name:      name,
		Bill:      billText,
		InvoiceID: invoiceID,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// billTemplate is the HTML template for bill emails
const billTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Invoice #{{.InvoiceID}}</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333333;">
    <p>Dear {{.Name}},</p>
    <p>Thank you for your purchase. Please find your invoice details below:</p>
    <pre style="background-color: #f5f5f5; padding: 16px; font-family: monospace;">{{.Bill}}</pre>
    <p>We appreciate your business!</p>
    <p>Regards,<br>Shopping Cart Team</p>
</body>
</html>
`
