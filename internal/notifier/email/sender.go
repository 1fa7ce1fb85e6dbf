// Package email renders and sends the receipt e-mail over SMTP.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/aputours/backend/internal/config"
	"github.com/aputours/backend/internal/domain/shared"
)

// receiptTemplate is the HTML body of the receipt e-mail. The verification
// code is the piece the client actually needs; everything else is context.
const receiptTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thank you for booking with ApuTours, {{.ClientName}}!</h2>
  <p>Your payment receipt has been issued.</p>
  <table cellpadding="6">
    <tr><td><strong>Receipt code</strong></td><td>{{.ReceiptCode}}</td></tr>
    <tr><td><strong>Verification code</strong></td><td>{{.VerificationCode}}</td></tr>
    <tr><td><strong>Service</strong></td><td>{{.ServiceDescription}}</td></tr>
    {{if .ProviderName}}<tr><td><strong>Provider</strong></td><td>{{.ProviderName}}</td></tr>{{end}}
    <tr><td><strong>Total</strong></td><td>S/ {{printf "%.2f" .Total}}</td></tr>
  </table>
  <p>Anyone can confirm this receipt's authenticity with the verification
  code above. Keep it with your travel documents.</p>
  <p>— The ApuTours team</p>
</body>
</html>`

// Sender sends receipt e-mails over SMTP
type Sender struct {
	cfg  *config.SMTPConfig
	tmpl *template.Template
}

// NewSender parses the receipt template once and returns a ready sender
func NewSender(cfg *config.SMTPConfig) (*Sender, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt email template: %w", err)
	}
	return &Sender{cfg: cfg, tmpl: tmpl}, nil
}

// SendReceiptEmail renders the receipt e-mail and delivers it to the client
func (s *Sender) SendReceiptEmail(event *shared.ReceiptIssuedEvent) error {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, event); err != nil {
		return fmt.Errorf("failed to render receipt email: %w", err)
	}

	subject := "Your ApuTours receipt " + event.ReceiptCode
	message := s.buildHTMLEmail(event.ClientEmail, subject, body.String())

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	// Local relays (e.g. mailhog in development) run without credentials
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{event.ClientEmail}, message); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	return nil
}

// buildHTMLEmail assembles the MIME headers and HTML body
func (s *Sender) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.cfg.FromName,
		s.cfg.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}
