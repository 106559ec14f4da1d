package infra

import (
	"fmt"
	"net/smtp"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer delivers invoice PDFs over SMTP. Callers wrap Send in the
// circuit breaker; Mailer itself does no retrying.
type Mailer struct {
	from string
	host string
	auth smtp.Auth
	addr string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendInvoice mails a plain-text message with the invoice PDF attached.
// An empty pdfPath sends the message without an attachment.
func (m *Mailer) SendInvoice(to, subject, body, pdfPath string) error {
	msg := email.NewEmail()
	msg.From = m.from
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)
	if pdfPath != "" {
		if _, err := msg.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("attach %s: %w", pdfPath, err)
		}
	}
	return msg.Send(m.addr, m.auth)
}
