package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"ceerion/internal/config"

	"go.uber.org/zap"
)

// Message is a templated notification. Data keys must match what the
// named template expects.
type Message struct {
	To       string
	Template string
	Data     map[string]any
}

// Sender delivers notification email. Delivery is best-effort and out of
// band; a Sender failure must never reach the submitting request.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPMailer struct {
	cfg config.SMTP
	log *zap.Logger
}

func NewSMTPMailer(cfg config.SMTP, log *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.cfg.User == "" || m.cfg.Password == "" {
		// Unconfigured SMTP drops mail silently. Matching queue semantics:
		// this is not a retryable failure.
		m.log.Warn("email not configured, dropping message",
			zap.String("template", msg.Template))
		return nil
	}

	subject, body, err := Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: \"CEERION Energy\" <%s>\r\n", m.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, buf.Bytes()); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m.log.Info("email sent",
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
	)
	return nil
}
