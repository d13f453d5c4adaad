// Package mailer sends transactional email over SMTP. When SMTP is not
// configured the mailer logs the message instead, so local environments
// work without a mail account.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"aquavalle/pkg/logger"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

type Mailer struct {
	cfg Config
	log *logger.Logger
}

func New(cfg Config, log *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

func (m *Mailer) configured() bool {
	return m.cfg.Host != "" && m.cfg.Port != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

// Send delivers a plain-text message. Header values are stripped of CRLF to
// keep recipients from injecting extra headers.
func (m *Mailer) Send(to, subject, body string) error {
	to = sanitizeHeader(to)
	subject = sanitizeHeader(subject)

	if !m.configured() {
		m.log.Info("Mock email (SMTP not configured)",
			"to", to,
			"subject", subject,
			"body", body,
		)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.Username)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, m.cfg.Username, []string{to}, []byte(sb.String())); err != nil {
		m.log.Error("Failed to send email", "to", to, "error", err)
		return err
	}

	m.log.Info("Email sent", "to", to, "subject", subject)
	return nil
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
