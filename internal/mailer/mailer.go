package mailer

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"go-wms-feed/internal/config"
)

// Mailer sends operational reports over plain SMTP.
type Mailer struct {
	cfg config.MailConfig
}

func New(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a message to the configured recipients, attaching the
// file at attachmentPath when it is non-empty.
func (m *Mailer) Send(subject, body, attachmentPath string) error {
	if m.cfg.Server == "" {
		return fmt.Errorf("mail server not configured")
	}

	recipients := splitRecipients(m.cfg.Recipients)
	if len(recipients) == 0 {
		return fmt.Errorf("no mail recipients configured")
	}

	msg, err := buildMessage(m.cfg.Username, recipients, subject, body, attachmentPath)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Server, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Server)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.Username, recipients, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func splitRecipients(raw string) []string {
	var out []string
	for _, r := range strings.Split(raw, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

func buildMessage(from string, to []string, subject, body, attachmentPath string) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")

	if attachmentPath == "" {
		sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		sb.WriteString(body)
		return []byte(sb.String()), nil
	}

	data, err := os.ReadFile(attachmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	const boundary = "gowmsfeedboundary"
	filename := filepath.Base(attachmentPath)

	sb.WriteString("Content-Type: multipart/mixed; boundary=" + boundary + "\r\n\r\n")

	sb.WriteString("--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	sb.WriteString("--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/csv; name=" + filename + "\r\n")
	sb.WriteString("Content-Disposition: attachment; filename=" + filename + "\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")

	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded + "\r\n")

	sb.WriteString("--" + boundary + "--\r\n")

	return []byte(sb.String()), nil
}
