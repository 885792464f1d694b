// Package email delivers the watch agent's digest over plain SMTP.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strings"

	"tubepulse/internal/models"
	"tubepulse/shared/config"
)

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// SendDigest renders and mails the run digest. A digest with no entries is
// skipped without error.
func (s *Sender) SendDigest(digest *models.DigestReport) error {
	if digest == nil {
		return fmt.Errorf("digest cannot be nil")
	}

	if len(digest.Entries) == 0 {
		return nil // Nothing analyzed, nothing to send
	}

	subject := fmt.Sprintf("TubePulse Digest - %d Videos Analyzed (%s)",
		len(digest.Entries), digest.Date.Format("Jan 2, 2006"))

	body, err := s.generateEmailBody(digest)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, strings.Join(s.config.ToEmails, ", "), s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, s.config.ToEmails, msg)
}

func (s *Sender) generateEmailBody(digest *models.DigestReport) (string, error) {
	// Read template from external file
	tmplBytes, err := os.ReadFile(s.config.Template)
	if err != nil {
		return "", fmt.Errorf("failed to read email template: %w", err)
	}

	tmpl := template.New("digest").Funcs(template.FuncMap{
		"div": func(a, b float64) float64 {
			if b == 0 {
				return 0
			}
			return a / b
		},
		"mul":     func(a, b float64) float64 { return a * b },
		"pct":     func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"float64": func(i int) float64 { return float64(i) },
		// delta renders a change-since-last-run pointer, empty when there is
		// no previous run to compare against.
		"delta": func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%+.1f", *v)
		},
	})

	tmpl, err = tmpl.Parse(string(tmplBytes))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, digest); err != nil {
		return "", err
	}

	return buf.String(), nil
}
