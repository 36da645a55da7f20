// Package email delivers transactional mail. Registration of non-fan
// accounts sends a verification notice; when delivery fails the whole
// registration is rolled back, so senders must report errors honestly.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Sender delivers account emails.
type Sender interface {
	// SendVerification notifies a newly registered artist, venue or
	// journalist that their verification request was received.
	SendVerification(ctx context.Context, to, username, userType string) error
}

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender sends mail over plain SMTP with AUTH.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates an SMTP-backed sender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendVerification(ctx context.Context, to, username, userType string) error {
	subject := "Verification request received"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nThanks for registering as a %s. We received your verification request and will review your account shortly.\r\n",
		username, userType)

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send verification mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSender writes the mail to the log instead of sending it. Used in
// development when no SMTP server is configured.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendVerification(ctx context.Context, to, username, userType string) error {
	s.logger.Info().
		Str("to", to).
		Str("username", username).
		Str("user_type", userType).
		Msg("verification email (log-only sender)")
	return nil
}
