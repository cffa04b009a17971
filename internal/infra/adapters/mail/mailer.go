package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"quote-quiz/internal/config"
	"quote-quiz/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// NewMailer returns an SMTP-backed reward mailer, or a log-only stub when no
// SMTP host is configured (useful in dev and tests).
func NewMailer(cfg config.MailConfig, logger *zerolog.Logger) adapter.RewardMailer {
	compLog := logger.With().Str("component", "RewardMailer").Logger()
	if cfg.Host == "" {
		return &stubMailer{log: &compLog}
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	from := cfg.From
	if from == "" {
		from = "no-reply@example.com"
	}
	return &smtpMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, port),
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		from: from,
		log:  &compLog,
	}
}

func discountSubject(author string) string {
	return fmt.Sprintf("10%% off on %s's books", author)
}

func discountBody(author string) string {
	return fmt.Sprintf("Congrats! You've guessed %s correctly enough times. Enjoy a 10%% discount on %s's books.", author, author)
}

var _ adapter.RewardMailer = (*smtpMailer)(nil)

type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
	log  *zerolog.Logger
}

func (m *smtpMailer) SendDiscount(_ context.Context, to, author string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + discountSubject(author),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		discountBody(author),
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send discount mail: %w", err)
	}
	m.log.Info().Str("to", to).Str("author", author).Msg("discount mail sent")
	return nil
}

type stubMailer struct {
	log *zerolog.Logger
}

func (m *stubMailer) SendDiscount(_ context.Context, to, author string) error {
	m.log.Info().Str("to", to).Str("author", author).
		Str("subject", discountSubject(author)).Msg("mail stub: discount mail")
	return nil
}
