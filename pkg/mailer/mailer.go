package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"media-review/pkg/utils"
)

// Mailer delivers confirmation codes to users. Email is an external
// collaborator; nothing here is retried or queued.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, to, code string) error
}

// New returns an SMTP mailer, or a log-only mailer when SMTP is not
// configured (development).
func New(cfg utils.EmailConfig, log *zap.Logger) (Mailer, error) {
	if cfg.Host == "" {
		log.Warn("SMTP not configured, confirmation codes will be logged instead of mailed")
		return &logMailer{log: log}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &smtpMailer{
		client: client,
		from:   cfg.From,
		log:    log.With(zap.String("mailer", "smtp")),
	}, nil
}

type smtpMailer struct {
	client *mail.Client
	from   string
	log    *zap.Logger
}

func (m *smtpMailer) SendConfirmationCode(ctx context.Context, to, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender %s: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient %s: %w", to, err)
	}

	msg.Subject("Your confirmation code")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Your confirmation code: %s", code))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error("Failed to send confirmation code",
			zap.Error(err),
			zap.String("to", to),
		)
		return fmt.Errorf("send confirmation code to %s: %w", to, err)
	}

	m.log.Info("Confirmation code sent", zap.String("to", to))
	return nil
}

// logMailer writes the code to the log so development flows work without an
// SMTP server.
type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) SendConfirmationCode(_ context.Context, to, code string) error {
	m.log.Info("Confirmation code (not mailed)",
		zap.String("to", to),
		zap.String("code", code),
	)
	return nil
}
