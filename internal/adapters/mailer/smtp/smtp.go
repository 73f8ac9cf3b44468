package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"file-researcher/internal/config"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
	"strings"

	"github.com/wneessen/go-mail"
)

// Mailer sends emails over SMTP
type Mailer struct {
	client *mail.Client
	config config.SMTPConfig
	logger *slog.Logger
}

var _ port.Mailer = (*Mailer)(nil)

func tlsPolicy(name string) (mail.TLSPolicy, error) {
	switch strings.ToLower(name) {
	case "mandatory":
		return mail.TLSMandatory, nil
	case "opportunistic", "":
		return mail.TLSOpportunistic, nil
	case "none":
		return mail.NoTLS, nil
	default:
		return mail.NoTLS, fmt.Errorf("unknown tls policy %q", name)
	}
}

// NewSMTPMailer returns Mailer, no connection is opened before Send
func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) (*Mailer, error) {
	policy, err := tlsPolicy(cfg.TLS)
	if err != nil {
		return nil, err
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(policy),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &Mailer{client: client, config: cfg, logger: logger}, nil
}

// Send delivers email with its attachment
func (m *Mailer) Send(ctx context.Context, email domain.Email) (domain.DeliveryResult, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.config.From); err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)
	if email.AttachmentPath != "" {
		msg.AttachFile(email.AttachmentPath)
	}

	err := m.client.DialAndSendWithContext(ctx, msg)
	return m.Classify(err)
}

// Classify turns a transport error into a result, provider warnings raised
// after the message was accepted count as delivered
func (m *Mailer) Classify(err error) (domain.DeliveryResult, error) {
	if err == nil {
		return domain.DeliveryResult{Outcome: domain.DeliveryOutcomeDelivered}, nil
	}

	text := strings.ToLower(err.Error())
	for _, benign := range m.config.BenignWarnings {
		benign = strings.ToLower(strings.TrimSpace(benign))
		if benign == "" || !strings.Contains(text, benign) {
			continue
		}
		m.logger.Warn("smtp delivered with warning", "warning", err.Error())
		return domain.DeliveryResult{
			Outcome: domain.DeliveryOutcomeDeliveredWithWarning,
			Warning: err.Error(),
		}, nil
	}

	return domain.DeliveryResult{}, fmt.Errorf("failed to send email: %w", err)
}
