package notify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/config"
	"gopkg.in/gomail.v2"
)

// Mailer delivers notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	name   string
	logger *log.Logger
}

var _ Notifier = (*Mailer)(nil)

// NewMailer returns a Mailer for the given SMTP settings. The server name is
// used as the sender display name.
func NewMailer(ctx context.Context, smtp config.SMTPConfig, name string) *Mailer {
	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	d.SSL = smtp.TLS

	from := smtp.From
	if from == "" {
		from = smtp.Username
	}

	return &Mailer{
		dialer: d,
		from:   from,
		name:   name,
		logger: log.FromContext(ctx).WithPrefix("notify"),
	}
}

// Notify implements Notifier.
func (m *Mailer) Notify(_ context.Context, n Notification) (Outcome, error) {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.name)
	msg.SetAddressHeader("To", n.Recipient.Email, n.Recipient.Name)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/plain", n.Body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return OutcomeDelivered, fmt.Errorf("send mail: %w", err)
	}

	m.logger.Debug("mail delivered", "kind", n.Kind, "to", n.Recipient.Email)
	return OutcomeDelivered, nil
}

// Simulator logs notifications instead of delivering them. It is used when no
// SMTP host is configured.
type Simulator struct {
	logger *log.Logger
}

var _ Notifier = (*Simulator)(nil)

// NewSimulator returns a Simulator.
func NewSimulator(ctx context.Context) *Simulator {
	return &Simulator{
		logger: log.FromContext(ctx).WithPrefix("notify"),
	}
}

// Notify implements Notifier.
func (s *Simulator) Notify(_ context.Context, n Notification) (Outcome, error) {
	s.logger.Info("simulated delivery",
		"kind", n.Kind,
		"to", n.Recipient.Email,
		"subject", n.Subject,
	)
	return OutcomeSimulated, nil
}

// New returns a Notifier for the given configuration. Deliveries are
// simulated unless an SMTP host is configured.
func New(ctx context.Context, cfg *config.Config) Notifier {
	if cfg == nil || cfg.SMTP.Host == "" {
		return NewSimulator(ctx)
	}

	return NewMailer(ctx, cfg.SMTP, cfg.Name)
}
