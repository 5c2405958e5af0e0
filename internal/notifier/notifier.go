package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/fitbook/booking-api/internal/config"
)

// Service sends booking confirmations. Sends are best-effort: the booking is
// already committed when a confirmation goes out, so callers log failures
// instead of propagating them.
type Service interface {
	SendBookingConfirmation(ctx context.Context, email, name, className, startLocal string) error
}

type smtpNotifier struct {
	cfg  config.SMTPConfig
	dial func(m *gomail.Message) error
}

// NewService returns an SMTP notifier, or a no-op one when no SMTP host is
// configured.
func NewService(cfg config.SMTPConfig) Service {
	if cfg.Host == "" {
		return NewNoop()
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &smtpNotifier{
		cfg: cfg,
		dial: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

func (s *smtpNotifier) SendBookingConfirmation(ctx context.Context, email, name, className, startLocal string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Booking confirmed: %s", className))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour spot in %s on %s is confirmed. See you there!\n", name, className, startLocal))

	if err := s.dial(m); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	return nil
}

type noopNotifier struct{}

// NewNoop returns a notifier that drops every message.
func NewNoop() Service {
	return noopNotifier{}
}

func (noopNotifier) SendBookingConfirmation(ctx context.Context, email, name, className, startLocal string) error {
	return nil
}
