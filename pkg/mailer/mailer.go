// Package mailer sends HTML notifications through an SMTP relay.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/apexadvisory/rsvp-api/pkg/logger"
	"github.com/apexadvisory/rsvp-api/pkg/metrics"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Message is a rendered email ready to be sent
type Message struct {
	Template    string // metrics label, e.g. "attendee_confirmation"
	FromName    string
	FromAddress string
	To          string
	Subject     string
	HTMLBody    string
}

// Sender delivers a single message
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPConfig holds relay connection settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPSender sends each message over a fresh SMTP connection
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a sender for the given relay
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg}
}

// Send builds msg, dials the relay, delivers and disconnects.
// Address errors surface before any connection is attempted.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	start := time.Now()
	status := "error"
	defer func() {
		duration := metrics.MeasureDuration(start)
		metrics.EmailSendDuration.WithLabelValues(msg.Template, status).Observe(duration)
		metrics.EmailSendTotal.WithLabelValues(msg.Template, status).Inc()
		logger.LogAPICall(ctx, "smtp", msg.Template, status, duration,
			zap.String("smtp_host", s.cfg.Host))
	}()

	m, err := buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return err
	}

	status = "success"
	return nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return opts
}

func buildMessage(msg *Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", msg.FromAddress, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	return m, nil
}
