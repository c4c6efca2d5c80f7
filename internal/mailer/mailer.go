// Package mailer delivers transactional email.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"lost-and-found/internal/config"
	"lost-and-found/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	dialer Dialer
	from   string
}

func NewSMTPMailer(dialer Dialer, from string) *SMTPMailer {
	return &SMTPMailer{dialer: dialer, from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("event", "email_sent"),
	)
	return nil
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	logger.Warn("SMTP not configured, email not delivered",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.HTML),
	)
	return nil
}

// New returns an SMTP mailer, or a LogMailer when no SMTP host is configured.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return NewSMTPMailer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), from)
}

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Hello {{.Name}},</p>
<p>We received a request to reset your password. Your one-time code is <strong>{{.Code}}</strong>.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>The link expires in {{.Minutes}} minutes. If you did not ask for this, ignore this email.</p>`))

type ResetEmail struct {
	Name    string
	Code    string
	Link    string
	Minutes int
}

func RenderReset(data ResetEmail) (string, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render reset email: %w", err)
	}
	return buf.String(), nil
}
