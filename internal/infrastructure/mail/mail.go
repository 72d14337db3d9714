// Package mail sends the transactional account emails.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/infrastructure/config"
	"github.com/xiebiao/blend/pkg/metrics"
)

// Message is a rendered HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message through one provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const (
	subjectVerification = "Email Verification - Blend"
	subjectWelcome      = "Welcome to Blend!"
)

var (
	verificationTmpl = template.Must(template.New("verification").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Welcome to Blend, {{.FirstName}}!</h2>
  <p style="font-size: 16px; color: #555;">Thank you for registering with us. Please verify your email address to complete your registration.</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p style="font-size: 14px; color: #777; margin: 0;">Your verification code is:</p>
    <h1 style="color: #4CAF50; font-size: 32px; letter-spacing: 5px; margin: 10px 0;">{{.Code}}</h1>
  </div>
  <p style="font-size: 14px; color: #777;">This code will expire in {{.ExpiresIn}} minutes.</p>
  <p style="font-size: 14px; color: #777;">If you didn't request this verification, please ignore this email.</p>
  <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
  <p style="font-size: 12px; color: #999;">This is an automated email, please do not reply.</p>
</div>`))

	welcomeTmpl = template.Must(template.New("welcome").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Welcome to Blend, {{.FirstName}}!</h2>
  <p style="font-size: 16px; color: #555;">Your email has been successfully verified. You can now enjoy all the features of our platform!</p>
  <p style="font-size: 14px; color: #777;">Start exploring our products and place your first order.</p>
  <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
  <p style="font-size: 12px; color: #999;">This is an automated email, please do not reply.</p>
</div>`))
)

// Mailer renders the account templates and hands them to a Sender.
type Mailer struct {
	sender Sender
	log    *zap.Logger
}

func NewMailer(sender Sender, log *zap.Logger) *Mailer {
	return &Mailer{sender: sender, log: log}
}

// New selects the provider configured in cfg.Provider.
func New(cfg config.MailConfig, log *zap.Logger) *Mailer {
	var sender Sender
	switch cfg.Provider {
	case "resend":
		sender = NewResendSender(cfg.ResendAPIKey, cfg.From)
	case "smtp":
		sender = NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.From)
	default:
		sender = NewLogSender(log)
	}
	if cfg.Provider == "resend" || cfg.Provider == "smtp" {
		sender = NewGuardedSender(sender, cfg.Provider, cfg.BreakerFailures, cfg.BreakerTimeout, log)
	}
	log.Info("mail provider configured", zap.String("provider", cfg.Provider), zap.String("from", cfg.From))
	return NewMailer(sender, log)
}

// SendVerification mails a verification code valid for expiresInMinutes.
func (m *Mailer) SendVerification(ctx context.Context, to, firstName, code string, expiresInMinutes int) error {
	html, err := render(verificationTmpl, map[string]interface{}{
		"FirstName": firstName,
		"Code":      code,
		"ExpiresIn": expiresInMinutes,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, "verification", Message{To: to, Subject: subjectVerification, HTML: html})
}

// SendWelcome mails the post-verification greeting.
func (m *Mailer) SendWelcome(ctx context.Context, to, firstName string) error {
	html, err := render(welcomeTmpl, map[string]interface{}{"FirstName": firstName})
	if err != nil {
		return err
	}
	return m.send(ctx, "welcome", Message{To: to, Subject: subjectWelcome, HTML: html})
}

func (m *Mailer) send(ctx context.Context, name string, msg Message) error {
	if err := m.sender.Send(ctx, msg); err != nil {
		metrics.IncCounterVec(metrics.EmailsSentTotal, name, "error")
		m.log.Error("failed to send email",
			zap.String("template", name),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return fmt.Errorf("send %s email: %w", name, err)
	}
	metrics.IncCounterVec(metrics.EmailsSentTotal, name, "success")
	m.log.Info("email sent", zap.String("template", name), zap.String("to", msg.To))
	return nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}
