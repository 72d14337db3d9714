package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/pkg/circuitbreaker"
)

// ResendSender delivers through the Resend HTTP API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	return err
}

// SMTPSender delivers through a plain SMTP relay. Auth is skipped when no
// user is configured (MailHog and similar).
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	s := &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
	if user != "" {
		s.auth = smtp.PlainAuth("", user, password, host)
	}
	return s
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	return smtp.SendMail(s.addr, s.auth, envelopeAddress(s.from), []string{msg.To}, buildMIME(s.from, msg))
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// envelopeAddress extracts the bare address from "Name <addr>".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		return strings.TrimSuffix(from[i+1:], ">")
	}
	return from
}

// LogSender only logs, for local development.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email (log provider)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("html", msg.HTML),
	)
	return nil
}

// GuardedSender stops calling a provider that keeps failing. While the
// breaker is open, Send returns circuitbreaker.ErrOpenState at once.
type GuardedSender struct {
	next    Sender
	breaker *circuitbreaker.CircuitBreaker
}

func NewGuardedSender(next Sender, name string, failures uint32, timeout time.Duration, log *zap.Logger) *GuardedSender {
	if failures == 0 {
		failures = 5
	}
	return &GuardedSender{
		next: next,
		breaker: circuitbreaker.New("mail-"+name, circuitbreaker.Config{
			MaxRequests: 1,
			Timeout:     timeout,
			ReadyToTrip: func(c circuitbreaker.Counts) bool {
				return c.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn("mail circuit breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
	}
}

func (s *GuardedSender) Send(ctx context.Context, msg Message) error {
	return s.breaker.Execute(func() error {
		return s.next.Send(ctx, msg)
	})
}
