package mail

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers transactional mail (verification, password reset)
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP sender when SMTP is configured, otherwise a sender that only logs
func New(cfg *config.Config) Sender {
	if !cfg.IsMailConfigured() {
		return &LogSender{}
	}
	return NewSMTPSender(cfg.Mail)
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &SMTPSender{dialer: d, from: cfg.From}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", logger.MaskEmail(msg.To), err)
	}

	logger.FromContext(ctx).Info("메일 발송 완료", "to", logger.MaskEmail(msg.To), "subject", msg.Subject)
	return nil
}

// LogSender is used when SMTP is not configured (local development)
type LogSender struct{}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	logger.FromContext(ctx).Warn("SMTP 미설정 - 메일을 발송하지 않습니다",
		"to", logger.MaskEmail(msg.To),
		"subject", msg.Subject,
	)
	return nil
}
