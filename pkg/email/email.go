package email

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

// Sender delivers plain text email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

// NewSender returns an SMTP sender, or one that only logs when no relay host is set.
func NewSender(cfg SMTPConfig) Sender {
	if cfg.Host == "" {
		logrus.Warn("SMTP_HOST not set, outgoing email will only be logged")
		return logSender{}
	}
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}
}

// SMTPSender sends email with PLAIN auth through a relay.
type SMTPSender struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// Send sends a plain text email.
func (s *SMTPSender) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.From, s.cfg.Password, s.cfg.Host)

	if err := s.send(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.From, []string{to}, message(s.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func message(from, to, subject, body string) []byte {
	return []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" + body + "\r\n")
}

type logSender struct{}

func (logSender) Send(to, subject, body string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    body,
	}).Info("Email not sent, no SMTP relay configured")
	return nil
}
