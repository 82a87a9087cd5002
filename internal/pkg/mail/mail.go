// Package mail sends transactional notifications over SMTP.
package mail

import (
	"crypto/tls"
	"fmt"

	gomail "github.com/go-mail/mail/v2"
	"go.uber.org/zap"
)

// Config holds SMTP settings. With Enable false every send is a no-op, so
// callers never branch on mail availability.
type Config struct {
	Enable        bool   `yaml:"enable"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Pass          string `yaml:"pass"`
	From          string `yaml:"from"`
	SkipTLSVerify bool   `yaml:"skip_tls_verify"`
}

// Sender delivers notification emails.
type Sender struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Sender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Sender{cfg: cfg, logger: logger}
}

// Send delivers a single HTML email synchronously.
func (s *Sender) Send(to, subject, html string) error {
	if !s.cfg.Enable {
		return nil
	}
	if s.cfg.Host == "" || s.cfg.From == "" {
		return fmt.Errorf("smtp not configured (host/from required)")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	d.StartTLSPolicy = gomail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.SkipTLSVerify,
	}

	return d.DialAndSend(m)
}

// SendAsync delivers in the background. Notification mail must never block
// or fail a request, so errors are only logged.
func (s *Sender) SendAsync(to, subject, html string) {
	if !s.cfg.Enable {
		return
	}
	go func() {
		if err := s.Send(to, subject, html); err != nil && s.logger != nil {
			s.logger.Warn("mail send failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
	}()
}
