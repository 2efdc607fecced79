package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"gopkg.in/mail.v2"

	"slot-sniper/model"
)

const emailTimeout = 10 * time.Second

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	UseTLS   bool
}

type sender interface {
	DialAndSend(m ...*mail.Message) error
}

// Email sends the plain variant over SMTP.
type Email struct {
	cfg  EmailConfig
	dial func(EmailConfig) sender
}

func NewEmail(cfg EmailConfig) *Email {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Email{cfg: cfg, dial: newDialer}
}

func (e *Email) Name() string { return "email" }

func (e *Email) Send(_ context.Context, msg model.Message) error {
	if e.cfg.Host == "" || e.cfg.User == "" || e.cfg.To == "" {
		return fmt.Errorf("email: %w (host, user and destination are required)", ErrMissingCredentials)
	}

	if err := e.dial(e.cfg).DialAndSend(e.compose(msg)); err != nil {
		return fmt.Errorf("sending email to %s: %w", e.cfg.To, err)
	}

	return nil
}

func (e *Email) compose(msg model.Message) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", e.cfg.From)
	m.SetHeader("To", e.cfg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Plain)
	return m
}

// plainAuth is SMTP PLAIN without net/smtp's TLS requirement, used when
// STARTTLS is turned off and the server still asks for a login.
type plainAuth struct {
	user, password string
}

func (a plainAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "PLAIN", []byte("\x00" + a.user + "\x00" + a.password), nil
}

func (a plainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, fmt.Errorf("unexpected server challenge")
	}
	return nil, nil
}

// newDialer logs in only when both user and password are set.
func newDialer(cfg EmailConfig) sender {
	user, password := "", ""
	if cfg.User != "" && cfg.Password != "" {
		user, password = cfg.User, cfg.Password
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, user, password)
	d.Timeout = emailTimeout
	if cfg.UseTLS {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	} else {
		d.StartTLSPolicy = mail.NoStartTLS
		if user != "" {
			d.Auth = plainAuth{user: user, password: password}
		}
	}
	return d
}
