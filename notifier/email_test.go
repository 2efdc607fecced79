package notifier

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"

	"slot-sniper/model"
)

type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*mail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func newTestEmail(cfg EmailConfig, fs *fakeSender) (*Email, *EmailConfig) {
	e := NewEmail(cfg)
	var dialed EmailConfig
	e.dial = func(c EmailConfig) sender {
		dialed = c
		return fs
	}
	return e, &dialed
}

var testEmailConfig = EmailConfig{
	Host:     "smtp.example.com",
	Port:     587,
	User:     "sniper@example.com",
	Password: "secret",
	To:       "me@example.com",
	UseTLS:   true,
}

func TestEmail_Send(t *testing.T) {
	fs := &fakeSender{}
	e, dialed := newTestEmail(testEmailConfig, fs)

	err := e.Send(context.Background(), model.Message{Subject: Subject, HTML: "<b>x</b>", Plain: "plain body"})
	require.NoError(t, err)
	require.Len(t, fs.sent, 1)
	assert.Equal(t, "smtp.example.com", dialed.Host)

	var buf bytes.Buffer
	_, err = fs.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "From: sniper@example.com")
	assert.Contains(t, raw, "To: me@example.com")
	assert.Contains(t, raw, "Subject: Slot Sniper: Target slot available!")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "plain body")
	assert.NotContains(t, raw, "<b>")
}

func TestEmail_SendExplicitFrom(t *testing.T) {
	cfg := testEmailConfig
	cfg.From = "alerts@example.com"
	fs := &fakeSender{}
	e, _ := newTestEmail(cfg, fs)

	require.NoError(t, e.Send(context.Background(), model.Message{Plain: "x"}))

	assert.Equal(t, []string{"alerts@example.com"}, fs.sent[0].GetHeader("From"))
}

func TestEmail_SendFailure(t *testing.T) {
	fs := &fakeSender{err: errors.New("535 authentication failed")}
	e, _ := newTestEmail(testEmailConfig, fs)

	err := e.Send(context.Background(), model.Message{Plain: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 authentication failed")
}

func TestEmail_SendMissingCredentials(t *testing.T) {
	for _, cfg := range []EmailConfig{
		{User: "u", To: "t"},
		{Host: "h", To: "t"},
		{Host: "h", User: "u"},
	} {
		fs := &fakeSender{}
		e, _ := newTestEmail(cfg, fs)
		err := e.Send(context.Background(), model.Message{Plain: "x"})
		assert.True(t, errors.Is(err, ErrMissingCredentials))
		assert.Empty(t, fs.sent)
	}
}

func TestNewDialer(t *testing.T) {
	d := newDialer(testEmailConfig).(*mail.Dialer)
	assert.Equal(t, "smtp.example.com", d.Host)
	assert.Equal(t, 587, d.Port)
	assert.Equal(t, "sniper@example.com", d.Username)
	assert.Equal(t, mail.MandatoryStartTLS, d.StartTLSPolicy)

	assert.Nil(t, d.Auth)

	cfg := testEmailConfig
	cfg.Password = ""
	cfg.UseTLS = false
	d = newDialer(cfg).(*mail.Dialer)
	assert.Empty(t, d.Username)
	assert.Nil(t, d.Auth)
	assert.Equal(t, mail.StartTLSPolicy(mail.NoStartTLS), d.StartTLSPolicy)
}

func TestNewDialer_LoginWithoutTLS(t *testing.T) {
	cfg := testEmailConfig
	cfg.UseTLS = false
	d := newDialer(cfg).(*mail.Dialer)
	require.NotNil(t, d.Auth)

	server := &smtp.ServerInfo{Name: "smtp.example.com", TLS: false, Auth: []string{"PLAIN", "LOGIN"}}
	_, _, err := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host).Start(server)
	require.Error(t, err)

	proto, resp, err := d.Auth.Start(server)
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", proto)
	assert.Equal(t, "\x00sniper@example.com\x00secret", string(resp))

	next, err := d.Auth.Next(nil, false)
	assert.NoError(t, err)
	assert.Nil(t, next)
}
