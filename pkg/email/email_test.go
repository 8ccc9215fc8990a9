package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSenderBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	s := &SMTPSender{
		cfg: SMTPConfig{Host: "smtp.example.com", Port: "587", From: "noreply@example.com", Password: "pw"},
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	require.NoError(t, s.Send("ada@example.com", "Hello", "Body text"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"ada@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hello\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\nBody text\r\n")
}

func TestSMTPSenderWrapsFailure(t *testing.T) {
	boom := errors.New("connection refused")
	s := &SMTPSender{
		cfg: SMTPConfig{Host: "smtp.example.com", Port: "25"},
		send: func(string, smtp.Auth, string, []string, []byte) error {
			return boom
		},
	}
	assert.ErrorIs(t, s.Send("a@b.c", "s", "b"), boom)
}

func TestNewSenderWithoutHostOnlyLogs(t *testing.T) {
	s := NewSender(SMTPConfig{})
	assert.IsType(t, logSender{}, s)
	assert.NoError(t, s.Send("a@b.c", "s", "b"))
}
