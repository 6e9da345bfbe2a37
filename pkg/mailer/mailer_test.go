package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := &Message{
		Template:    "attendee_confirmation",
		FromName:    "Apex Advisory Solutions",
		FromAddress: "events@example.com",
		To:          "thandi@example.com",
		Subject:     "RSVP Confirmation",
		HTMLBody:    "<p>Thank You, Thandi!</p>",
	}

	m, err := buildMessage(msg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, `From: "Apex Advisory Solutions" <events@example.com>`)
	assert.Contains(t, raw, "To: <thandi@example.com>")
	assert.Contains(t, raw, "Subject: RSVP Confirmation")
	assert.Contains(t, raw, "text/html")
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	_, err := buildMessage(&Message{
		FromName:    "RSVP System",
		FromAddress: "events@example.com",
		To:          "not an address",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient address")
}

func TestBuildMessage_InvalidSender(t *testing.T) {
	_, err := buildMessage(&Message{
		FromName:    "RSVP System",
		FromAddress: "@@",
		To:          "thandi@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sender address")
}

func TestSMTPSender_Send_FailsBeforeDialOnBadAddress(t *testing.T) {
	// Port 1 on localhost would refuse; the address check must fail first
	sender := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: 1, Username: "u", Password: "p"})

	err := sender.Send(context.Background(), &Message{
		Template:    "admin_notice",
		FromName:    "RSVP System",
		FromAddress: "events@example.com",
		To:          "broken",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient address")
}
