package email

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"totem/internal/session"
)

type captureSender struct {
	to      string
	subject string
	html    string
	text    string
	err     error
	calls   int
}

func (c *captureSender) SendHTML(_ context.Context, to, subject, htmlBody, textBody string) error {
	c.calls++
	c.to = to
	c.subject = subject
	c.html = htmlBody
	c.text = textBody
	return c.err
}

func relayRequest() RelayRequest {
	return RelayRequest{
		Email: "visitor@example.com",
		Tickets: []session.Ticket{
			{Code: "AB12", QRUrl: "https://web.amuseapp.art/check-in?code=AB12&museumId=467"},
			{Code: "CD34", QRUrl: "https://web.amuseapp.art/check-in?code=CD34&museumId=467"},
		},
		Translations: TranslationsFor("en"),
		Museum:       &session.Museum{Name: "Test Museum", Code: "TESTMUSEUM"},
		OrderSummary: OrderSummary{Quantity: 2, TotalPrice: 10},
	}
}

func TestRelaySend_RendersAndSends(t *testing.T) {
	sender := &captureSender{}
	relay := NewRelay(sender, "https://api.qrserver.com/v1/create-qr-code/", nil)

	err := relay.Send(context.Background(), relayRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "visitor@example.com", sender.to)
	assert.Equal(t, "Your tickets for Test Museum", sender.subject)

	// Both codes and their QR image links appear in the HTML body.
	assert.Contains(t, sender.html, "AB12")
	assert.Contains(t, sender.html, "CD34")
	assert.Contains(t, sender.html,
		"https://api.qrserver.com/v1/create-qr-code/?size=180x180&data=https%3A%2F%2Fweb.amuseapp.art%2Fcheck-in%3Fcode%3DAB12%26museumId%3D467")

	// Plain-text alternative carries the codes too.
	assert.Contains(t, sender.text, "AB12")
	assert.Contains(t, sender.text, "CD34")
	assert.True(t, strings.Contains(sender.text, "Test Museum"))
}

func TestRelaySend_LocalizedCopy(t *testing.T) {
	sender := &captureSender{}
	relay := NewRelay(sender, "qr/", nil)

	req := relayRequest()
	req.Translations = TranslationsFor("it")

	require.NoError(t, relay.Send(context.Background(), req))
	assert.Equal(t, "I tuoi biglietti per Test Museum", sender.subject)
	assert.Contains(t, sender.html, "I tuoi biglietti")
}

func TestRelaySend_AcceptsLooseAddresses(t *testing.T) {
	sender := &captureSender{}
	relay := NewRelay(sender, "qr/", nil)

	req := relayRequest()
	req.Email = "first.last+tag@mail.example.com"

	require.NoError(t, relay.Send(context.Background(), req))
	assert.Equal(t, req.Email, sender.to)
}

func TestRelaySend_RejectsBadAddress(t *testing.T) {
	sender := &captureSender{}
	relay := NewRelay(sender, "qr/", nil)

	req := relayRequest()
	req.Email = "not an email"

	err := relay.Send(context.Background(), req)

	assert.ErrorIs(t, err, ErrRelayBadRequest)
	assert.Zero(t, sender.calls)
}

func TestRelaySend_RejectsEmptyBatch(t *testing.T) {
	sender := &captureSender{}
	relay := NewRelay(sender, "qr/", nil)

	req := relayRequest()
	req.Tickets = nil

	err := relay.Send(context.Background(), req)

	assert.ErrorIs(t, err, ErrRelayBadRequest)
	assert.Zero(t, sender.calls)
}

func TestRelaySend_NoSenderConfigured(t *testing.T) {
	relay := NewRelay(nil, "qr/", nil)

	err := relay.Send(context.Background(), relayRequest())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRelayBadRequest)
}

func TestRelaySend_MissingTranslationsFallBackToEnglish(t *testing.T) {
	sender := &captureSender{}
	relay := NewRelay(sender, "qr/", nil)

	req := relayRequest()
	req.Translations = nil

	require.NoError(t, relay.Send(context.Background(), req))
	assert.Equal(t, "Your tickets for Test Museum", sender.subject)
}

func TestNewSMTPSender_ValidatesConfig(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Port: 587, FromEmail: "a@b.c"})
	assert.Error(t, err)

	_, err = NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 0, FromEmail: "a@b.c"})
	assert.Error(t, err)

	_, err = NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.Error(t, err)

	sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "a@b.c"})
	require.NoError(t, err)
	assert.NotNil(t, sender)
}

func TestBuildMessage_MultipartStructure(t *testing.T) {
	sender, err := NewSMTPSender(SMTPConfig{
		Host: "smtp.example.com", Port: 587,
		FromEmail: "kiosk@amuseapp.it", FromName: "AmuseApp",
	})
	require.NoError(t, err)

	message := string(sender.buildMessage("visitor@example.com", "Subject", "<p>html</p>", "text"))

	assert.Contains(t, message, "From: AmuseApp <kiosk@amuseapp.it>")
	assert.Contains(t, message, "To: visitor@example.com")
	assert.Contains(t, message, "Subject: Subject")
	assert.Contains(t, message, "multipart/alternative")
	assert.Contains(t, message, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, message, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, message, "<p>html</p>")
	assert.Contains(t, message, "text")
}
