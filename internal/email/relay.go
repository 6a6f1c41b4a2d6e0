package email

import (
	"context"
	"errors"
	"fmt"

	"totem/pkg/logger"
)

// ErrRelayBadRequest marks a relay payload the service refuses to send.
var ErrRelayBadRequest = errors.New("invalid relay payload")

// Relay renders ticket emails and hands them to the SMTP sender. It backs
// the endpoint the kiosk dispatcher posts to, so a kiosk can run against
// its own process or a remote relay interchangeably.
type Relay struct {
	sender      Sender
	qrImageBase string
	log         *logger.Logger
}

// NewRelay wires the relay against a sender.
func NewRelay(sender Sender, qrImageBase string, log *logger.Logger) *Relay {
	return &Relay{
		sender:      sender,
		qrImageBase: qrImageBase,
		log:         log,
	}
}

// Send validates, renders and sends a ticket email.
func (r *Relay) Send(ctx context.Context, req RelayRequest) error {
	if !relayEmailPattern.MatchString(req.Email) {
		return fmt.Errorf("%w: bad recipient address", ErrRelayBadRequest)
	}
	if len(req.Tickets) == 0 {
		return fmt.Errorf("%w: no tickets to send", ErrRelayBadRequest)
	}
	if r.sender == nil {
		return errors.New("mail sender is not configured")
	}

	htmlBody, textBody, err := renderEmail(req, r.qrImageBase)
	if err != nil {
		return err
	}

	tr := req.Translations
	if tr == nil {
		tr = TranslationsFor("en")
	}
	subject := tr["emailSubject"]
	if req.Museum != nil && req.Museum.Name != "" {
		subject = subject + " " + req.Museum.Name
	}

	if err := r.sender.SendHTML(ctx, req.Email, subject, htmlBody, textBody); err != nil {
		return err
	}

	if r.log != nil {
		r.log.InfoWithContext(ctx, "ticket email relayed", map[string]interface{}{
			"tickets": len(req.Tickets),
		})
	}
	return nil
}
