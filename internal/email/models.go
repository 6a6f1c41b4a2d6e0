package email

import "totem/internal/session"

// Status is the advisory dispatch state shown next to the email field.
// It only leaves success/error through a new submission attempt.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// SubmitRequest asks the kiosk to mail the current tickets.
type SubmitRequest struct {
	Email string `json:"email" binding:"required"`
}

// OrderSummary recaps the purchase in the mailed message.
type OrderSummary struct {
	Quantity       int     `json:"quantity"`
	TotalPrice     float64 `json:"totalPrice"`
	DonationAmount float64 `json:"donationAmount"`
}

// RelayRequest is the payload the kiosk posts to the mail relay.
type RelayRequest struct {
	Email        string            `json:"email"`
	Tickets      []session.Ticket  `json:"tickets"`
	Translations map[string]string `json:"translations"`
	Museum       *session.Museum   `json:"museum"`
	OrderSummary OrderSummary      `json:"orderSummary"`
}
