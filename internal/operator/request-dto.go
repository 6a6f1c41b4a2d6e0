package operator

// LoginRequest carries the operator PIN entered on the hidden dialog.
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// SettingsRequest updates the kiosk provisioning values. Both fields are
// optional; omitted fields keep their current value.
type SettingsRequest struct {
	MuseumID    string  `json:"museum_id"`
	TicketPrice float64 `json:"ticket_price"`
}
