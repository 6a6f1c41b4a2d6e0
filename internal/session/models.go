package session

// Language is a language offered by a museum, as returned by the upstream API.
type Language struct {
	LanguageID int    `json:"language_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
}

// Museum is the external museum entity the kiosk sells tickets for.
type Museum struct {
	Name            string     `json:"name"`
	Code            string     `json:"code"`
	MuseumLanguages []Language `json:"museum_languages"`
	IsChurch        bool       `json:"is_church"`
}

// Ticket is one admission voucher: an issued code plus its QR-encodable URL.
type Ticket struct {
	Code  string `json:"code"`
	QRUrl string `json:"qrUrl"`
}

// Snapshot is a read-only copy of the live session, safe to serialize.
type Snapshot struct {
	MuseumID         string   `json:"museum_id"`
	Museum           *Museum  `json:"museum"`
	SelectedLanguage string   `json:"selected_language"`
	TicketPrice      float64  `json:"ticket_price"`
	TicketQuantity   int      `json:"ticket_quantity"`
	DonationAmount   float64  `json:"donation_amount"`
	Tickets          []Ticket `json:"tickets"`
	IsLoading        bool     `json:"is_loading"`
	Error            string   `json:"error,omitempty"`
}
