package flow

// LanguageRequest selects the visitor's language.
// langcode is a custom binding rule registered at router setup.
type LanguageRequest struct {
	Code string `json:"code" binding:"required,langcode"`
}

// DonationRequest selects a preset or custom donation amount.
type DonationRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
