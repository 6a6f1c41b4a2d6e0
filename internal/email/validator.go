package email

import "regexp"

// The kiosk validator is deliberately strict: alphanumeric local part, one
// alphanumeric domain label and one TLD segment. Addresses with "+", "-",
// "_" or subdomains are rejected. Known product decision, do not relax.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9]+@[a-zA-Z0-9]+\.[a-zA-Z0-9]+$`)

// IsValidEmail reports whether the kiosk accepts the address for dispatch.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// relayEmailPattern is the relay-side check: anything without whitespace
// around a single @ and a dotted domain passes.
var relayEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
