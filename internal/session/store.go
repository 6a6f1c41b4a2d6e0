package session

import (
	"sync"

	"totem/pkg/logger"
)

// Quantity bounds are a hard product rule; there is no configuration override.
const (
	MinTicketQuantity = 1
	MaxTicketQuantity = 10
)

// Defaults used when durable storage is empty or unreadable.
const (
	DefaultMuseumID    = "467"
	DefaultTicketPrice = 5
	DefaultLanguage    = "en"
)

// Store holds the single live kiosk session. One purchase is active at a time;
// the store survives purchase resets and is only torn down with the process.
type Store struct {
	mu       sync.RWMutex
	settings SettingsStore
	log      *logger.Logger

	museumID         string
	museum           *Museum
	selectedLanguage string
	ticketPrice      float64
	ticketQuantity   int
	donationAmount   float64
	tickets          []Ticket
	isLoading        bool
	lastError        string
}

// NewStore creates the session store, seeding museum id and ticket price from
// durable storage when present. A nil settings store degrades to defaults.
func NewStore(settings SettingsStore, log *logger.Logger) *Store {
	s := &Store{
		settings:         settings,
		log:              log,
		museumID:         DefaultMuseumID,
		selectedLanguage: DefaultLanguage,
		ticketPrice:      DefaultTicketPrice,
		ticketQuantity:   MinTicketQuantity,
	}

	if settings != nil {
		if id, err := settings.LoadMuseumID(); err == nil && id != "" {
			s.museumID = id
		}
		if price, err := settings.LoadTicketPrice(); err == nil && price > 0 {
			s.ticketPrice = price
		}
	}

	return s
}

// MuseumID returns the configured external museum identifier.
func (s *Store) MuseumID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.museumID
}

// SetMuseumID updates the museum id and mirrors it to durable storage.
func (s *Store) SetMuseumID(id string) {
	s.mu.Lock()
	s.museumID = id
	s.mu.Unlock()

	if s.settings != nil {
		if err := s.settings.SaveMuseumID(id); err != nil && s.log != nil {
			s.log.WithError(err).Warn("failed to persist museum id")
		}
	}
}

// Museum returns the fetched museum entity, nil until a lookup succeeded.
func (s *Store) Museum() *Museum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.museum
}

// SetMuseum stores the fetched museum entity.
func (s *Store) SetMuseum(m *Museum) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.museum = m
}

// SelectedLanguage returns the visitor's language code.
func (s *Store) SelectedLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedLanguage
}

// SetSelectedLanguage stores the visitor's language choice.
func (s *Store) SetSelectedLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedLanguage = code
}

// TicketPrice returns the unit ticket price.
func (s *Store) TicketPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticketPrice
}

// SetTicketPrice updates the unit price and mirrors it to durable storage.
// Non-positive values are ignored.
func (s *Store) SetTicketPrice(price float64) {
	if price <= 0 {
		return
	}

	s.mu.Lock()
	s.ticketPrice = price
	s.mu.Unlock()

	if s.settings != nil {
		if err := s.settings.SaveTicketPrice(price); err != nil && s.log != nil {
			s.log.WithError(err).Warn("failed to persist ticket price")
		}
	}
}

// TicketQuantity returns the selected quantity, always within [1,10].
func (s *Store) TicketQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticketQuantity
}

// SetTicketQuantity sets the quantity, clamped to [1,10].
func (s *Store) SetTicketQuantity(quantity int) {
	if quantity < MinTicketQuantity {
		quantity = MinTicketQuantity
	}
	if quantity > MaxTicketQuantity {
		quantity = MaxTicketQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticketQuantity = quantity
}

// DonationAmount returns the selected donation, 0 outside the donation branch.
func (s *Store) DonationAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.donationAmount
}

// SetDonationAmount stores the selected donation amount.
func (s *Store) SetDonationAmount(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donationAmount = amount
}

// Tickets returns the generated batch, empty until generation completed.
func (s *Store) Tickets() []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// SetTickets stores a generated batch.
func (s *Store) SetTickets(tickets []Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = tickets
}

// IsLoading reports the transient loading flag.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// SetLoading sets the transient loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = loading
}

// Error returns the advisory error string, empty when none.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// SetError sets the advisory error string; empty clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// ResetPurchase returns the session to its initial purchase state.
// Museum identity, fetched museum, language and price persist.
func (s *Store) ResetPurchase() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticketQuantity = MinTicketQuantity
	s.tickets = nil
	s.donationAmount = 0
	s.lastError = ""
}

// Snapshot returns a copy of the whole session for read-only consumers.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := make([]Ticket, len(s.tickets))
	copy(tickets, s.tickets)

	return Snapshot{
		MuseumID:         s.museumID,
		Museum:           s.museum,
		SelectedLanguage: s.selectedLanguage,
		TicketPrice:      s.ticketPrice,
		TicketQuantity:   s.ticketQuantity,
		DonationAmount:   s.donationAmount,
		Tickets:          tickets,
		IsLoading:        s.isLoading,
		Error:            s.lastError,
	}
}
