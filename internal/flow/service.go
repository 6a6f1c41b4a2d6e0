package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"totem/internal/bridge"
	"totem/internal/idletimer"
	"totem/internal/session"
	"totem/pkg/logger"
)

var (
	// ErrInvalidTransition rejects a trigger the current screen does not allow.
	ErrInvalidTransition = errors.New("invalid flow transition")

	// ErrInvalidDonation rejects non-positive donation amounts.
	ErrInvalidDonation = errors.New("donation amount must be positive")
)

const bridgeNotifyTimeout = 10 * time.Second

// Invalidator drops any cached ticket batch. Satisfied by tickets.Service.
type Invalidator interface {
	Invalidate()
}

// PaymentNotifier delivers payment confirmations to the native wrapper.
type PaymentNotifier interface {
	NotifyPayment(ctx context.Context, data bridge.PaymentData)
}

// Resetter returns a component to its idle state on session reset.
// Satisfied by the email dispatcher.
type Resetter interface {
	Reset()
}

// PaymentResult summarizes a confirmed payment.
type PaymentResult struct {
	Screen     Screen  `json:"screen"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// Service drives the purchase flow state machine. All screen transitions go
// through the transition table; operations fired on the wrong screen are
// rejected, never silently applied.
type Service struct {
	mu       sync.Mutex
	screen   Screen
	store    *session.Store
	tickets  Invalidator
	timer    *idletimer.Timer
	notifier PaymentNotifier
	mail     Resetter
	log      *logger.Logger
}

// NewService creates the flow service at the initial screen.
func NewService(store *session.Store, tickets Invalidator, timer *idletimer.Timer, notifier PaymentNotifier, mail Resetter, log *logger.Logger) *Service {
	return &Service{
		screen:   ScreenLanguageSelect,
		store:    store,
		tickets:  tickets,
		timer:    timer,
		notifier: notifier,
		mail:     mail,
		log:      log,
	}
}

// State returns the current screen.
func (s *Service) State() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// ChooseLanguage records the visitor's language and advances to quantity
// selection.
func (s *Service) ChooseLanguage(code string) (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	to, ok := transitionFor(s.screen, TriggerChooseLanguage, s.isChurch())
	if !ok {
		return s.screen, ErrInvalidTransition
	}

	s.store.SetSelectedLanguage(code)
	s.screen = to
	return to, nil
}

// IncrementQuantity raises the ticket quantity by one, clamped at the
// ceiling. Only allowed on the quantity screen.
func (s *Service) IncrementQuantity() (int, error) {
	return s.adjustQuantity(+1)
}

// DecrementQuantity lowers the ticket quantity by one, clamped at the
// floor. Only allowed on the quantity screen.
func (s *Service) DecrementQuantity() (int, error) {
	return s.adjustQuantity(-1)
}

func (s *Service) adjustQuantity(delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenQuantitySelect {
		return s.store.TicketQuantity(), ErrInvalidTransition
	}

	before := s.store.TicketQuantity()
	s.store.SetTicketQuantity(before + delta)
	after := s.store.TicketQuantity()

	// A changed quantity invalidates any previously generated batch.
	if after != before {
		s.tickets.Invalidate()
	}

	return after, nil
}

// Proceed advances from quantity selection; churches branch through the
// donation screen, everyone else goes straight to payment.
func (s *Service) Proceed() (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	to, ok := transitionFor(s.screen, TriggerProceed, s.isChurch())
	if !ok {
		return s.screen, ErrInvalidTransition
	}

	s.screen = to
	return to, nil
}

// Back returns to the previous screen where the table allows it.
func (s *Service) Back() (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	to, ok := transitionFor(s.screen, TriggerBack, s.isChurch())
	if !ok {
		return s.screen, ErrInvalidTransition
	}

	s.screen = to
	return to, nil
}

// SelectDonation stores the chosen amount and advances to payment.
func (s *Service) SelectDonation(amount float64) (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		return s.screen, ErrInvalidDonation
	}

	to, ok := transitionFor(s.screen, TriggerSelectDonation, s.isChurch())
	if !ok {
		return s.screen, ErrInvalidTransition
	}

	s.store.SetDonationAmount(amount)
	s.screen = to
	return to, nil
}

// Pay confirms the (simulated) payment, notifies the native wrapper
// fire-and-forget and advances to the thank-you screen.
func (s *Service) Pay(ctx context.Context) (PaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	to, ok := transitionFor(s.screen, TriggerPay, s.isChurch())
	if !ok {
		return PaymentResult{Screen: s.screen}, ErrInvalidTransition
	}

	quantity := s.store.TicketQuantity()
	total := float64(quantity) * s.store.TicketPrice()
	if s.isChurch() {
		total = s.store.DonationAmount()
	}

	s.screen = to

	if s.log != nil {
		s.log.LogPurchaseCompleted(ctx, s.store.MuseumID(), quantity, total)
	}

	if s.notifier != nil {
		data := bridge.PaymentData{
			TotalPrice: total,
			Quantity:   quantity,
			MuseumID:   s.store.MuseumID(),
			Timestamp:  time.Now().UnixMilli(),
		}
		// Best effort; a missing or broken bridge channel never fails the
		// purchase.
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), bridgeNotifyTimeout)
			defer cancel()
			s.notifier.NotifyPayment(notifyCtx, data)
		}()
	}

	return PaymentResult{Screen: to, Quantity: quantity, TotalPrice: total}, nil
}

// NewPurchase resets the session and returns to language selection.
func (s *Service) NewPurchase() (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	to, ok := transitionFor(s.screen, TriggerNewPurchase, s.isChurch())
	if !ok {
		return s.screen, ErrInvalidTransition
	}

	s.resetLocked("new_purchase")
	return to, nil
}

// IdleTimeout is the idle timer's expire action: one reset, one navigation
// back to language selection. Outside the thank-you screen it is a no-op.
func (s *Service) IdleTimeout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := transitionFor(s.screen, TriggerIdleTimeout, s.isChurch()); !ok {
		return
	}

	s.resetLocked("idle_timeout")
}

// TicketViewed arms the idle timer when the carousel reaches the last
// ticket of the generated batch.
func (s *Service) TicketViewed(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenThankYou {
		return
	}

	count := len(s.store.Tickets())
	if count > 0 && index == count-1 {
		s.timer.Arm()
	}
}

// Touch propagates a screen interaction to the idle timer.
func (s *Service) Touch() {
	s.timer.Touch()
}

// TimerState reports the idle timer for the frontend countdown display.
func (s *Service) TimerState() (armed bool, remaining int) {
	return s.timer.Armed(), s.timer.Remaining()
}

func (s *Service) resetLocked(trigger string) {
	s.store.ResetPurchase()
	s.tickets.Invalidate()
	s.timer.Stop()
	if s.mail != nil {
		s.mail.Reset()
	}
	s.screen = ScreenLanguageSelect

	if s.log != nil {
		s.log.LogSessionReset(context.Background(), trigger)
	}
}

func (s *Service) isChurch() bool {
	m := s.store.Museum()
	return m != nil && m.IsChurch
}
