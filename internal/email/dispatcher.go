package email

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"totem/internal/session"
	"totem/pkg/logger"
)

var (
	// ErrInvalidEmail means the address failed the kiosk-side check.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrSendInFlight means a previous dispatch has not settled yet.
	ErrSendInFlight = errors.New("email dispatch already in progress")
)

const dispatchTimeout = 15 * time.Second

// Dispatcher sends the current ticket batch to the visitor's address through
// the configured relay. One dispatch at a time; the outcome is advisory and
// never blocks the purchase flow.
type Dispatcher struct {
	relayURL string
	store    *session.Store
	http     *http.Client
	log      *logger.Logger

	mu       sync.Mutex
	inFlight bool
	status   Status
	attempt  uint64
}

// NewDispatcher wires a dispatcher against the relay endpoint.
func NewDispatcher(relayURL string, store *session.Store, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		relayURL: relayURL,
		store:    store,
		http:     &http.Client{Timeout: dispatchTimeout},
		log:      log,
		status:   StatusIdle,
	}
}

// Submit validates the address and starts an asynchronous dispatch.
// A second submission while one is running is rejected, not queued.
func (d *Dispatcher) Submit(email string) error {
	if !IsValidEmail(email) {
		return ErrInvalidEmail
	}

	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		return ErrSendInFlight
	}
	d.inFlight = true
	d.status = StatusIdle
	token := d.attempt
	d.mu.Unlock()

	go d.send(email, token, uuid.New().String())
	return nil
}

func (d *Dispatcher) send(email string, token uint64, dispatchID string) {
	payload := d.buildPayload(email)
	err := d.postRelay(payload)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.inFlight = false
	if token != d.attempt {
		// Session was reset while the relay call was running. The result
		// belongs to a purchase that no longer exists.
		if d.log != nil {
			d.log.WithFields(map[string]interface{}{"dispatch_id": dispatchID}).
				Debug("discarding stale email dispatch result")
		}
		return
	}

	if err != nil {
		d.status = StatusError
		if d.log != nil {
			d.log.WithError(err).WithFields(map[string]interface{}{
				"dispatch_id": dispatchID,
			}).Error("email dispatch failed")
		}
		return
	}

	d.status = StatusSuccess
	if d.log != nil {
		d.log.WithFields(map[string]interface{}{"dispatch_id": dispatchID}).
			Info("email dispatch succeeded")
	}
}

func (d *Dispatcher) buildPayload(email string) RelayRequest {
	snap := d.store.Snapshot()

	total := snap.TicketPrice * float64(snap.TicketQuantity)
	if snap.Museum != nil && snap.Museum.IsChurch {
		total = snap.DonationAmount
	}

	return RelayRequest{
		Email:        email,
		Tickets:      snap.Tickets,
		Translations: TranslationsFor(snap.SelectedLanguage),
		Museum:       snap.Museum,
		OrderSummary: OrderSummary{
			Quantity:       snap.TicketQuantity,
			TotalPrice:     total,
			DonationAmount: snap.DonationAmount,
		},
	}
}

func (d *Dispatcher) postRelay(payload RelayRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	resp, err := d.http.Post(d.relayURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay returned %d", resp.StatusCode)
	}
	return nil
}

// Status returns the advisory dispatch status.
func (d *Dispatcher) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Reset clears dispatch state for a fresh session. An in-flight dispatch is
// left to finish; its result is discarded through the attempt token.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempt++
	d.status = StatusIdle
}
