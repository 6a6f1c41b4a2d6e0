package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"totem/internal/session"
)

func waitForStatus(t *testing.T, d *Dispatcher, want Status) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return d.Status() == want
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSubmit_RejectsInvalidEmail(t *testing.T) {
	d := NewDispatcher("http://relay.invalid", session.NewStore(nil, nil), nil)

	err := d.Submit("not-an-email")

	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, StatusIdle, d.Status())
}

func TestSubmit_SuccessfulDispatch(t *testing.T) {
	var received RelayRequest
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	store := session.NewStore(nil, nil)
	store.SetTicketQuantity(2)
	store.SetSelectedLanguage("it")
	store.SetTickets([]session.Ticket{{Code: "T1", QRUrl: "u1"}, {Code: "T2", QRUrl: "u2"}})
	store.SetMuseum(&session.Museum{Name: "Test Museum", Code: "TESTMUSEUM"})

	d := NewDispatcher(relay.URL, store, nil)
	require.NoError(t, d.Submit("visitor@example.com"))

	waitForStatus(t, d, StatusSuccess)

	assert.Equal(t, "visitor@example.com", received.Email)
	assert.Len(t, received.Tickets, 2)
	assert.Equal(t, 2, received.OrderSummary.Quantity)
	assert.Equal(t, 10.0, received.OrderSummary.TotalPrice)
	require.NotNil(t, received.Museum)
	assert.Equal(t, "TESTMUSEUM", received.Museum.Code)
	// Italian mail copy travels with the payload.
	assert.Equal(t, "I tuoi biglietti per", received.Translations["emailSubject"])
}

func TestSubmit_ChurchUsesDonationTotal(t *testing.T) {
	var received RelayRequest
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	store := session.NewStore(nil, nil)
	store.SetMuseum(&session.Museum{Name: "St. Mary", IsChurch: true})
	store.SetDonationAmount(12)
	store.SetTickets([]session.Ticket{{Code: "T1"}})

	d := NewDispatcher(relay.URL, store, nil)
	require.NoError(t, d.Submit("visitor@example.com"))

	waitForStatus(t, d, StatusSuccess)
	assert.Equal(t, 12.0, received.OrderSummary.TotalPrice)
	assert.Equal(t, 12.0, received.OrderSummary.DonationAmount)
}

func TestSubmit_RelayFailureSetsError(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer relay.Close()

	d := NewDispatcher(relay.URL, session.NewStore(nil, nil), nil)
	require.NoError(t, d.Submit("visitor@example.com"))

	waitForStatus(t, d, StatusError)
}

func TestSubmit_SecondDispatchWhileInFlightRejected(t *testing.T) {
	release := make(chan struct{})
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	d := NewDispatcher(relay.URL, session.NewStore(nil, nil), nil)
	require.NoError(t, d.Submit("visitor@example.com"))

	err := d.Submit("visitor@example.com")
	assert.ErrorIs(t, err, ErrSendInFlight)

	close(release)
	waitForStatus(t, d, StatusSuccess)
}

func TestReset_DiscardsInFlightResult(t *testing.T) {
	var handled atomic.Bool
	release := make(chan struct{})
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		handled.Store(true)
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	d := NewDispatcher(relay.URL, session.NewStore(nil, nil), nil)
	require.NoError(t, d.Submit("visitor@example.com"))

	// Session reset while the relay call hangs.
	d.Reset()
	close(release)

	// The stale success must not surface in the fresh session.
	assert.Eventually(t, handled.Load, 2*time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool {
		return d.Status() == StatusSuccess
	}, 200*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, StatusIdle, d.Status())
}

func TestReset_AllowsNewDispatch(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer relay.Close()

	d := NewDispatcher(relay.URL, session.NewStore(nil, nil), nil)
	require.NoError(t, d.Submit("visitor@example.com"))
	waitForStatus(t, d, StatusSuccess)

	d.Reset()
	assert.Equal(t, StatusIdle, d.Status())

	require.NoError(t, d.Submit("visitor@example.com"))
	waitForStatus(t, d, StatusSuccess)
}
