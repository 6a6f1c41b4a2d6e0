package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettings struct {
	museumID    string
	ticketPrice float64

	savedMuseumID    string
	savedTicketPrice float64
}

func (f *fakeSettings) LoadMuseumID() (string, error)     { return f.museumID, nil }
func (f *fakeSettings) LoadTicketPrice() (float64, error) { return f.ticketPrice, nil }
func (f *fakeSettings) SaveMuseumID(id string) error {
	f.savedMuseumID = id
	return nil
}
func (f *fakeSettings) SaveTicketPrice(price float64) error {
	f.savedTicketPrice = price
	return nil
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore(nil, nil)

	assert.Equal(t, DefaultMuseumID, store.MuseumID())
	assert.Equal(t, float64(DefaultTicketPrice), store.TicketPrice())
	assert.Equal(t, MinTicketQuantity, store.TicketQuantity())
	assert.Equal(t, DefaultLanguage, store.SelectedLanguage())
	assert.Nil(t, store.Museum())
	assert.Empty(t, store.Tickets())
}

func TestNewStore_SeedsFromSettings(t *testing.T) {
	settings := &fakeSettings{museumID: "901", ticketPrice: 7.5}

	store := NewStore(settings, nil)

	assert.Equal(t, "901", store.MuseumID())
	assert.Equal(t, 7.5, store.TicketPrice())
}

func TestNewStore_IgnoresEmptySettings(t *testing.T) {
	settings := &fakeSettings{museumID: "", ticketPrice: 0}

	store := NewStore(settings, nil)

	assert.Equal(t, DefaultMuseumID, store.MuseumID())
	assert.Equal(t, float64(DefaultTicketPrice), store.TicketPrice())
}

func TestSetTicketQuantity_Clamped(t *testing.T) {
	store := NewStore(nil, nil)

	tests := []struct {
		name string
		set  int
		want int
	}{
		{"below floor", 0, 1},
		{"negative", -5, 1},
		{"floor", 1, 1},
		{"inside range", 7, 7},
		{"ceiling", 10, 10},
		{"above ceiling", 11, 10},
		{"far above ceiling", 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.SetTicketQuantity(tt.set)
			assert.Equal(t, tt.want, store.TicketQuantity())
		})
	}
}

func TestSetTicketPrice_IgnoresNonPositive(t *testing.T) {
	store := NewStore(nil, nil)
	store.SetTicketPrice(8)
	require.Equal(t, 8.0, store.TicketPrice())

	store.SetTicketPrice(0)
	assert.Equal(t, 8.0, store.TicketPrice())

	store.SetTicketPrice(-3)
	assert.Equal(t, 8.0, store.TicketPrice())
}

func TestSetters_MirrorToSettings(t *testing.T) {
	settings := &fakeSettings{}
	store := NewStore(settings, nil)

	store.SetMuseumID("314")
	store.SetTicketPrice(9)

	assert.Equal(t, "314", settings.savedMuseumID)
	assert.Equal(t, 9.0, settings.savedTicketPrice)
}

func TestResetPurchase(t *testing.T) {
	store := NewStore(nil, nil)
	store.SetMuseumID("901")
	store.SetSelectedLanguage("it")
	store.SetTicketPrice(6)
	store.SetTicketQuantity(4)
	store.SetDonationAmount(15)
	store.SetTickets([]Ticket{{Code: "A1", QRUrl: "u"}})
	store.SetError("boom")

	store.ResetPurchase()

	// Purchase state clears.
	assert.Equal(t, MinTicketQuantity, store.TicketQuantity())
	assert.Empty(t, store.Tickets())
	assert.Zero(t, store.DonationAmount())
	assert.Empty(t, store.Error())

	// Kiosk identity persists across purchases.
	assert.Equal(t, "901", store.MuseumID())
	assert.Equal(t, "it", store.SelectedLanguage())
	assert.Equal(t, 6.0, store.TicketPrice())
}

func TestTickets_ReturnsCopy(t *testing.T) {
	store := NewStore(nil, nil)
	store.SetTickets([]Ticket{{Code: "A1"}, {Code: "A2"}})

	got := store.Tickets()
	got[0].Code = "mutated"

	assert.Equal(t, "A1", store.Tickets()[0].Code)
}

func TestSnapshot(t *testing.T) {
	store := NewStore(nil, nil)
	store.SetSelectedLanguage("de")
	store.SetTicketQuantity(3)
	store.SetMuseum(&Museum{Name: "Test Museum", Code: "TESTMUSEUM"})

	snap := store.Snapshot()

	assert.Equal(t, "de", snap.SelectedLanguage)
	assert.Equal(t, 3, snap.TicketQuantity)
	require.NotNil(t, snap.Museum)
	assert.Equal(t, "TESTMUSEUM", snap.Museum.Code)
}
