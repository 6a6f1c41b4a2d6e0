package operator

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"totem/internal/session"
	"totem/internal/shared/config"
)

type fakeMuseumService struct {
	refreshed int
	museum    *session.Museum
}

func (f *fakeMuseumService) Current(_ context.Context) *session.Museum { return f.museum }
func (f *fakeMuseumService) Refresh(_ context.Context) *session.Museum {
	f.refreshed++
	return f.museum
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Operator.PIN = "4321"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = time.Hour
	return cfg
}

func newTestService(t *testing.T, cfg *config.Config, store *session.Store, museums *fakeMuseumService) Service {
	t.Helper()
	svc, err := NewService(cfg, store, museums, nil)
	require.NoError(t, err)
	return svc
}

func TestLogin_CorrectPIN(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(t, cfg, session.NewStore(nil, nil), &fakeMuseumService{})

	resp, err := svc.Login(context.Background(), "4321")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	// Token carries the operator claim and is signed with the shared secret.
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "operator", claims.Type)
	assert.Equal(t, "totem", claims.Issuer)
}

func TestLogin_WrongPIN(t *testing.T) {
	svc := newTestService(t, testConfig(), session.NewStore(nil, nil), &fakeMuseumService{})

	_, err := svc.Login(context.Background(), "0000")

	assert.ErrorIs(t, err, ErrInvalidPIN)
}

func TestUpdateSettings_MuseumChangeRefetches(t *testing.T) {
	store := session.NewStore(nil, nil)
	museums := &fakeMuseumService{museum: &session.Museum{Name: "New", Code: "NEW"}}
	svc := newTestService(t, testConfig(), store, museums)

	snap, err := svc.UpdateSettings(context.Background(), &SettingsRequest{MuseumID: "901"})

	require.NoError(t, err)
	assert.Equal(t, "901", store.MuseumID())
	assert.Equal(t, "901", snap.MuseumID)
	assert.Equal(t, 1, museums.refreshed)
}

func TestUpdateSettings_SameMuseumSkipsRefetch(t *testing.T) {
	store := session.NewStore(nil, nil)
	museums := &fakeMuseumService{}
	svc := newTestService(t, testConfig(), store, museums)

	_, err := svc.UpdateSettings(context.Background(), &SettingsRequest{MuseumID: store.MuseumID()})

	require.NoError(t, err)
	assert.Zero(t, museums.refreshed)
}

func TestUpdateSettings_TicketPrice(t *testing.T) {
	store := session.NewStore(nil, nil)
	svc := newTestService(t, testConfig(), store, &fakeMuseumService{})

	snap, err := svc.UpdateSettings(context.Background(), &SettingsRequest{TicketPrice: 8.5})

	require.NoError(t, err)
	assert.Equal(t, 8.5, store.TicketPrice())
	assert.Equal(t, 8.5, snap.TicketPrice)
}

func TestUpdateSettings_IgnoresNonPositivePrice(t *testing.T) {
	store := session.NewStore(nil, nil)
	svc := newTestService(t, testConfig(), store, &fakeMuseumService{})
	before := store.TicketPrice()

	_, err := svc.UpdateSettings(context.Background(), &SettingsRequest{TicketPrice: -1})

	require.NoError(t, err)
	assert.Equal(t, before, store.TicketPrice())
}
