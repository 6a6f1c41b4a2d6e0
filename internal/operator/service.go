package operator

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"totem/internal/museum"
	"totem/internal/session"
	"totem/internal/shared/config"
	"totem/pkg/logger"
)

var (
	ErrInvalidPIN = errors.New("invalid operator pin")
)

// Service authenticates operators and applies provisioning changes.
// The PIN is configured at deploy time; only its bcrypt hash stays in memory.
type Service interface {
	Login(ctx context.Context, pin string) (*LoginResponse, error)
	UpdateSettings(ctx context.Context, req *SettingsRequest) (*session.Snapshot, error)
}

type service struct {
	pinHash []byte
	config  *config.Config
	store   *session.Store
	museums museum.Service
	log     *logger.Logger
}

// NewService hashes the configured PIN and wires the provisioning paths.
func NewService(cfg *config.Config, store *session.Store, museums museum.Service, log *logger.Logger) (Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Operator.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &service{
		pinHash: hash,
		config:  cfg,
		store:   store,
		museums: museums,
		log:     log,
	}, nil
}

func (s *service) Login(ctx context.Context, pin string) (*LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		return nil, ErrInvalidPIN
	}

	now := time.Now()
	claims := JWTClaims{
		Type: "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.ExpiresIn)),
			Issuer:    "totem",
			Subject:   "operator",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.JWT.ExpiresIn.Seconds()),
	}, nil
}

// UpdateSettings applies museum id and ticket price changes. A museum id
// change triggers a re-fetch so the kiosk shows the new museum immediately.
func (s *service) UpdateSettings(ctx context.Context, req *SettingsRequest) (*session.Snapshot, error) {
	if req.MuseumID != "" && req.MuseumID != s.store.MuseumID() {
		s.store.SetMuseumID(req.MuseumID)
		s.museums.Refresh(ctx)
		if s.log != nil {
			s.log.InfoWithContext(ctx, "operator changed museum id", map[string]interface{}{
				"museum_id": req.MuseumID,
			})
		}
	}

	if req.TicketPrice > 0 {
		s.store.SetTicketPrice(req.TicketPrice)
	}

	snap := s.store.Snapshot()
	return &snap, nil
}
