package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys for the two durable kiosk settings. Everything else about a
// session lives only in memory and dies with the purchase.
const (
	settingsKeyMuseumID    = "kiosk:museum_id"
	settingsKeyTicketPrice = "kiosk:ticket_price"
)

const settingsTimeout = 3 * time.Second

// SettingsStore mirrors the operator-configurable kiosk settings to durable
// storage. Implementations must tolerate being called synchronously from
// session setters.
type SettingsStore interface {
	LoadMuseumID() (string, error)
	LoadTicketPrice() (float64, error)
	SaveMuseumID(id string) error
	SaveTicketPrice(price float64) error
}

// RedisSettings persists kiosk settings in Redis.
type RedisSettings struct {
	client *redis.Client
}

// NewRedisSettings creates a settings store backed by the given Redis client.
func NewRedisSettings(client *redis.Client) *RedisSettings {
	return &RedisSettings{client: client}
}

func (r *RedisSettings) LoadMuseumID() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()

	return r.client.Get(ctx, settingsKeyMuseumID).Result()
}

func (r *RedisSettings) LoadTicketPrice() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, settingsKeyTicketPrice).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}

func (r *RedisSettings) SaveMuseumID(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()

	return r.client.Set(ctx, settingsKeyMuseumID, id, 0).Err()
}

func (r *RedisSettings) SaveTicketPrice(price float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()

	return r.client.Set(ctx, settingsKeyTicketPrice, strconv.FormatFloat(price, 'f', -1, 64), 0).Err()
}
