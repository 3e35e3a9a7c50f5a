package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"cinemax/internal/logger"
	"cinemax/internal/models"
)

const cartKeyPrefix = "cinemax_cart:"

// Redis persists the cart snapshot as a JSON blob keyed by session ID.
// It mirrors the browser localStorage layout: {items, coupons}.
type Redis struct {
	Client    *redis.Client
	SessionID string
	Logger    *logger.Logger
}

func NewRedis(client *redis.Client, sessionID string, log *logger.Logger) *Redis {
	return &Redis{
		Client:    client,
		SessionID: sessionID,
		Logger:    log,
	}
}

func (r *Redis) key() string {
	return cartKeyPrefix + r.SessionID
}

// Load restores the persisted cart. A missing key or an unparseable blob
// both come back as an empty snapshot; corruption must not crash the cart.
func (r *Redis) Load(ctx context.Context) (models.CartSnapshot, error) {
	var snap models.CartSnapshot

	raw, err := r.Client.Get(ctx, r.key()).Result()
	if err == redis.Nil {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("redis get: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		if r.Logger != nil {
			r.Logger.Warn("STORAGE", fmt.Sprintf("Discarding corrupt cart snapshot for session %s: %v", r.SessionID, err))
		}
		return models.CartSnapshot{}, nil
	}

	return snap, nil
}

// Save overwrites the persisted snapshot. No TTL: the cart survives until
// checkout clears it.
func (r *Redis) Save(ctx context.Context, snap models.CartSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := r.Client.Set(ctx, r.key(), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
