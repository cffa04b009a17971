package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quote-quiz/internal/domain/ports/repository"
)

var _ repository.CooldownStore = (*CooldownStore)(nil)

// CooldownStore keeps per-user guess cooldown marks in Redis.
// Key layout: "<userId>:failed_attempt" with the mark timestamp as value.
// Expiry is left entirely to Redis TTLs; losing a key early only lets the
// user retry sooner, never corrupts scoring.
type CooldownStore struct {
	client RedisClient
	ttl    time.Duration
	now    func() time.Time
}

func NewCooldownStore(client RedisClient, ttl time.Duration) *CooldownStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &CooldownStore{client: client, ttl: ttl, now: time.Now}
}

func cooldownKey(userID int64) string {
	return fmt.Sprintf("%d:failed_attempt", userID)
}

func (s *CooldownStore) IsActive(ctx context.Context, userID int64) (bool, error) {
	_, err := s.client.Get(ctx, cooldownKey(userID))
	if err != nil {
		if errors.Is(err, Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *CooldownStore) Mark(ctx context.Context, userID int64) error {
	value := s.now().UTC().Format(time.RFC3339)
	return s.client.Set(ctx, cooldownKey(userID), value, s.ttl)
}
