package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps Idempotency-Key headers to the complaint they
// created. Key format: idem:complaint:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewIdempotencyStore(client redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Lookup returns the complaint id stored for key.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records complaintID for key unless the key is already taken.
func (s *IdempotencyStore) Remember(ctx context.Context, key, complaintID string) error {
	if err := s.client.SetNX(ctx, s.key(key), complaintID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(k string) string {
	return "idem:complaint:" + k
}
