package redisstore

import (
	"context"
	"time"

	"wallet-balances-reporter/internal/application"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RunStore reserves reporter run windows with SET NX. A reservation expires
// after TTL, so a window never stays claimed past its own length.
type RunStore struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ application.IdempotencyStore = (*RunStore)(nil)

func New(client *redis.Client, ttl time.Duration) *RunStore {
	return &RunStore{Client: client, TTL: ttl}
}

func (s *RunStore) TryReserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), s.TTL).Result()
	if err != nil {
		return false, errors.Wrapf(err, "redis: reserve %s", key)
	}
	return ok, nil
}

func (s *RunStore) Release(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "redis: release %s", key)
	}
	return nil
}
