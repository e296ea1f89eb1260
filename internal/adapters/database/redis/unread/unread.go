package unread

import (
	"context"
	"errors"
	"time"

	"github.com/feriapp/backend/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

const countTTL = time.Hour

// Storage caches per-user unread notification counts. It is only ever set
// from a database recount and invalidated on writes, so a stale entry can
// survive at most countTTL.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(ctx context.Context, userID string) (int64, error) {
	count, err := s.redis.Get(ctx, key(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, errorz.NotFound
	}
	return count, err
}

func (s *Storage) Set(ctx context.Context, userID string, count int64) error {
	return s.redis.Set(ctx, key(userID), count, countTTL).Err()
}

func (s *Storage) Invalidate(ctx context.Context, userID string) error {
	return s.redis.Del(ctx, key(userID)).Err()
}

func key(userID string) string {
	return "unread:" + userID
}
