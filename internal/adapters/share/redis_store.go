package share

import (
	"context"
	"errors"
	"fmt"
	"time"
	"venue-finder-service/internal/domain"
	"venue-finder-service/internal/platform/obs"
	"venue-finder-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "share:"

// RedisStore keeps snapshots under share:<id>. A zero TTL never expires.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, snapshot domain.ShareSnapshot) (err error) {
	defer obs.Time(ctx, "shareStore.redis.Save")(&err)

	snapshot, err = prepare(snapshot)
	if err != nil {
		return err
	}
	b := encode(snapshot)

	ok, err := s.rdb.SetNX(ctx, redisKeyPrefix+snapshot.ID, b, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", snapshot.ID, err)
	}
	if !ok {
		return fmt.Errorf("save snapshot %q: %w", snapshot.ID, ErrDuplicateID)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (_ domain.ShareSnapshot, err error) {
	defer obs.Time(ctx, "shareStore.redis.Load")(&err)

	b, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ShareSnapshot{}, fmt.Errorf("load snapshot %q: %w", id, domain.ErrShareLinkNotFound)
	}
	if err != nil {
		return domain.ShareSnapshot{}, fmt.Errorf("load snapshot %q: %w", id, err)
	}
	return decode(id, b)
}

// Ping reports whether the backing Redis server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

var _ ports.ShareStore = (*RedisStore)(nil)
