package storage

import (
	"context"
	"errors"

	"food-catalog/status-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const OpenSetKey = "restaurants:open"

func StatusKey(code string) string {
	return "restaurant:status:" + code
}

// Store projects restaurant lifecycle state into Redis: one hash per
// restaurant plus a set of the codes that are currently open.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// SaveStatus ignores events older than the one already projected.
func (s *Store) SaveStatus(ctx context.Context, event domain.LifecycleEvent) error {
	key := StatusKey(event.Code)
	stamp := event.Timestamp.UnixNano()

	stored, err := s.rdb.HGet(ctx, key, "updated_at").Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && stored > stamp {
		return nil
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"is_active":  event.IsActive,
		"is_open":    event.IsOpen,
		"last_event": event.Type,
		"updated_at": stamp,
	})
	if event.IsOpen {
		pipe.SAdd(ctx, OpenSetKey, event.Code)
	} else {
		pipe.SRem(ctx, OpenSetKey, event.Code)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) RemoveStatus(ctx context.Context, code string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, StatusKey(code))
	pipe.SRem(ctx, OpenSetKey, code)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) OpenRestaurants(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, OpenSetKey).Result()
}
