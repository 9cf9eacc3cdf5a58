package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"food-catalog/catalog-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// versionTTL outlives any in-flight read so a version never resets under a
// reader that still holds it.
const versionTTL = 24 * time.Hour

var errStaleVersion = errors.New("cache version moved")

// RedisCache keeps read-through copies of restaurants keyed by code, next to
// a per-code version counter bumped on every invalidation.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) RestaurantKey(code string) string {
	return "restaurant:" + code
}

func (c *RedisCache) VersionKey(code string) string {
	return "restaurant:version:" + code
}

// Get returns nil without an error on a miss. The version is returned either
// way and is what Set expects back.
func (c *RedisCache) Get(ctx context.Context, code string) (*domain.Restaurant, int64, error) {
	values, err := c.Client.MGet(ctx, c.RestaurantKey(code), c.VersionKey(code)).Result()
	if err != nil {
		return nil, 0, err
	}

	var version int64
	if raw, ok := values[1].(string); ok {
		if version, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, err
		}
	}

	payload, ok := values[0].(string)
	if !ok {
		return nil, version, nil
	}
	var restaurant domain.Restaurant
	if err := json.Unmarshal([]byte(payload), &restaurant); err != nil {
		return nil, version, err
	}
	return &restaurant, version, nil
}

// Set is a no-op when the version moved since the caller's Get.
func (c *RedisCache) Set(ctx context.Context, restaurant *domain.Restaurant, version int64) error {
	payload, err := json.Marshal(restaurant)
	if err != nil {
		return err
	}

	versionKey := c.VersionKey(restaurant.Code)
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.RestaurantKey(restaurant.Code), payload, c.TTL)
			return nil
		})
		return err
	}, versionKey)

	if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}
	pipe := c.Client.TxPipeline()
	for _, code := range codes {
		pipe.Incr(ctx, c.VersionKey(code))
		pipe.Expire(ctx, c.VersionKey(code), versionTTL)
		pipe.Del(ctx, c.RestaurantKey(code))
	}
	_, err := pipe.Exec(ctx)
	return err
}
