package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient uses short timeouts so the cache and limiter fail open quickly when Redis is down.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// RedisCached serves key from Redis as JSON, otherwise calls load and stores the result for ttl.
// Redis failures go to onErr (which may be nil) and never fail the call. A nil client always loads.
func RedisCached[T any](ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, load func(context.Context) (T, error), onErr func(op string, err error)) (T, error) {
	report := func(op string, err error) {
		if onErr != nil {
			onErr(op, err)
		}
	}

	if rdb != nil {
		var cached T
		ok, err := redisGetJSON(ctx, rdb, key, &cached)
		if err != nil {
			report("read", err)
		}
		if ok {
			return cached, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if rdb != nil && ttl > 0 {
		if err := redisSetJSON(ctx, rdb, key, v, ttl); err != nil {
			report("write", err)
		}
	}
	return v, nil
}

func redisSetJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// redisGetJSON decodes key into dest. A missing key reports (false, nil).
func redisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

func RedisDel(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}
