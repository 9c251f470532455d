package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// PingRedis reports whether the server answers within two seconds.
func PingRedis(ctx context.Context, rdb *redis.Client) error {
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return rdb.Ping(c).Err()
}

// ErrStaleGeneration is returned by RedisSetJSONAt when the key was
// invalidated after the caller read its generation.
var ErrStaleGeneration = errors.New("redis: stale generation")

func generationKey(key string) string { return key + ":gen" }

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, c getter, key string) (int64, error) {
	gen, err := c.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// RedisGeneration reads the invalidation counter of key. Zero means never invalidated.
func RedisGeneration(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	return readGeneration(ctx, rdb, key)
}

// RedisSetJSONAt stores value only while key is still at generation gen.
// The check and the write run under WATCH, so a concurrent RedisInvalidate
// makes it return ErrStaleGeneration instead of writing.
func RedisSetJSONAt(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration, gen int64) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	err = rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != gen {
			return ErrStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, ttl)
			return nil
		})
		return err
	}, generationKey(key))
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleGeneration
	}
	return err
}

// RedisInvalidate bumps the generation of key and deletes it in one transaction.
// genTTL bounds how long the counter lives; it must exceed any value TTL.
func RedisInvalidate(ctx context.Context, rdb *redis.Client, key string, genTTL time.Duration) error {
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(key))
		pipe.Expire(ctx, generationKey(key), genTTL)
		pipe.Del(ctx, key)
		return nil
	})
	return err
}

// RedisGetJSON decodes key into dest. A missing key is (false, nil).
func RedisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
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
