package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/pkg/helpers"
)

const (
	defaultCacheTTL = 5 * time.Minute
	// generationTTL must outlive any cached entry.
	generationTTL = 24 * time.Hour
)

func productKey(id int64) string { return "product:" + strconv.FormatInt(id, 10) }
func userKey(id int64) string    { return "user:" + strconv.FormatInt(id, 10) }

// Cache failures never fail a request; the repository stays the source of truth.

func cacheGet[T any](ctx context.Context, rdb *redis.Client, logger *logrus.Logger, key string, dest *T) bool {
	if rdb == nil {
		return false
	}
	found, err := helpers.RedisGetJSON(ctx, rdb, key, dest)
	if err != nil {
		logger.WithError(err).WithField("key", key).Warn("redis get failed")
		return false
	}
	return found
}

// cacheGeneration is read before the repository load. cacheFill only lands if
// the generation is unchanged, so a load that raced a write cannot bring the
// old value back. false means skip the fill.
func cacheGeneration(ctx context.Context, rdb *redis.Client, logger *logrus.Logger, key string) (int64, bool) {
	if rdb == nil {
		return 0, false
	}
	gen, err := helpers.RedisGeneration(ctx, rdb, key)
	if err != nil {
		logger.WithError(err).WithField("key", key).Warn("redis get generation failed")
		return 0, false
	}
	return gen, true
}

func cacheFill(ctx context.Context, rdb *redis.Client, logger *logrus.Logger, key string, value any, ttl time.Duration, gen int64) {
	if rdb == nil {
		return
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	err := helpers.RedisSetJSONAt(ctx, rdb, key, value, ttl, gen)
	switch {
	case err == nil:
	case errors.Is(err, helpers.ErrStaleGeneration):
		logger.WithField("key", key).Debug("cache fill skipped; key changed during load")
	default:
		logger.WithError(err).WithField("key", key).Warn("redis set failed")
	}
}

// cacheInvalidate runs after every successful write.
func cacheInvalidate(ctx context.Context, rdb *redis.Client, logger *logrus.Logger, key string) {
	if rdb == nil {
		return
	}
	if err := helpers.RedisInvalidate(ctx, rdb, key, generationTTL); err != nil {
		logger.WithError(err).WithField("key", key).Warn("redis invalidate failed")
	}
}

func orDiscard(logger *logrus.Logger) *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NewDiscardLogger()
}
