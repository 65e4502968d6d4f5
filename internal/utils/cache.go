package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error inspection
	"strconv"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CacheTTL is how long cached reads stay valid
const CacheTTL = 60 * time.Second

// Cache keys
const (
	MenuCacheKey = "menu:all" // Full menu listing
)

// errStaleFill aborts a fill whose source row changed after it was read
var errStaleFill = errors.New("cache fill raced an invalidation")

// WalletCacheKey returns the cache key of a user's wallet balance
func WalletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.FormatUint(uint64(userID), 10)
}

// versionKey holds the invalidation counter of key
func versionKey(key string) string {
	return key + ":ver"
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like a permanent miss.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err // Corrupt entry counts as a miss
	}
	return true, nil
}

// CacheVersion returns the invalidation counter of key. Read it before
// loading from the store and pass it to SetCacheIfCurrent.
func CacheVersion(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	v, err := rdb.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil // Never invalidated
	}
	return v, err
}

// SetCacheIfCurrent stores value unless key was invalidated since version
// was read. It reports whether the value was stored.
func SetCacheIfCurrent(ctx context.Context, rdb *redis.Client, key string, version int64, value any, ttl time.Duration) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return false, err
	}
	verKey := versionKey(key)
	// WATCH makes the EXEC fail if an invalidation lands after the check
	err = rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, ttl) // Set value in Redis with TTL
			return nil
		})
		return err
	}, verKey)
	if errors.Is(err, errStaleFill) || errors.Is(err, redis.TxFailedErr) {
		return false, nil // A newer write owns the key
	}
	return err == nil, err
}

// DeleteCache invalidates keys: their counters are bumped so in-flight
// fills are discarded, then the values are removed
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, versionKey(key))
		}
		pipe.Del(ctx, keys...) // Delete keys from Redis
		return nil
	})
	return err
}

// PingCache reports whether Redis answers; a nil client is reported as healthy
func PingCache(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	return rdb.Ping(ctx).Err()
}
