package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheRoundTrip(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	type payload struct {
		Wallet string `json:"wallet"`
	}
	stored, err := SetCacheIfCurrent(ctx, rdb, WalletCacheKey(7), 0, payload{Wallet: "12.50"}, CacheTTL)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, mr.Exists("wallet:user:7"))

	var got payload
	found, err := GetCache(ctx, rdb, WalletCacheKey(7), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "12.50", got.Wallet)

	mr.FastForward(CacheTTL + time.Second)
	found, err = GetCache(ctx, rdb, WalletCacheKey(7), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCache(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set(MenuCacheKey, "[1,2]"))
	require.NoError(t, mr.Set(WalletCacheKey(1), `"1.00"`))

	require.NoError(t, DeleteCache(ctx, rdb, MenuCacheKey, WalletCacheKey(1)))
	assert.False(t, mr.Exists(MenuCacheKey))
	assert.False(t, mr.Exists(WalletCacheKey(1)))

	v, err := CacheVersion(ctx, rdb, MenuCacheKey)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestFillAfterInvalidationIsDiscarded(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	key := WalletCacheKey(3)

	// A reader loads 100 from the store, then a write commits and invalidates
	v, err := CacheVersion(ctx, rdb, key)
	require.NoError(t, err)
	require.NoError(t, DeleteCache(ctx, rdb, key))

	stored, err := SetCacheIfCurrent(ctx, rdb, key, v, "100", CacheTTL)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists(key))

	// A reader that started after the write may fill
	v, err = CacheVersion(ctx, rdb, key)
	require.NoError(t, err)
	stored, err = SetCacheIfCurrent(ctx, rdb, key, v, "40", CacheTTL)
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestNilClientDisablesCache(t *testing.T) {
	ctx := context.Background()
	var dest string
	found, err := GetCache(ctx, nil, MenuCacheKey, &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	stored, err := SetCacheIfCurrent(ctx, nil, MenuCacheKey, 0, "x", CacheTTL)
	assert.NoError(t, err)
	assert.False(t, stored)
	assert.NoError(t, DeleteCache(ctx, nil, MenuCacheKey))
	assert.NoError(t, PingCache(ctx, nil))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "admin", "secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
}

func TestGenerateJWTWithoutSecret(t *testing.T) {
	_, err := GenerateJWT(1, "user", "")
	assert.Error(t, err)
}
