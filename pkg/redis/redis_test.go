package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, RedisAdapter) {
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter(t.Name()+"-"+mr.Addr(), "test:", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)
	return mr, adapter
}

func TestRedisAdapter_KeyValue(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	ctx := context.Background()

	t.Run("set applies prefix and ttl", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "k", []byte("v"), time.Minute))
		assert.True(t, mr.Exists("test:k"))
		assert.Equal(t, time.Minute, mr.TTL("test:k"))

		v, err := adapter.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
	})

	t.Run("get missing returns nil error", func(t *testing.T) {
		_, err := adapter.Get(ctx, "missing")
		assert.ErrorIs(t, err, NilError)
	})

	t.Run("setnx only once", func(t *testing.T) {
		ok, err := adapter.SetNX(ctx, "lock", []byte("a"), time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = adapter.SetNX(ctx, "lock", []byte("b"), time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("del if equals respects owner", func(t *testing.T) {
		removed, err := adapter.DelIfEquals(ctx, "lock", []byte("b"))
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = adapter.DelIfEquals(ctx, "lock", []byte("a"))
		require.NoError(t, err)
		assert.True(t, removed)

		n, err := adapter.Exist(ctx, "lock")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestRedisAdapter_Stream(t *testing.T) {
	_, adapter := setupTestRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := adapter.XAdd(ctx, "events", 0, map[string]interface{}{"n": i})
		require.NoError(t, err)
	}

	n, err := adapter.XLen(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	msgs, err := adapter.XRange(ctx, "events", "-", "+")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "0", msgs[0].Values["n"])
}

func TestGetRedis_ReturnsNamedInstance(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	assert.Same(t, adapter, GetRedis(t.Name()+"-"+mr.Addr()))
}
