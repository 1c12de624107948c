package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/flightcache"
	"github.com/unkn0wn-root/flightcache/codec"
)

func unreachable(t *testing.T) goredis.UniversalClient {
	t.Helper()
	c := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newServer(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestKeyDecodes(t *testing.T) {
	mr, c := newServer(t)
	require.NoError(t, mr.Set("app:config", `{"region":"eu","mode":"fast"}`))

	got, err := Key(c, "app:config", codec.JSON[map[string]string]{})(t.Context())
	require.NoError(t, err)
	require.Equal(t, map[string]string{"region": "eu", "mode": "fast"}, got)
}

func TestKeyMissing(t *testing.T) {
	_, c := newServer(t)
	_, err := Key(c, "app:config", codec.String{})(t.Context())
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.ErrorContains(t, err, `"app:config"`)
}

func TestKeyDecodeError(t *testing.T) {
	mr, c := newServer(t)
	require.NoError(t, mr.Set("app:config", "{"))

	_, err := Key(c, "app:config", codec.JSON[map[string]string]{})(t.Context())
	require.ErrorContains(t, err, `decode "app:config"`)
	require.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestHash(t *testing.T) {
	mr, c := newServer(t)
	fetch := Hash(c, "app:flags")

	_, err := fetch(t.Context())
	require.ErrorIs(t, err, ErrKeyNotFound, "empty hash")

	mr.HSet("app:flags", "beta", "on", "dark", "off")
	got, err := fetch(t.Context())
	require.NoError(t, err)
	require.Equal(t, map[string]string{"beta": "on", "dark": "off"}, got)
}

// A change in Redis is picked up after Invalidate, not before.
func TestKeyRefreshThroughCache(t *testing.T) {
	mr, c := newServer(t)
	require.NoError(t, mr.Set("app:config", "v1"))

	cc, err := flightcache.New(Key(c, "app:config", codec.String{}),
		flightcache.Options[string]{TTL: time.Minute})
	require.NoError(t, err)
	defer cc.Close(context.Background())

	v, err := cc.Get(t.Context())
	require.NoError(t, err)
	require.Equal(t, "v1", v)

	require.NoError(t, mr.Set("app:config", "v2"))
	v, err = cc.Get(t.Context())
	require.NoError(t, err)
	require.Equal(t, "v1", v, "fresh value must not hit Redis")

	cc.Invalidate()
	v, err = cc.Get(t.Context())
	require.NoError(t, err)
	require.Equal(t, "v2", v)
	require.Equal(t, uint64(2), cc.Stats().Fetches)
}

func TestKeyTransportErrorIsWrapped(t *testing.T) {
	fetch := Key(unreachable(t), "app:config", codec.String{})
	_, err := fetch(t.Context())
	require.Error(t, err)
	require.ErrorContains(t, err, `get "app:config"`)
	require.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestHashTransportError(t *testing.T) {
	_, err := Hash(unreachable(t), "app:flags")(t.Context())
	require.ErrorContains(t, err, `hgetall "app:flags"`)
}

// The cache hands the source error back unchanged, and every waiter sees it.
func TestKeyBehindCache(t *testing.T) {
	cc, err := flightcache.New(Key(unreachable(t), "app:config", codec.JSON[map[string]string]{}),
		flightcache.Options[map[string]string]{TTL: time.Minute})
	require.NoError(t, err)
	defer cc.Close(context.Background())

	_, err = cc.Get(t.Context())
	require.Error(t, err)
	require.Equal(t, uint64(1), cc.Stats().Failures)
	_, ok := cc.SyncedAt()
	require.False(t, ok)
}
