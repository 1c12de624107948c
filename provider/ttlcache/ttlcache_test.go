package ttlcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/flightcache/provider/providertest"
)

func TestContract(t *testing.T) {
	p := New(Config{Capacity: 16})
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	providertest.Run(t, p)
}

func TestPerEntryTTL(t *testing.T) {
	p := New(Config{})
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	ctx := t.Context()

	_, err := p.Set(ctx, "flight:test:short", []byte("a"), 1, 30*time.Millisecond)
	require.NoError(t, err)
	_, err = p.Set(ctx, "flight:test:forever", []byte("b"), 1, 0)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, hit, _ := p.Get(ctx, "flight:test:short")
		return !hit
	}, 2*time.Second, 10*time.Millisecond)

	got, ok, err := p.Get(ctx, "flight:test:forever")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("b"), got)
}

func TestCloseTwice(t *testing.T) {
	p := New(Config{})
	require.NoError(t, p.Close(context.Background()))
	require.NoError(t, p.Close(context.Background()))
}
