// Package providertest checks that a provider.Provider honors the contract
// flightcache relies on. Adapters call Run from their own tests.
package providertest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pr "github.com/unkn0wn-root/flightcache/provider"
)

// Run exercises miss, hit, byte transparency, overwrite and delete.
// The provider must be empty and must accept writes of cost 1.
func Run(t *testing.T, p pr.Provider) {
	t.Helper()
	ctx := t.Context()

	_, ok, err := p.Get(ctx, "flight:test:missing")
	require.NoError(t, err)
	require.False(t, ok, "miss expected on empty provider")

	// binary payload with zero bytes and a non-UTF-8 tail
	payload := []byte{'F', 'L', 'C', 'H', 0, 1, 0, 0xff, 0xfe}
	ok, err = p.Set(ctx, "flight:test:k", payload, 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "write refused")

	got, ok, err := p.Get(ctx, "flight:test:k")
	require.NoError(t, err)
	require.True(t, ok, "hit expected after Set")
	require.True(t, bytes.Equal(payload, got), "provider must be byte-for-byte transparent")

	ok, err = p.Set(ctx, "flight:test:k", []byte("v2"), 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	got, ok, err = p.Get(ctx, "flight:test:k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v2"), got)

	require.NoError(t, p.Del(ctx, "flight:test:k"))
	_, ok, err = p.Get(ctx, "flight:test:k")
	require.NoError(t, err)
	require.False(t, ok, "miss expected after Del")

	// deleting a missing key is not an error
	require.NoError(t, p.Del(ctx, "flight:test:k"))
}
