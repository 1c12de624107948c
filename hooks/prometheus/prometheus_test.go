package prometheus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/flightcache"
)

func TestCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := New(reg, "config")
	require.NoError(t, err)

	h.FetchStarted()
	h.FetchSucceeded(10 * time.Millisecond)
	h.FetchFailed(time.Second, errors.New("boom"))
	h.FetchFailed(time.Second, errors.New("boom"))
	h.FetchJoined()
	h.SelfHeal("flight:config:1", "corrupt")
	h.ProviderSetRejected("flight:config:1", nil)
	h.InvalidatedDuringFetch()

	assert.Equal(t, 1.0, testutil.ToFloat64(h.fetchTotal.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(h.fetchTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.fetchJoined))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.selfHealTotal.WithLabelValues("corrupt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.setRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.invalidatedInFlight))

	n, err := testutil.GatherAndCount(reg, "flightcache_fetch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // one series per result
}

func TestSharedRegistryNeedsDistinctNamespaces(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "config")
	require.NoError(t, err)
	_, err = New(reg, "tokens")
	require.NoError(t, err)

	_, err = New(reg, "config")
	var already prometheus.AlreadyRegisteredError
	require.ErrorAs(t, err, &already)

	require.Panics(t, func() { MustNew(reg, "tokens") })
}

func TestWiredIntoCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := MustNew(reg, "provider-list")

	var calls atomic.Int32
	cc, err := flightcache.New(func(context.Context) ([]string, error) {
		if calls.Add(1) == 2 {
			return nil, errors.New("upstream down")
		}
		return []string{"a", "b"}, nil
	}, flightcache.Options[[]string]{TTL: time.Hour, Hooks: h})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cc.Get(ctx)
	require.NoError(t, err)
	cc.Invalidate()
	_, err = cc.Get(ctx)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.fetchTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.fetchTotal.WithLabelValues("error")))
}
