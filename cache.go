package flightcache

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/unkn0wn-root/flightcache/internal/util"
)

// every instance has exactly one value, so one singleflight key is enough
const flightKey = "v"

type cache[V any] struct {
	ns    string
	ttl   time.Duration
	now   func() time.Time
	fetch FetchFunc[V]
	log   Logger
	hooks Hooks

	sf singleflight.Group

	mu         sync.Mutex
	heap       V         // held value when onHeap
	onHeap     bool      // false => value lives in hold (if hasValue)
	hasValue   bool      // a fetch has committed at least once
	syncedAt   time.Time // zero => stale (never fetched or invalidated)
	lastSynced time.Time // floor for syncedAt; survives Invalidate
	gen        uint64    // bumped on every commit
	flying     bool
	committing bool // the flight is writing gen+1 to the holder

	hold          holder[V]
	closeProvider bool
	closeOnce     sync.Once
	closeErr      error

	stats counters
}

func newCache[V any](fetch FetchFunc[V], opts Options[V]) (*cache[V], error) {
	if fetch == nil {
		return nil, ErrNilFetch
	}
	if opts.TTL < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTTL, opts.TTL)
	}
	if opts.Provider != nil && opts.Codec == nil {
		return nil, ErrCodecRequired
	}

	c := &cache[V]{
		fetch:         fetch,
		closeProvider: opts.CloseProvider,
	}

	// defaults
	c.ttl = coalesce[time.Duration](opts.TTL, DefaultTTL)
	c.ns = coalesce[string](opts.Namespace, DefaultNamespace)
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if opts.Clock != nil {
		c.now = opts.Clock
	} else {
		c.now = time.Now
	}

	if opts.Provider != nil {
		c.hold = holder[V]{
			provider: opts.Provider,
			codec:    opts.Codec,
			key:      util.StorageKey(c.ns, uuid.NewString()),
			ttl:      c.ttl,
			cost:     opts.ComputeSetCost,
		}
		if c.hold.cost == nil {
			c.hold.cost = func(string, []byte) int64 { return 1 }
		}
	}
	return c, nil
}

func (c *cache[V]) Get(ctx context.Context) (V, error) {
	if v, ok := c.cached(ctx); ok {
		c.stats.hits.Add(1)
		return v, nil
	}

	// flying is set once the flight is inside refresh, so a caller that lands
	// between the starter's DoChan and that point is counted as a starter, and
	// one that reads it just before the commit forgets the flight is counted
	// as a joiner. Only Stats.Joins and FetchJoined see the difference.
	c.mu.Lock()
	joined := c.flying
	c.mu.Unlock()

	// The flight outlives any single waiter: it runs on the starter's
	// context values but never on its cancellation.
	fctx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(flightKey, func() (any, error) {
		return c.refresh(fctx)
	})
	if joined {
		c.stats.joins.Add(1)
		c.hooks.FetchJoined()
	}

	var zero V
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *cache[V]) Invalidate() {
	c.mu.Lock()
	c.syncedAt = time.Time{}
	flying := c.flying
	c.mu.Unlock()

	c.stats.invalidations.Add(1)
	if flying {
		// the running fetch will still commit and make the cache fresh again
		c.hooks.InvalidatedDuringFetch()
		c.log.Debug("invalidate raced with in-flight fetch", Fields{"ns": c.ns})
	}
}

func (c *cache[V]) SyncedAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncedAt, !c.syncedAt.IsZero()
}

func (c *cache[V]) Stats() Stats { return c.stats.snapshot() }

func (c *cache[V]) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		if c.hold.enabled() && c.closeProvider {
			c.closeErr = c.hold.provider.Close(ctx)
		}
	})
	return c.closeErr
}

// freshLocked must be called with c.mu held.
func (c *cache[V]) freshLocked() bool {
	if !c.hasValue || c.syncedAt.IsZero() {
		return false
	}
	return c.now().Before(c.syncedAt.Add(c.ttl))
}

// cached returns the held value if it is fresh and readable.
// A provider-held entry that cannot be read is dropped and the cache is
// marked stale, so the caller falls through to a fetch.
func (c *cache[V]) cached(ctx context.Context) (V, bool) {
	var zero V
	for {
		c.mu.Lock()
		if !c.freshLocked() {
			c.mu.Unlock()
			return zero, false
		}
		if c.onHeap {
			v := c.heap
			c.mu.Unlock()
			return v, true
		}
		gen, syncedAt := c.gen, c.syncedAt
		c.mu.Unlock()

		v, reason, err := c.hold.load(ctx, gen, syncedAt)
		if reason == "" {
			return v, true
		}
		if c.selfHeal(ctx, gen, reason, err) {
			return zero, false
		}
		// a newer commit replaced the entry while we were reading it
	}
}

// selfHeal marks generation gen stale and drops its entry. It reports false,
// touching nothing, when gen is no longer current. While a commit is writing
// the next generation it reports a plain miss: the entry read may be the new
// frame, and the caller joins the flight that is publishing it.
func (c *cache[V]) selfHeal(ctx context.Context, gen uint64, reason string, cause error) bool {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return false
	}
	if c.committing {
		c.mu.Unlock()
		return true
	}
	c.syncedAt = time.Time{}
	c.mu.Unlock()

	switch reason {
	case reasonCorrupt, reasonGenMismatch, reasonValueDecode:
		if err := c.hold.drop(ctx); err != nil {
			c.log.Warn("self-heal delete failed", Fields{"key": c.hold.key, "err": err})
		}
	}

	c.stats.selfHeals.Add(1)
	c.hooks.SelfHeal(c.hold.key, reason)
	c.log.Debug("held value dropped", Fields{"key": c.hold.key, "reason": reason, "err": cause})
	return true
}

// refresh runs inside the flight. Only one refresh executes at a time.
func (c *cache[V]) refresh(ctx context.Context) (V, error) {
	// a previous flight may have committed between our freshness check and
	// joining the group
	if v, ok := c.cached(ctx); ok {
		return v, nil
	}

	c.mu.Lock()
	c.flying = true
	c.mu.Unlock()

	c.stats.fetches.Add(1)
	c.hooks.FetchStarted()
	c.log.Debug("fetch started", Fields{"ns": c.ns})

	start := time.Now()
	v, err := c.call(ctx)
	d := time.Since(start)

	if err != nil {
		// value and syncedAt stay as they were; the next Get retries
		c.mu.Lock()
		c.flying = false
		c.sf.Forget(flightKey)
		c.mu.Unlock()

		c.stats.failures.Add(1)
		c.hooks.FetchFailed(d, err)
		c.log.Warn("fetch failed", Fields{"ns": c.ns, "err": err, "took": d})
		var zero V
		return zero, err
	}

	c.commit(ctx, v)
	c.hooks.FetchSucceeded(d)
	return v, nil
}

func (c *cache[V]) call(ctx context.Context) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return c.fetch(ctx)
}

// commit publishes v as the fresh value and ends the flight.
func (c *cache[V]) commit(ctx context.Context, v V) {
	c.mu.Lock()
	gen := c.gen + 1
	at := c.now()
	if at.Before(c.lastSynced) {
		at = c.lastSynced
	}
	c.committing = true
	c.mu.Unlock()

	onHeap := true
	if c.hold.enabled() {
		// provider I/O stays outside the lock; commits never overlap
		if err := c.hold.store(ctx, gen, at, v); err != nil {
			var cause error
			var pe *ProviderError
			if errors.As(err, &pe) {
				cause = pe.Err
			}
			c.hooks.ProviderSetRejected(c.hold.key, cause)
			c.log.Warn("provider did not hold value; keeping it on heap", Fields{"key": c.hold.key, "err": err})
		} else {
			onHeap = false
		}
	}

	c.mu.Lock()
	c.gen = gen
	c.syncedAt = at
	c.lastSynced = at
	c.hasValue = true
	if onHeap {
		c.heap = v
	} else {
		var zero V
		c.heap = zero
	}
	c.onHeap = onHeap
	c.flying = false
	c.committing = false
	// later Gets must start a new flight, not join this finished one
	c.sf.Forget(flightKey)
	c.mu.Unlock()
}
