// Package asynchook moves flightcache hook calls off the Get path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{SelfHealEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cfg, _ := flightcache.New(loadConfig, flightcache.Options[Config]{
//	    TTL:   30 * time.Second,
//	    Hooks: hooks,
//	})
package asynchook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/flightcache"
)

// Hooks forwards events to inner from a fixed worker pool. When the queue is
// full the event is dropped and counted; the cache never blocks on a hook.
type Hooks struct {
	inner   flightcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against send-after-close
	closed  bool
	dropped atomic.Uint64
}

var _ flightcache.Hooks = (*Hooks)(nil)

func New(inner flightcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded on a full queue or after Close.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) FetchStarted()           { h.try(h.inner.FetchStarted) }
func (h *Hooks) FetchJoined()            { h.try(h.inner.FetchJoined) }
func (h *Hooks) InvalidatedDuringFetch() { h.try(h.inner.InvalidatedDuringFetch) }
func (h *Hooks) FetchSucceeded(d time.Duration) {
	h.try(func() { h.inner.FetchSucceeded(d) })
}
func (h *Hooks) FetchFailed(d time.Duration, err error) {
	h.try(func() { h.inner.FetchFailed(d, err) })
}
func (h *Hooks) SelfHeal(k, reason string) {
	h.try(func() { h.inner.SelfHeal(k, reason) })
}
func (h *Hooks) ProviderSetRejected(k string, err error) {
	h.try(func() { h.inner.ProviderSetRejected(k, err) })
}
