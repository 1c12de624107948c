package flightcache

import "time"

// Hooks receive high-signal cache events.
// Implementations MUST be cheap and non-blocking; most are called with the
// cache mutex released but on the Get path. Wrap slow sinks with hooks/async.
type Hooks interface {
	// A new fetch was started.
	FetchStarted()
	// A caller attached to a fetch that was already in flight.
	FetchJoined()
	FetchSucceeded(d time.Duration)
	FetchFailed(d time.Duration, err error)

	// Invalidate was called while a fetch was in flight. That fetch will
	// still commit and the cache will be fresh again right after it.
	InvalidatedDuringFetch()

	// A held entry was dropped on read and the Get fell through to a fetch.
	// reason ∈ {"missing", "corrupt", "gen_mismatch", "value_decode", "load_error"}
	SelfHeal(storageKey, reason string)

	// Provider refused or failed to hold a value; it is kept on the heap instead.
	// err is nil for a plain backpressure rejection (ok=false).
	ProviderSetRejected(storageKey string, err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) FetchStarted()                     {}
func (NopHooks) FetchJoined()                      {}
func (NopHooks) FetchSucceeded(time.Duration)      {}
func (NopHooks) FetchFailed(time.Duration, error)  {}
func (NopHooks) InvalidatedDuringFetch()           {}
func (NopHooks) SelfHeal(string, string)           {}
func (NopHooks) ProviderSetRejected(string, error) {}
