package flightcache

import (
	"bytes"
	"context"
	"time"

	c "github.com/unkn0wn-root/flightcache/codec"
	"github.com/unkn0wn-root/flightcache/internal/wire"
	pr "github.com/unkn0wn-root/flightcache/provider"
)

const (
	reasonMissing     = "missing"
	reasonCorrupt     = "corrupt"
	reasonGenMismatch = "gen_mismatch"
	reasonValueDecode = "value_decode"
	reasonLoadError   = "load_error"
)

// holder keeps the encoded value in a Provider under one storage key.
// The cache serializes writes (only the flight commits), reads may race.
type holder[V any] struct {
	provider pr.Provider
	codec    c.Codec[V]
	key      string
	ttl      time.Duration
	cost     SetCostFunc
}

func (h *holder[V]) enabled() bool { return h.provider != nil }

// store frames and writes v. A non-nil error means the value was not held
// and the caller must keep it on the heap.
func (h *holder[V]) store(ctx context.Context, gen uint64, syncedAt time.Time, v V) error {
	payload, err := h.codec.Encode(v)
	if err != nil {
		return &ProviderError{Op: "encode", Key: h.key, Err: err}
	}
	frame := wire.Encode(gen, syncedAt.UnixNano(), payload)
	ok, err := h.provider.Set(ctx, h.key, frame, h.cost(h.key, frame), h.ttl)
	if err != nil {
		return &ProviderError{Op: "set", Key: h.key, Err: err}
	}
	if !ok {
		return &ProviderError{Op: "set", Key: h.key}
	}
	// some stores accept a write and drop it later (async admission); a value
	// that cannot be read back must stay on the heap
	got, ok, err := h.provider.Get(ctx, h.key)
	if err != nil {
		return &ProviderError{Op: "verify", Key: h.key, Err: err}
	}
	if !ok || !bytes.Equal(got, frame) {
		return &ProviderError{Op: "verify", Key: h.key}
	}
	return nil
}

// load reads the held value and checks it belongs to gen/syncedAt.
// On failure it returns the self-heal reason; err is set for provider and
// decode failures only.
func (h *holder[V]) load(ctx context.Context, gen uint64, syncedAt time.Time) (V, string, error) {
	var zero V
	raw, ok, err := h.provider.Get(ctx, h.key)
	if err != nil {
		return zero, reasonLoadError, &ProviderError{Op: "get", Key: h.key, Err: err}
	}
	if !ok {
		return zero, reasonMissing, nil
	}
	fgen, fsynced, payload, err := wire.Decode(raw)
	if err != nil {
		return zero, reasonCorrupt, err
	}
	if fgen != gen || fsynced != syncedAt.UnixNano() {
		return zero, reasonGenMismatch, nil
	}
	v, err := h.codec.Decode(payload)
	if err != nil {
		return zero, reasonValueDecode, err
	}
	return v, "", nil
}

func (h *holder[V]) drop(ctx context.Context) error {
	if err := h.provider.Del(ctx, h.key); err != nil {
		return &ProviderError{Op: "del", Key: h.key, Err: err}
	}
	return nil
}
