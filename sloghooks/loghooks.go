// Package sloghooks reports flightcache events through log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/flightcache"
)

type Options struct {
	// Namespace is attached to every line as "ns".
	Namespace string
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	JoinEvery     uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	joinCtr     atomic.Uint64
}

var _ flightcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	if l != nil && opts.Namespace != "" {
		l = l.With("ns", opts.Namespace)
	}
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) FetchStarted() {
	if h.l == nil {
		return
	}
	h.l.Debug("flightcache.fetch_started")
}

func (h *Hooks) FetchJoined() {
	if h.l == nil || !sample(h.opts.JoinEvery, &h.joinCtr) {
		return
	}
	h.l.Debug("flightcache.fetch_joined")
}

func (h *Hooks) FetchSucceeded(d time.Duration) {
	if h.l == nil {
		return
	}
	h.l.Debug("flightcache.fetch_succeeded", "took", d)
}

func (h *Hooks) FetchFailed(d time.Duration, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("flightcache.fetch_failed",
		"took", d,
		"err", err)
}

func (h *Hooks) InvalidatedDuringFetch() {
	if h.l == nil {
		return
	}
	h.l.Info("flightcache.invalidated_during_fetch",
		"note", "in-flight fetch will still commit; cache is fresh again once it settles")
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("flightcache.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("flightcache.provider_set_rejected",
		"key", h.redact(storageKey),
		"err", err)
}
