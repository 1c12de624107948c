// Package prometheus exports flightcache events as Prometheus metrics.
//
// Several caches may share one Registerer as long as each uses a distinct
// namespace; the namespace is attached as a constant "namespace" label.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/flightcache"
)

// Default histogram buckets for fetch latency (in seconds).
var defaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30,
}

type Hooks struct {
	fetchTotal          *prometheus.CounterVec
	fetchJoined         prometheus.Counter
	fetchDuration       *prometheus.HistogramVec
	selfHealTotal       *prometheus.CounterVec
	setRejected         prometheus.Counter
	invalidatedInFlight prometheus.Counter
}

var _ flightcache.Hooks = (*Hooks)(nil)

// New registers the cache metrics on reg under the given cache namespace.
// It returns an error if reg already holds the same metrics for namespace.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	labels := prometheus.Labels{"namespace": namespace}
	h := &Hooks{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "flightcache_fetch_total",
			Help:        "Fetch invocations by result",
			ConstLabels: labels,
		}, []string{"result"}),

		fetchJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "flightcache_fetch_joined_total",
			Help:        "Get calls that attached to an in-flight fetch",
			ConstLabels: labels,
		}),

		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "flightcache_fetch_duration_seconds",
			Help:        "Fetch latency in seconds",
			Buckets:     defaultBuckets,
			ConstLabels: labels,
		}, []string{"result"}),

		selfHealTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "flightcache_self_heal_total",
			Help:        "Held entries dropped on read, by reason",
			ConstLabels: labels,
		}, []string{"reason"}),

		setRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "flightcache_provider_set_rejected_total",
			Help:        "Values the provider refused to hold (kept on heap)",
			ConstLabels: labels,
		}),

		invalidatedInFlight: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "flightcache_invalidated_during_fetch_total",
			Help:        "Invalidate calls that raced with an in-flight fetch",
			ConstLabels: labels,
		}),
	}

	for _, c := range []prometheus.Collector{
		h.fetchTotal, h.fetchJoined, h.fetchDuration,
		h.selfHealTotal, h.setRejected, h.invalidatedInFlight,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// MustNew is like New but panics on registration errors.
func MustNew(reg prometheus.Registerer, namespace string) *Hooks {
	h, err := New(reg, namespace)
	if err != nil {
		panic(err)
	}
	return h
}

func (h *Hooks) FetchStarted() {}

func (h *Hooks) FetchJoined() { h.fetchJoined.Inc() }

func (h *Hooks) FetchSucceeded(d time.Duration) {
	h.fetchTotal.WithLabelValues("success").Inc()
	h.fetchDuration.WithLabelValues("success").Observe(d.Seconds())
}

func (h *Hooks) FetchFailed(d time.Duration, _ error) {
	h.fetchTotal.WithLabelValues("error").Inc()
	h.fetchDuration.WithLabelValues("error").Observe(d.Seconds())
}

func (h *Hooks) InvalidatedDuringFetch() { h.invalidatedInFlight.Inc() }

func (h *Hooks) SelfHeal(_ string, reason string) {
	h.selfHealTotal.WithLabelValues(reason).Inc()
}

func (h *Hooks) ProviderSetRejected(string, error) { h.setRejected.Inc() }
