package asynchook

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/flightcache"
)

type recorder struct {
	flightcache.NopHooks
	mu      sync.Mutex
	events  []string
	started chan struct{}
	release chan struct{}
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) FetchStarted() {
	if r.started != nil {
		r.started <- struct{}{}
		<-r.release
	}
	r.add("started")
}
func (r *recorder) FetchJoined()                         { r.add("joined") }
func (r *recorder) FetchSucceeded(time.Duration)         { r.add("ok") }
func (r *recorder) FetchFailed(_ time.Duration, _ error) { r.add("failed") }
func (r *recorder) SelfHeal(_, reason string)            { r.add("heal:" + reason) }

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestForwardsAndDrainsOnClose(t *testing.T) {
	rec := &recorder{}
	h := New(rec, 1, 16)

	h.FetchStarted()
	h.FetchJoined()
	h.FetchFailed(time.Millisecond, errors.New("boom"))
	h.SelfHeal("flight:x:1", "corrupt")
	h.FetchSucceeded(time.Millisecond)
	h.Close()

	// single worker preserves order
	require.Equal(t, []string{"started", "joined", "failed", "heal:corrupt", "ok"}, rec.all())
	require.Zero(t, h.Dropped())
}

func TestDropsWhenQueueFull(t *testing.T) {
	rec := &recorder{started: make(chan struct{}), release: make(chan struct{})}
	h := New(rec, 1, 1)

	h.FetchStarted() // picked up by the worker, which then blocks
	<-rec.started

	h.FetchJoined() // fills the queue
	h.FetchJoined() // dropped
	require.Equal(t, uint64(1), h.Dropped())

	close(rec.release)
	h.Close()
	require.Equal(t, []string{"started", "joined"}, rec.all())
}

func TestAfterCloseIsDropped(t *testing.T) {
	rec := &recorder{}
	h := New(rec, 2, 4)
	h.Close()
	h.Close()

	h.FetchJoined()
	require.Equal(t, uint64(1), h.Dropped())
	require.Empty(t, rec.all())
}
