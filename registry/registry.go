// Package registry maps process-unique integer identifiers to live
// channels so other in-process components can look them up by id. It
// also owns the monotonic id counter channels are constructed with.
package registry

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/aradilov/chanq"
)

var (
	ErrNotFound     = fmt.Errorf("channel not found")
	ErrTypeMismatch = fmt.Errorf("channel element type mismatch")
)

// Handle is the type-erased view of a channel the registry stores.
// *chanq.Chan[T] satisfies it for any T.
type Handle interface {
	ID() uint64
	IsReady() bool
	Len() int
	Cap() int
	Close()
}

// Registry is a thread-safe id → channel map with its own atomic id
// counter. The counter is owned here rather than being a package
// global so independent registries never share an id space.
type Registry struct {
	lastID uint64

	mu    sync.RWMutex
	chans map[uint64]Handle
}

func NewRegistry() *Registry {
	return &Registry{
		chans: make(map[uint64]Handle),
	}
}

// NextID returns the next process-unique channel identifier. Safe to
// call concurrently.
func (r *Registry) NextID() uint64 {
	return atomic.AddUint64(&r.lastID, 1)
}

// Register adds h under its own id, replacing any previous entry with
// the same id.
func (r *Registry) Register(h Handle) {
	r.mu.Lock()
	r.chans[h.ID()] = h
	r.mu.Unlock()

	channelsCreated.Inc()
	openChannels.Inc()
	logrus.WithFields(logrus.Fields{
		"id":  h.ID(),
		"cap": h.Cap(),
	}).Debug("channel registered")
}

// Lookup returns the channel registered under id.
func (r *Registry) Lookup(id uint64) (Handle, bool) {
	r.mu.RLock()
	h, ok := r.chans[id]
	r.mu.RUnlock()
	return h, ok
}

// Unregister removes the entry for id without closing the channel.
// Reports whether an entry existed.
func (r *Registry) Unregister(id uint64) bool {
	r.mu.Lock()
	_, ok := r.chans[id]
	if ok {
		delete(r.chans, id)
	}
	r.mu.Unlock()

	if ok {
		openChannels.Dec()
		logrus.WithField("id", id).Debug("channel unregistered")
	}
	return ok
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	n := len(r.chans)
	r.mu.RUnlock()
	return n
}

// CloseAll closes and removes every registered channel, waking all of
// their suspended callers with a closed error.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	chans := r.chans
	r.chans = make(map[uint64]Handle)
	r.mu.Unlock()

	for _, h := range chans {
		h.Close()
		channelsClosed.Inc()
		openChannels.Dec()
	}
	logrus.WithField("count", len(chans)).Info("all channels closed")
}

// New constructs a channel with an id from r's counter and registers
// it in one step.
func New[T any](r *Registry, capacity int) (*chanq.Chan[T], error) {
	c, err := chanq.New[T](r.NextID(), capacity)
	if err != nil {
		return nil, err
	}
	r.Register(c)
	return c, nil
}

// Chan looks up id and asserts the channel's element type. Returns
// ErrNotFound for an unknown id and ErrTypeMismatch when the channel
// was registered with a different element type.
func Chan[T any](r *Registry, id uint64) (*chanq.Chan[T], error) {
	h, ok := r.Lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	c, ok := h.(*chanq.Chan[T])
	if !ok {
		return nil, ErrTypeMismatch
	}
	return c, nil
}
