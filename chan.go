package chanq

import (
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrClosed   = fmt.Errorf("channel is closed")
	ErrCapacity = fmt.Errorf("capacity must be >= 1")
)

// Chan is a blocking channel over elements of type T. One store variant
// (fixed at construction by capacity) plus two wait queues: consumers
// and peekers park on dataReady, producers park on spaceFree. A single
// mutex serializes every store mutation; the wait queues are only ever
// touched under it.
type Chan[T any] struct {
	id uint64

	mu        sync.Mutex
	store     store[T]
	dataReady waitQueue
	spaceFree waitQueue
	closed    bool

	puts       uint64
	takes      uint64
	fetches    uint64
	putBlocks  uint64
	takeBlocks uint64
	grows      uint64
}

// ChanStats is a point-in-time snapshot of a channel's operation
// counters.
type ChanStats struct {
	Puts       uint64
	Takes      uint64
	Fetches    uint64
	PutBlocks  uint64
	TakeBlocks uint64
	Grows      uint64
}

// New creates an open channel for elements of type T. The id is
// assigned by the caller (typically a registry's counter) and is used
// for addressing only. Capacity 1 gives single-slot semantics: at most
// one outstanding value, a second put blocks until a take. Any larger
// capacity (Unbounded included) gives FIFO ring semantics with lazy
// geometric growth up to the ceiling.
func New[T any](id uint64, capacity int) (*Chan[T], error) {
	if capacity < 1 {
		return nil, ErrCapacity
	}
	c := &Chan[T]{id: id}
	if capacity == 1 {
		c.store = &singleSlot[T]{}
	} else {
		c.store = newMultiSlot[T](capacity)
	}
	return c, nil
}

// ID returns the channel's process-unique identifier.
func (c *Chan[T]) ID() uint64 {
	return c.id
}

// Put stores v, suspending while the channel is full at its ceiling.
// Below the ceiling a full ring grows instead of blocking. On success
// every waiter on the data-ready queue is woken (broadcast): some may
// be non-consuming peekers, so a single wake could strand a consumer
// behind a peeker. Returns v, or ErrClosed once the channel is closed.
func (c *Chan[T]) Put(v T) (T, error) {
	var zero T
	atomic.AddUint64(&c.puts, 1)

	c.mu.Lock()
	for {
		if c.closed {
			c.mu.Unlock()
			return zero, ErrClosed
		}
		if c.store.space() {
			break
		}
		atomic.AddUint64(&c.putBlocks, 1)
		w := c.spaceFree.park()
		c.mu.Unlock()
		// suspended; nothing was mutated, so abandoning here is safe
		if err := <-w.ready; err != nil {
			return zero, err
		}
		c.mu.Lock()
	}

	if c.store.put(v) {
		atomic.AddUint64(&c.grows, 1)
	}
	c.dataReady.wakeAll(nil)
	c.mu.Unlock()
	return v, nil
}

// Take removes and returns the next value, suspending while the
// channel is empty. Exactly one waiter on the space-available queue is
// woken afterwards: exactly one slot opened, waking more would only
// make them re-check and park again.
func (c *Chan[T]) Take() (T, error) {
	var zero T
	atomic.AddUint64(&c.takes, 1)

	c.mu.Lock()
	for {
		if c.closed {
			c.mu.Unlock()
			return zero, ErrClosed
		}
		if c.store.ready() {
			break
		}
		atomic.AddUint64(&c.takeBlocks, 1)
		w := c.dataReady.park()
		c.mu.Unlock()
		if err := <-w.ready; err != nil {
			return zero, err
		}
		// woken normally; another consumer may have raced us to the
		// value, so loop and re-check under the lock
		c.mu.Lock()
	}

	v := c.store.take()
	c.spaceFree.wakeOne(nil)
	c.mu.Unlock()
	return v, nil
}

// Fetch returns the next value without removing it, suspending while
// the channel is empty. Repeated fetches with no take in between
// return the same value. No producer is woken: no slot opened.
func (c *Chan[T]) Fetch() (T, error) {
	var zero T
	atomic.AddUint64(&c.fetches, 1)

	c.mu.Lock()
	for {
		if c.closed {
			c.mu.Unlock()
			return zero, ErrClosed
		}
		if c.store.ready() {
			break
		}
		atomic.AddUint64(&c.takeBlocks, 1)
		w := c.dataReady.park()
		c.mu.Unlock()
		if err := <-w.ready; err != nil {
			return zero, err
		}
		c.mu.Lock()
	}

	v := c.store.peek()
	c.mu.Unlock()
	return v, nil
}

// Wait suspends until the channel holds at least one value, consuming
// nothing. Returns ErrClosed once the channel is closed.
func (c *Chan[T]) Wait() error {
	c.mu.Lock()
	for {
		if c.closed {
			c.mu.Unlock()
			return ErrClosed
		}
		if c.store.ready() {
			c.mu.Unlock()
			return nil
		}
		w := c.dataReady.park()
		c.mu.Unlock()
		if err := <-w.ready; err != nil {
			return err
		}
		c.mu.Lock()
	}
}

// IsReady reports whether a take or fetch would return without
// suspending. Non-blocking, no side effects.
func (c *Chan[T]) IsReady() bool {
	c.mu.Lock()
	r := c.store.ready()
	c.mu.Unlock()
	return r
}

// Len returns the current logical element count.
func (c *Chan[T]) Len() int {
	c.mu.Lock()
	n := c.store.count()
	c.mu.Unlock()
	return n
}

// Cap returns the configured capacity ceiling.
func (c *Chan[T]) Cap() int {
	c.mu.Lock()
	n := c.store.ceiling()
	c.mu.Unlock()
	return n
}

// Close makes the channel unusable. Every caller currently suspended
// on either queue is woken with ErrClosed exactly once; every later
// operation fails fast without suspending. Closing a closed channel is
// a no-op. The transition is irreversible.
func (c *Chan[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.dataReady.wakeAll(ErrClosed)
	c.spaceFree.wakeAll(ErrClosed)
	c.mu.Unlock()
}

// Stats retrieves the current operation counters of the channel.
func (c *Chan[T]) Stats() ChanStats {
	return ChanStats{
		Puts:       atomic.LoadUint64(&c.puts),
		Takes:      atomic.LoadUint64(&c.takes),
		Fetches:    atomic.LoadUint64(&c.fetches),
		PutBlocks:  atomic.LoadUint64(&c.putBlocks),
		TakeBlocks: atomic.LoadUint64(&c.takeBlocks),
		Grows:      atomic.LoadUint64(&c.grows),
	}
}
