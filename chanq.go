package chanq

import "math"

// chanq is a typed, process-local blocking channel: producers and
// consumers hand values across it with capacity control and suspension
// instead of spinning.

// T — specific type to store in the channel.
// Capacity 1 selects a single-slot store, any larger capacity
// (including Unbounded) selects a growable ring store.

// Unbounded requests a channel with no capacity ceiling. It is one
// below the max representable int so the ring's +1 physical slot never
// overflows.
const Unbounded = math.MaxInt - 1

// initialSlots caps the initial physical ring size so unbounded and
// large-capacity channels do not allocate their ceiling up front.
const initialSlots = 32

// store is the closed set of storage backends. The variant is fixed at
// construction and never converted afterwards. All methods are called
// with the owning channel's mutex held.
type store[T any] interface {
	// ready reports whether a value is available for take/fetch.
	ready() bool
	// space reports whether a put can proceed without suspending
	// (growable stores report true while below their ceiling).
	space() bool
	// put writes v and reports whether the backing buffer grew. Must
	// only be called when space() is true.
	put(v T) (grew bool)
	// take removes and returns the next value. Must only be called
	// when ready() is true.
	take() T
	// peek returns the next value without removing it. Must only be
	// called when ready() is true.
	peek() T
	// count returns the logical number of stored elements.
	count() int
	// ceiling returns the configured capacity ceiling.
	ceiling() int
}
