package chanq

// multiSlot is a circular buffer with independent take and put cursors.
// The physical buffer keeps one slot more than the usable capacity
// (szp1 = capacity+1) so that two cursors alone distinguish full from
// empty: takePos == putPos means empty, a logical count of szp1-1
// means full. Cursors are 0-based, always in [0, szp1).
type multiSlot[T any] struct {
	buf     []T
	szp1    int // physical length of buf, usable capacity + 1
	max     int // user-requested ceiling, fixed for the channel's lifetime
	takePos int
	putPos  int
}

func newMultiSlot[T any](capacity int) *multiSlot[T] {
	szp1 := capacity
	if szp1 > initialSlots {
		szp1 = initialSlots
	}
	szp1++
	return &multiSlot[T]{
		buf:  make([]T, szp1),
		szp1: szp1,
		max:  capacity,
	}
}

func (s *multiSlot[T]) ready() bool {
	return s.takePos != s.putPos
}

// space reports whether a put can proceed: either a free slot exists or
// the ring can still grow toward its ceiling.
func (s *multiSlot[T]) space() bool {
	return s.count() < s.max
}

// put writes v at the put cursor, growing the ring first when it is at
// capacity. Callers guarantee space() via the channel's blocking
// protocol, so growth here always has room below the ceiling.
func (s *multiSlot[T]) put(v T) bool {
	grew := false
	if s.count() == s.szp1-1 {
		s.grow()
		grew = true
	}
	s.buf[s.putPos] = v
	s.putPos++
	if s.putPos == s.szp1 {
		s.putPos = 0
	}
	return grew
}

// take reads the value under the take cursor, then advances it. The
// slot keeps its stale content until a later put overwrites it; the
// value is unreachable through either cursor, so that is harmless.
func (s *multiSlot[T]) take() T {
	v := s.buf[s.takePos]
	s.takePos++
	if s.takePos == s.szp1 {
		s.takePos = 0
	}
	return v
}

func (s *multiSlot[T]) peek() T {
	return s.buf[s.takePos]
}

func (s *multiSlot[T]) count() int {
	return (s.putPos - s.takePos + s.szp1) % s.szp1
}

func (s *multiSlot[T]) ceiling() int {
	return s.max
}

// grow replaces the buffer with one at least twice as large, capped at
// max+1 physical slots, and rewrites the live range to start at slot 0.
// Doubling keeps puts amortized O(1); the cap bounds memory for
// bounded channels.
func (s *multiSlot[T]) grow() {
	n := s.count()
	newCap := 2 * (s.szp1 - 1)
	if newCap > s.max {
		newCap = s.max
	}
	newSzp1 := newCap + 1

	buf := make([]T, newSzp1)
	if s.takePos <= s.putPos {
		copy(buf, s.buf[s.takePos:s.putPos])
	} else {
		// live range wraps: tail segment first, then the head segment
		k := copy(buf, s.buf[s.takePos:])
		copy(buf[k:], s.buf[:s.putPos])
	}

	s.buf = buf
	s.szp1 = newSzp1
	s.takePos = 0
	s.putPos = n
}
