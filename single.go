package chanq

// singleSlot holds at most one value. The occupied flag is kept
// separate from the value on purpose: the element type may well
// include its own zero value, so slot emptiness must never be inferred
// from the value itself.
type singleSlot[T any] struct {
	occupied bool
	val      T
}

func (s *singleSlot[T]) ready() bool {
	return s.occupied
}

func (s *singleSlot[T]) space() bool {
	return !s.occupied
}

func (s *singleSlot[T]) put(v T) bool {
	s.val = v
	s.occupied = true
	return false
}

func (s *singleSlot[T]) take() T {
	v := s.val
	var zero T
	s.val = zero
	s.occupied = false
	return v
}

func (s *singleSlot[T]) peek() T {
	return s.val
}

func (s *singleSlot[T]) count() int {
	if s.occupied {
		return 1
	}
	return 0
}

func (s *singleSlot[T]) ceiling() int {
	return 1
}
