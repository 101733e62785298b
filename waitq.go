package chanq

// waiter is one suspended caller. ready is buffered so a wake never
// blocks the waker; a non-nil error delivered through it aborts the
// wait instead of resuming it.
type waiter struct {
	ready chan error
}

// waitQueue is a FIFO multiset of suspended callers. Every method must
// be called with the owning channel's mutex held; the actual suspension
// (receiving on waiter.ready) happens outside the mutex.
type waitQueue struct {
	waiters []*waiter
}

// park appends a new waiter and returns it. The caller unlocks the
// channel mutex and then receives on the returned waiter's channel.
func (q *waitQueue) park() *waiter {
	w := &waiter{ready: make(chan error, 1)}
	q.waiters = append(q.waiters, w)
	return w
}

// wakeOne resumes the oldest waiter, delivering err (nil for a normal
// wake). No-op when the queue is empty: the state change that prompted
// the wake stays visible to any later arrival, which re-checks before
// parking, so no wakeup is lost.
func (q *waitQueue) wakeOne(err error) {
	if len(q.waiters) == 0 {
		return
	}
	w := q.waiters[0]
	q.waiters[0] = nil
	q.waiters = q.waiters[1:]
	w.ready <- err
}

// wakeAll resumes every waiter in park order, delivering err to each
// exactly once.
func (q *waitQueue) wakeAll(err error) {
	for i, w := range q.waiters {
		w.ready <- err
		q.waiters[i] = nil
	}
	q.waiters = q.waiters[:0]
}

// size returns the number of parked waiters.
func (q *waitQueue) size() int {
	return len(q.waiters)
}
