package conveyor

import "sync"

// Queue is an unbounded FIFO shared by a single producer and any number of
// consumers. A single mutex guards both the item sequence and the closed flag,
// so no goroutine ever observes an inconsistent (emptiness, closed) pair.
// The zero value is not usable; construct with NewQueue.
//
// There are no timeouts and no internal retries: Pop blocks until an item
// arrives or the queue is closed. A producer that never calls Close blocks
// every consumer forever; callers must guarantee closure on all exit paths.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

// NewQueue constructs an empty, open queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends v at the tail and wakes one blocked consumer.
// It returns ErrQueueClosed if the queue has already been closed; with a
// single producer that always pushes before closing, that return is a
// programming-error guard rather than a runtime path.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	// The mutex does not need to be held to notify. Waking a single waiter
	// is enough: a consumer that loses the race to a faster waiter finds the
	// queue empty and loops back into the guarded wait.
	q.cond.Signal()
	return nil
}

// Pop removes and returns the head item, blocking while the queue is empty and
// still open. ok is false only when the queue is closed and fully drained;
// after that, every subsequent Pop returns immediately with ok false.
//
// The wait is predicate-guarded: the condition is re-checked after every wake,
// so neither spurious wakeups nor stolen items produce a bogus return.
func (q *Queue[T]) Pop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return v, false
	}

	v = q.items[0]
	q.items = q.items[1:]
	return v, true
}

// Close marks the end of production and wakes all blocked consumers, since
// every one of them may need to observe closure and exit. Idempotent; the
// closed flag never reverts.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.cond.Broadcast()
}

// Len returns the number of queued items at the time of the call.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
