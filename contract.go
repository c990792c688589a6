package queue

import "fmt"

// Pair is an (item, priority) tuple, the unit every Queue variant
// enqueues and dequeues.
type Pair[T, P any] struct {
	Item     T
	Priority P
}

// Queue is the abstract contract every variant in this package
// implements: ordinary priority (Ordinary), dependency-blocked priority
// (Blocking), friend-grouped priority (Grouping), and coarse-bucketed
// priority (Bucket).
//
// Dequeue order is deterministic given insertion order and
// configuration. Equality of priorities is broken by insertion order
// unless a variant states otherwise. Peek is idempotent and observes no
// state. None of the operations below are safe for concurrent use.
type Queue[T, P any] interface {
	// EmptyCopy returns a queue configured identically to this one
	// (capacity hints, combiners, bucket ranges, bucket template) but
	// containing zero items.
	EmptyCopy() Queue[T, P]

	// Peek returns the (item, priority) that the next Dequeue would
	// return, without removing it. It returns ErrNoElementsAvailable if
	// the queue is empty.
	Peek() (T, P, error)

	// Enqueue inserts one item at the given priority.
	Enqueue(item T, priority P)

	// EnqueueBatch inserts many items all at the same priority.
	// Variants may implement this more efficiently than repeated
	// Enqueue calls, and may give it richer semantics (Grouping
	// coalesces friends into one group; Blocking still inserts one by
	// one).
	EnqueueBatch(items []T, priority P)

	// EnqueueMany inserts many items at possibly differing priorities.
	EnqueueMany(pairs []Pair[T, P])

	// Dequeue removes and returns the next (item, priority), or
	// ErrNoElementsAvailable if the queue is empty.
	Dequeue() (T, P, error)

	// DequeueBatch removes and returns between 0 and hardLimit items:
	// at least target when that many are available, but a variant may
	// overshoot up to hardLimit to keep a semantic group intact. It
	// panics if hardLimit < target. If fewer than target items exist,
	// it returns everything.
	DequeueBatch(target, hardLimit int) []Pair[T, P]

	// Len returns the number of items currently in the queue.
	Len() int

	// IsEmpty reports whether the queue has no items.
	IsEmpty() bool

	// DrainAll dequeues everything currently present; the queue remains
	// usable afterwards.
	DrainAll() []Pair[T, P]

	// AllItemsIter consumes the queue, yielding items (priorities
	// discarded) in dequeue order.
	AllItemsIter() <-chan T
}

// enqueueManyViaRuns is the default EnqueueMany behavior shared by every
// variant: it groups maximal runs of equal priority (per less) into
// EnqueueBatch calls.
func enqueueManyViaRuns[T, P any](q Queue[T, P], pairs []Pair[T, P], less func(a, b P) bool) {
	equal := func(a, b P) bool {
		return !less(a, b) && !less(b, a)
	}

	i := 0
	for i < len(pairs) {
		j := i + 1
		for j < len(pairs) && equal(pairs[i].Priority, pairs[j].Priority) {
			j++
		}

		items := make([]T, j-i)
		for k := i; k < j; k++ {
			items[k-i] = pairs[k].Item
		}

		q.EnqueueBatch(items, pairs[i].Priority)

		i = j
	}
}

// drainAll is the shared implementation of DrainAll, built on
// DequeueBatch like the default trait implementation it generalizes.
func drainAll[T, P any](q Queue[T, P]) []Pair[T, P] {
	n := q.Len()
	return q.DequeueBatch(n, n)
}

// allItemsIter is the shared implementation of AllItemsIter.
func allItemsIter[T, P any](q Queue[T, P]) <-chan T {
	pairs := drainAll(q)

	ch := make(chan T, len(pairs))
	for _, p := range pairs {
		ch <- p.Item
	}
	close(ch)

	return ch
}

func requireValidBatchBounds(target, hardLimit int) {
	if hardLimit < target {
		panic(fmt.Errorf("%w: hard limit %d, target %d", ErrInvalidBatchBounds, hardLimit, target))
	}
}
