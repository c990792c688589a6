package queue

import "container/heap"

// Ordinary is a plain max-priority queue: a conformance of a standard
// binary heap to the Queue contract, used throughout this package as
// the reference oracle other variants are checked against. Ties in
// priority break by insertion order, earliest first.
type Ordinary[T, P any] struct {
	less func(a, b P) bool
	h    ordinaryHeap[T, P]
	seq  uint64
	opts options
}

type ordinaryEntry[T, P any] struct {
	item     T
	priority P
	seq      uint64
}

// ordinaryHeap implements container/heap.Interface. Less is inverted
// relative to less (the caller's "a is less urgent than b" function)
// because container/heap produces a min-heap, and this queue needs the
// most urgent element at the root; ties are broken by seq ascending so
// earlier insertions are popped first.
type ordinaryHeap[T, P any] struct {
	entries []ordinaryEntry[T, P]
	less    func(a, b P) bool
}

func (h ordinaryHeap[T, P]) Len() int { return len(h.entries) }

func (h ordinaryHeap[T, P]) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]

	if h.less(a.priority, b.priority) {
		return false
	}
	if h.less(b.priority, a.priority) {
		return true
	}

	return a.seq < b.seq
}

func (h ordinaryHeap[T, P]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *ordinaryHeap[T, P]) Push(x any) {
	h.entries = append(h.entries, x.(ordinaryEntry[T, P]))
}

func (h *ordinaryHeap[T, P]) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]

	return e
}

// NewOrdinary returns an empty Ordinary queue. less must report whether
// priority a is less urgent than priority b; it must never be nil.
func NewOrdinary[T, P any](less func(a, b P) bool, opts ...Option) *Ordinary[T, P] {
	if less == nil {
		panic("queue: nil less func")
	}

	resolved := resolveOptions(opts)

	cap := 0
	if resolved.capacity != nil {
		cap = *resolved.capacity
	}

	return &Ordinary[T, P]{
		less: less,
		h:    ordinaryHeap[T, P]{entries: make([]ordinaryEntry[T, P], 0, cap), less: less},
		opts: resolved,
	}
}

var _ Queue[int, int] = (*Ordinary[int, int])(nil)

// EmptyCopy returns a fresh Ordinary with the same ordering and a
// capacity hint equal to this queue's current length.
func (o *Ordinary[T, P]) EmptyCopy() Queue[T, P] {
	n := o.Len()
	return NewOrdinary[T, P](o.less, WithCapacity(n))
}

// Peek returns the highest-priority pair without removing it.
func (o *Ordinary[T, P]) Peek() (t T, p P, err error) {
	if len(o.h.entries) == 0 {
		return t, p, ErrNoElementsAvailable
	}

	e := o.h.entries[0]

	return e.item, e.priority, nil
}

// Enqueue inserts one item at the given priority.
func (o *Ordinary[T, P]) Enqueue(item T, priority P) {
	heap.Push(&o.h, ordinaryEntry[T, P]{item: item, priority: priority, seq: o.seq})
	o.seq++
}

// EnqueueBatch inserts many items all at the same priority, each
// retaining its relative order via the shared sequence counter.
func (o *Ordinary[T, P]) EnqueueBatch(items []T, priority P) {
	for _, item := range items {
		o.Enqueue(item, priority)
	}
}

// EnqueueMany inserts many items at possibly differing priorities.
func (o *Ordinary[T, P]) EnqueueMany(pairs []Pair[T, P]) {
	enqueueManyViaRuns[T, P](o, pairs, o.less)
}

// Dequeue removes and returns the highest-priority pair.
func (o *Ordinary[T, P]) Dequeue() (t T, p P, err error) {
	if len(o.h.entries) == 0 {
		return t, p, ErrNoElementsAvailable
	}

	e := heap.Pop(&o.h).(ordinaryEntry[T, P])

	return e.item, e.priority, nil
}

// DequeueBatch removes and returns up to hardLimit items, at least
// target when that many exist.
func (o *Ordinary[T, P]) DequeueBatch(target, hardLimit int) []Pair[T, P] {
	requireValidBatchBounds(target, hardLimit)

	n := target
	if o.Len() < n {
		n = o.Len()
	}

	out := make([]Pair[T, P], 0, n)
	for i := 0; i < n; i++ {
		item, priority, err := o.Dequeue()
		if err != nil {
			break
		}

		out = append(out, Pair[T, P]{Item: item, Priority: priority})
	}

	return out
}

// Len returns the number of items currently in the queue.
func (o *Ordinary[T, P]) Len() int {
	return len(o.h.entries)
}

// IsEmpty reports whether the queue has no items.
func (o *Ordinary[T, P]) IsEmpty() bool {
	return o.Len() == 0
}

// DrainAll dequeues everything currently present.
func (o *Ordinary[T, P]) DrainAll() []Pair[T, P] {
	return drainAll[T, P](o)
}

// AllItemsIter consumes the queue, yielding items in dequeue order.
func (o *Ordinary[T, P]) AllItemsIter() <-chan T {
	return allItemsIter[T, P](o)
}
