package queue

import "fmt"

func equalCoarse[C comparable](less func(a, b C) bool, a, b C) bool {
	return !less(a, b) && !less(b, a)
}

// Bucket dispatches to one of many inner queues, each holding items
// whose priority projects to the same coarse-grain key. It is a
// radix-style outer layer: correctness depends only on the coarse
// projection being monotone, while the inner queues (which may
// themselves be Ordinary, Blocking, Grouping, or nested Bucket values)
// provide intra-bucket ordering.
type Bucket[T, P any, C comparable] struct {
	less     func(a, b P) bool
	coarse   CoarseGrain[P, C]
	storage  Storage[C, Queue[T, P]]
	factory  func() Storage[C, Queue[T, P]]
	template Queue[T, P]

	upper  C
	lower  C
	hasAny bool
	count  int

	opts options
}

// NewBucket returns an empty Bucket queue. less is used by EnqueueMany
// to detect runs of consecutive equal priorities; coarse supplies
// the bucket-key projection; template is cloned (via EmptyCopy) to
// create each new bucket's inner queue. storageFactory may be nil, in
// which case a Sparse[C, Queue[T,P]] is used.
func NewBucket[T, P any, C comparable](
	less func(a, b P) bool,
	coarse CoarseGrain[P, C],
	template Queue[T, P],
	storageFactory func() Storage[C, Queue[T, P]],
	opts ...Option,
) *Bucket[T, P, C] {
	if less == nil {
		panic("queue: nil less func")
	}
	if coarse == nil {
		panic("queue: nil coarse grain")
	}
	if template == nil {
		panic("queue: nil template queue")
	}
	if storageFactory == nil {
		storageFactory = func() Storage[C, Queue[T, P]] {
			return NewSparse[C, Queue[T, P]]()
		}
	}

	return &Bucket[T, P, C]{
		less:     less,
		coarse:   coarse,
		storage:  storageFactory(),
		factory:  storageFactory,
		template: template,
		opts:     resolveOptions(opts),
	}
}

var _ Queue[int, int] = (*Bucket[int, int, int])(nil)

// EmptyCopy returns a fresh Bucket with the same ordering, coarse
// projection, template, and capacity hint, and zero buckets.
func (b *Bucket[T, P, C]) EmptyCopy() Queue[T, P] {
	var opts []Option
	if b.opts.capacity != nil {
		opts = append(opts, WithCapacity(*b.opts.capacity))
	}

	return NewBucket[T, P, C](b.less, b.coarse, b.template.EmptyCopy(), b.factory, opts...)
}

func (b *Bucket[T, P, C]) widen(c C) {
	if !b.hasAny {
		b.upper, b.lower, b.hasAny = c, c, true
		return
	}

	if b.coarse.Less(b.upper, c) {
		b.upper = c
	}
	if b.coarse.Less(c, b.lower) {
		b.lower = c
	}
}

func (b *Bucket[T, P, C]) bucketFor(c C) Queue[T, P] {
	bucket, ok := b.storage.Get(c)
	if !ok {
		bucket = b.template.EmptyCopy()
		b.storage.Insert(c, bucket)
	}

	return bucket
}

// Enqueue inserts one item, widening the occupied bucket-key range and
// creating a new inner queue on first use of that key.
func (b *Bucket[T, P, C]) Enqueue(item T, priority P) {
	c := b.coarse.Coarse(priority)
	b.widen(c)
	b.bucketFor(c).Enqueue(item, priority)
	b.count++
}

// EnqueueBatch inserts many items at one priority into their shared
// bucket.
func (b *Bucket[T, P, C]) EnqueueBatch(items []T, priority P) {
	if len(items) == 0 {
		return
	}

	c := b.coarse.Coarse(priority)
	b.widen(c)
	b.bucketFor(c).EnqueueBatch(items, priority)
	b.count += len(items)
}

// EnqueueMany inserts many items at possibly differing priorities.
func (b *Bucket[T, P, C]) EnqueueMany(pairs []Pair[T, P]) {
	enqueueManyViaRuns[T, P](b, pairs, b.less)
}

// Peek returns the highest-priority pair across all buckets, scanning
// downward from upper, without removing it.
func (b *Bucket[T, P, C]) Peek() (t T, p P, err error) {
	if !b.hasAny {
		return t, p, ErrNoElementsAvailable
	}

	current := b.upper
	for !b.coarse.Less(current, b.lower) {
		if bucket, ok := b.storage.Get(current); ok && !bucket.IsEmpty() {
			return bucket.Peek()
		}

		prev, ok := b.coarse.Prev(current)
		if !ok {
			break
		}

		current = prev
	}

	return t, p, ErrNoElementsAvailable
}

// Dequeue removes and returns the highest-priority pair, scanning
// downward from upper and stepping upper down when its bucket empties.
func (b *Bucket[T, P, C]) Dequeue() (t T, p P, err error) {
	if !b.hasAny {
		return t, p, ErrNoElementsAvailable
	}

	current := b.upper
	for !b.coarse.Less(current, b.lower) {
		if bucket, ok := b.storage.Get(current); ok && !bucket.IsEmpty() {
			item, priority, derr := bucket.Dequeue()
			if derr != nil {
				panic(fmt.Errorf("%w", ErrCorruptState))
			}

			b.count--

			if bucket.IsEmpty() {
				b.storage.Remove(current)

				if equalCoarse(b.coarse.Less, current, b.upper) {
					if prev, ok := b.coarse.Prev(current); ok {
						b.upper = prev
					}
				}
			}

			return item, priority, nil
		}

		prev, ok := b.coarse.Prev(current)
		if !ok {
			break
		}

		current = prev
	}

	return t, p, ErrNoElementsAvailable
}

// DequeueBatch scans downward from upper, draining each non-empty
// bucket for its share of the remaining target/hardLimit, until at
// least target items are collected.
func (b *Bucket[T, P, C]) DequeueBatch(target, hardLimit int) []Pair[T, P] {
	requireValidBatchBounds(target, hardLimit)

	var collected []Pair[T, P]

	if !b.hasAny {
		return collected
	}

	current := b.upper
	for len(collected) < target && !b.coarse.Less(current, b.lower) {
		bucket, ok := b.storage.Get(current)
		if ok && !bucket.IsEmpty() {
			remainTarget := target - len(collected)
			remainHard := hardLimit - len(collected)

			got := bucket.DequeueBatch(remainTarget, remainHard)
			collected = append(collected, got...)
			b.count -= len(got)

			if bucket.IsEmpty() {
				b.storage.Remove(current)

				if equalCoarse(b.coarse.Less, current, b.upper) {
					if prev, ok := b.coarse.Prev(current); ok {
						b.upper = prev
					}
				}
			}
		}

		if len(collected) >= target {
			break
		}

		prev, ok := b.coarse.Prev(current)
		if !ok {
			break
		}

		current = prev
	}

	return collected
}

// Len returns the number of items across all buckets.
func (b *Bucket[T, P, C]) Len() int {
	return b.count
}

// IsEmpty reports whether every bucket is empty.
func (b *Bucket[T, P, C]) IsEmpty() bool {
	return b.count == 0
}

// DrainAll dequeues everything currently present.
func (b *Bucket[T, P, C]) DrainAll() []Pair[T, P] {
	return drainAll[T, P](b)
}

// AllItemsIter consumes the queue, yielding items in dequeue order.
func (b *Bucket[T, P, C]) AllItemsIter() <-chan T {
	return allItemsIter[T, P](b)
}
