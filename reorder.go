package queue

type pendingKind int

const (
	pendingOne pendingKind = iota
	pendingMany
)

// Pending is one pulled unit from a Source: either a single (item,
// priority) pair or a batch sharing one priority.
type Pending[T, P any] struct {
	kind     pendingKind
	one      Pair[T, P]
	many     []T
	priority P
}

// One wraps a single pulled pair.
func One[T, P any](item T, priority P) Pending[T, P] {
	return Pending[T, P]{kind: pendingOne, one: Pair[T, P]{Item: item, Priority: priority}}
}

// Many wraps a pulled batch sharing one priority.
func Many[T, P any](items []T, priority P) Pending[T, P] {
	return Pending[T, P]{kind: pendingMany, many: items, priority: priority}
}

// Source is a pull function for Reorder's upstream input: it returns
// the next Pending unit and true, or false once the input is
// exhausted.
type Source[T, P any] func() (Pending[T, P], bool)

// Reorder is a bounded-buffer lazy sequence that reprioritizes
// upstream items through an abstract queue: it pulls from its input
// until the wrapped queue reaches capacity, then dequeues the
// highest-priority item.
type Reorder[T, P any] struct {
	source   Source[T, P]
	q        Queue[T, P]
	capacity int
}

// NewReorder returns a Reorder pulling from source, buffering into q,
// up to capacity items ahead of consumption.
func NewReorder[T, P any](source Source[T, P], q Queue[T, P], capacity int) *Reorder[T, P] {
	if source == nil {
		panic("queue: nil source")
	}
	if q == nil {
		panic("queue: nil queue")
	}

	return &Reorder[T, P]{source: source, q: q, capacity: capacity}
}

func (r *Reorder[T, P]) fill() {
	for r.q.Len() < r.capacity {
		pending, ok := r.source()
		if !ok {
			return
		}

		switch pending.kind {
		case pendingOne:
			r.q.Enqueue(pending.one.Item, pending.one.Priority)
		case pendingMany:
			r.q.EnqueueBatch(pending.many, pending.priority)
		}
	}
}

// Next fills the buffer up to capacity from the input, then dequeues
// the highest-priority item. It returns false once both the input is
// exhausted and the buffer is empty.
func (r *Reorder[T, P]) Next() (t T, p P, ok bool) {
	r.fill()

	item, priority, err := r.q.Dequeue()
	if err != nil {
		return t, p, false
	}

	return item, priority, true
}

// EnqueueNow injects one item directly into the buffer between pulls.
func (r *Reorder[T, P]) EnqueueNow(item T, priority P) {
	r.q.Enqueue(item, priority)
}

// EnqueueNowBatch injects a batch directly into the buffer between
// pulls.
func (r *Reorder[T, P]) EnqueueNowBatch(items []T, priority P) {
	r.q.EnqueueBatch(items, priority)
}

// ChainMore returns a new Reorder whose input is the concatenation of
// this adapter's input with other: other is only pulled once this
// adapter's own input reports exhausted.
func (r *Reorder[T, P]) ChainMore(other Source[T, P]) *Reorder[T, P] {
	firstDone := false
	first := r.source

	combined := func() (Pending[T, P], bool) {
		if !firstDone {
			if p, ok := first(); ok {
				return p, true
			}

			firstDone = true
		}

		return other()
	}

	return NewReorder[T, P](combined, r.q, r.capacity)
}

// Flush returns the buffer's current contents in dequeue order,
// leaving the buffer empty but reusable. It does not consult the
// input.
func (r *Reorder[T, P]) Flush() []Pair[T, P] {
	contents := r.q.DrainAll()
	r.q = r.q.EmptyCopy()

	return contents
}
