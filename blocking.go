package queue

import "fmt"

// Blocker is the "must precede" predicate for the blocking queue: if a
// was enqueued before b and Blocker(a, b) holds, a must be dequeued
// before b. It need not be symmetric, transitive, or anti-reflexive;
// Blocking does not verify any of those.
type Blocker[T any] func(earlier, later T) bool

type blockingNode[T, P any] struct {
	item     T
	priority P
	seq      uint64
	inDegree int
	outEdges []int
}

// Blocking is a priority queue restricted to a dynamic DAG of
// must-precede edges. Nodes live in a Dense store keyed by a
// monotonically increasing, never-reused id, so removing a node can
// never invalidate another node's id the way swap-removal would.
type Blocking[T, P any] struct {
	less    func(a, b P) bool
	blocks  Blocker[T]
	nodes   *Dense[blockingNode[T, P]]
	sources []int
	sinks   []int
	nextID  int
	seq     uint64
	count   int
	opts    options
}

// NewBlocking returns an empty Blocking queue. less reports whether
// priority a is less urgent than priority b; blocks is the
// must-precede predicate. Neither may be nil.
func NewBlocking[T, P any](less func(a, b P) bool, blocks Blocker[T], opts ...Option) *Blocking[T, P] {
	if less == nil {
		panic("queue: nil less func")
	}
	if blocks == nil {
		panic("queue: nil blocker func")
	}

	resolved := resolveOptions(opts)

	sourcesCap := 0
	if resolved.capacity != nil {
		sourcesCap = *resolved.capacity
	}

	return &Blocking[T, P]{
		less:    less,
		blocks:  blocks,
		nodes:   NewDense[blockingNode[T, P]](),
		sources: make([]int, 0, sourcesCap),
		sinks:   make([]int, 0, sourcesCap),
		opts:    resolved,
	}
}

var _ Queue[int, int] = (*Blocking[int, int])(nil)

// EmptyCopy returns a fresh Blocking with the same ordering, blocking
// predicate, and capacity hint, and zero nodes.
func (b *Blocking[T, P]) EmptyCopy() Queue[T, P] {
	var opts []Option
	if b.opts.capacity != nil {
		opts = append(opts, WithCapacity(*b.opts.capacity))
	}

	return NewBlocking[T, P](b.less, b.blocks, opts...)
}

func removeInt(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}

	return s
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}

// addEdge records that from must leave before to, maintaining the
// sinks invariant: any node that gains an outgoing edge is no longer a
// sink, regardless of which enqueue phase discovered the edge.
func (b *Blocking[T, P]) addEdge(from, to int) {
	fromNode, ok := b.nodes.GetMut(from)
	if !ok {
		panic(fmt.Errorf("%w", ErrCorruptState))
	}
	fromNode.outEdges = append(fromNode.outEdges, to)

	toNode, ok := b.nodes.GetMut(to)
	if !ok {
		panic(fmt.Errorf("%w", ErrCorruptState))
	}
	toNode.inDegree++

	b.sinks = removeInt(b.sinks, from)
}

// Enqueue inserts one item, wiring must-precede edges from every
// current sink that blocks it, or (only if no sink does) from every
// other node in the graph that blocks it.
func (b *Blocking[T, P]) Enqueue(item T, priority P) {
	id := b.nextID
	b.nextID++

	b.nodes.Insert(id, blockingNode[T, P]{item: item, priority: priority, seq: b.seq})
	b.seq++

	addedAny := false

	currentSinks := append([]int(nil), b.sinks...)
	for _, s := range currentSinks {
		sNode, ok := b.nodes.Get(s)
		if !ok {
			panic(fmt.Errorf("%w", ErrCorruptState))
		}

		if b.blocks(sNode.item, item) {
			b.addEdge(s, id)
			addedAny = true
		}
	}

	if !addedAny {
		for _, m := range b.nodes.Keys() {
			if m == id {
				continue
			}

			mNode, ok := b.nodes.Get(m)
			if !ok {
				panic(fmt.Errorf("%w", ErrCorruptState))
			}

			if b.blocks(mNode.item, item) {
				b.addEdge(m, id)
				addedAny = true
			}
		}
	}

	n, ok := b.nodes.Get(id)
	if !ok {
		panic(fmt.Errorf("%w", ErrCorruptState))
	}

	if n.inDegree == 0 {
		b.sources = append(b.sources, id)
	}

	b.sinks = append(b.sinks, id)
	b.count++
}

// EnqueueBatch inserts items one by one: edges depend on insertion
// order, not a shared priority, so there is no batched fast path.
func (b *Blocking[T, P]) EnqueueBatch(items []T, priority P) {
	for _, item := range items {
		b.Enqueue(item, priority)
	}
}

// EnqueueMany inserts many items at possibly differing priorities.
func (b *Blocking[T, P]) EnqueueMany(pairs []Pair[T, P]) {
	enqueueManyViaRuns[T, P](b, pairs, b.less)
}

// maxSource returns the id of the highest-priority current source,
// ties broken by earliest insertion.
func (b *Blocking[T, P]) maxSource() (int, bool) {
	best := -1

	for _, s := range b.sources {
		if best == -1 {
			best = s
			continue
		}

		bestNode, ok := b.nodes.Get(best)
		if !ok {
			panic(fmt.Errorf("%w", ErrCorruptState))
		}

		sNode, ok := b.nodes.Get(s)
		if !ok {
			panic(fmt.Errorf("%w", ErrCorruptState))
		}

		if b.less(bestNode.priority, sNode.priority) {
			best = s
		} else if !b.less(sNode.priority, bestNode.priority) && sNode.seq < bestNode.seq {
			best = s
		}
	}

	if best == -1 {
		return 0, false
	}

	return best, true
}

// Peek returns the highest-priority source's pair without removing it.
func (b *Blocking[T, P]) Peek() (t T, p P, err error) {
	id, ok := b.maxSource()
	if !ok {
		return t, p, ErrNoElementsAvailable
	}

	n, ok := b.nodes.Get(id)
	if !ok {
		panic(fmt.Errorf("%w", ErrCorruptState))
	}

	return n.item, n.priority, nil
}

// Dequeue removes and returns the highest-priority source, releasing
// any now-unblocked neighbors into sources.
func (b *Blocking[T, P]) Dequeue() (t T, p P, err error) {
	id, ok := b.maxSource()
	if !ok {
		return t, p, ErrNoElementsAvailable
	}

	n, ok := b.nodes.Remove(id)
	if !ok {
		panic(fmt.Errorf("%w", ErrCorruptState))
	}

	b.sources = removeInt(b.sources, id)
	b.sinks = removeInt(b.sinks, id)
	b.count--

	for _, neighbor := range n.outEdges {
		nbNode, ok := b.nodes.GetMut(neighbor)
		if !ok {
			panic(fmt.Errorf("%w", ErrCorruptState))
		}

		nbNode.inDegree--
		if nbNode.inDegree == 0 && !containsInt(b.sources, neighbor) {
			b.sources = append(b.sources, neighbor)
		}
	}

	return n.item, n.priority, nil
}

// DequeueBatch removes and returns up to hardLimit items by repeated
// Dequeue, at least target when that many exist.
func (b *Blocking[T, P]) DequeueBatch(target, hardLimit int) []Pair[T, P] {
	requireValidBatchBounds(target, hardLimit)

	n := target
	if b.Len() < n {
		n = b.Len()
	}

	out := make([]Pair[T, P], 0, n)
	for i := 0; i < n; i++ {
		item, priority, err := b.Dequeue()
		if err != nil {
			break
		}

		out = append(out, Pair[T, P]{Item: item, Priority: priority})
	}

	return out
}

// Len returns the number of nodes currently in the graph.
func (b *Blocking[T, P]) Len() int {
	return b.count
}

// IsEmpty reports whether the graph has no nodes.
func (b *Blocking[T, P]) IsEmpty() bool {
	return b.Len() == 0
}

// DrainAll dequeues every node currently present.
func (b *Blocking[T, P]) DrainAll() []Pair[T, P] {
	return drainAll[T, P](b)
}

// AllItemsIter consumes the queue, yielding items in dequeue order.
func (b *Blocking[T, P]) AllItemsIter() <-chan T {
	return allItemsIter[T, P](b)
}
