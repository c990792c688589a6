package queue

import "fmt"

// Friendly projects an item to its shibboleth: two items are friends
// iff their shibboleths are equal.
type Friendly[T any, H comparable] func(item T) H

// Combiner merges a new priority into a group's current priority,
// reporting whether the group's priority actually changed.
type Combiner[P any] func(current, incoming P) (changed bool, merged P)

// MaxCombiner returns the default Combiner: a group's priority is the
// maximum priority ever combined into it, per less.
func MaxCombiner[P any](less func(a, b P) bool) Combiner[P] {
	return func(current, newP P) (bool, P) {
		if less(current, newP) {
			return true, newP
		}

		return false, current
	}
}

func equalPriority[P any](less func(a, b P) bool, a, b P) bool {
	return !less(a, b) && !less(b, a)
}

type shibbolethEntry[H comparable, P any] struct {
	key      H
	priority P
	seq      uint64
}

// shibbolethQueue is a linear-scan priority queue keyed by shibboleth,
// used internally by Grouping to track the priority of each waiting
// friend group. It is deliberately simple rather than asymptotically
// optimal.
type shibbolethQueue[H comparable, P any] struct {
	entries []shibbolethEntry[H, P]
	less    func(a, b P) bool
}

func newShibbolethQueue[H comparable, P any](less func(a, b P) bool) *shibbolethQueue[H, P] {
	return &shibbolethQueue[H, P]{less: less}
}

func (q *shibbolethQueue[H, P]) Len() int { return len(q.entries) }

func (q *shibbolethQueue[H, P]) IsEmpty() bool { return len(q.entries) == 0 }

func (q *shibbolethQueue[H, P]) Push(key H, priority P, seq uint64) {
	q.entries = append(q.entries, shibbolethEntry[H, P]{key: key, priority: priority, seq: seq})
}

func (q *shibbolethQueue[H, P]) indexOf(key H) int {
	for i, e := range q.entries {
		if e.key == key {
			return i
		}
	}

	return -1
}

// Priority returns the current priority tracked for key.
func (q *shibbolethQueue[H, P]) Priority(key H) (P, bool) {
	i := q.indexOf(key)
	if i < 0 {
		var zero P
		return zero, false
	}

	return q.entries[i].priority, true
}

// UpdatePriority overwrites the tracked priority for key.
func (q *shibbolethQueue[H, P]) UpdatePriority(key H, priority P) bool {
	i := q.indexOf(key)
	if i < 0 {
		return false
	}

	q.entries[i].priority = priority

	return true
}

func (q *shibbolethQueue[H, P]) maxIndex() int {
	best := -1

	for i, e := range q.entries {
		if best == -1 {
			best = i
			continue
		}

		bestEntry := q.entries[best]

		if q.less(bestEntry.priority, e.priority) {
			best = i
		} else if equalPriority(q.less, bestEntry.priority, e.priority) && e.seq < bestEntry.seq {
			best = i
		}
	}

	return best
}

// PopMax removes and returns the highest-priority shibboleth.
func (q *shibbolethQueue[H, P]) PopMax() (H, P, bool) {
	i := q.maxIndex()
	if i < 0 {
		var zh H
		var zp P
		return zh, zp, false
	}

	e := q.entries[i]
	q.entries = append(q.entries[:i], q.entries[i+1:]...)

	return e.key, e.priority, true
}

// PeekMax returns the highest-priority shibboleth without removing it.
func (q *shibbolethQueue[H, P]) PeekMax() (H, P, bool) {
	i := q.maxIndex()
	if i < 0 {
		var zh H
		var zp P
		return zh, zp, false
	}

	e := q.entries[i]

	return e.key, e.priority, true
}

type servingGroup[T, P any, H comparable] struct {
	shibboleth H
	priority   P
	items      []T
}

// Grouping is the "Israeli" priority queue: items sharing a shibboleth
// coalesce into a friend group. A group that has begun serving cannot
// be overtaken by a higher-priority newcomer, but late-arriving
// friends can still join it.
type Grouping[T, P any, H comparable] struct {
	less    func(a, b P) bool
	shib    Friendly[T, H]
	combine Combiner[P]

	serving      *servingGroup[T, P, H]
	waiting      map[H][]T
	pq           *shibbolethQueue[H, P]
	waitingCount int

	seq  uint64
	opts options
}

// NewGrouping returns an empty Grouping queue. less reports whether
// priority a is less urgent than priority b; shib projects an item to
// its shibboleth. combine may be nil, in which case MaxCombiner(less)
// is used.
func NewGrouping[T, P any, H comparable](less func(a, b P) bool, shib Friendly[T, H], combine Combiner[P], opts ...Option) *Grouping[T, P, H] {
	if less == nil {
		panic("queue: nil less func")
	}
	if shib == nil {
		panic("queue: nil shibboleth func")
	}
	if combine == nil {
		combine = MaxCombiner(less)
	}

	resolved := resolveOptions(opts)

	waitingCap := 0
	if resolved.capacity != nil {
		waitingCap = *resolved.capacity
	}

	return &Grouping[T, P, H]{
		less:    less,
		shib:    shib,
		combine: combine,
		waiting: make(map[H][]T, waitingCap),
		pq:      newShibbolethQueue[H, P](less),
		opts:    resolved,
	}
}

var _ Queue[int, int] = (*Grouping[int, int, int])(nil)

// EmptyCopy returns a fresh Grouping with the same ordering, shibboleth
// projection, combiner, and capacity hint, and zero items.
func (g *Grouping[T, P, H]) EmptyCopy() Queue[T, P] {
	var opts []Option
	if g.opts.capacity != nil {
		opts = append(opts, WithCapacity(*g.opts.capacity))
	}

	return NewGrouping[T, P, H](g.less, g.shib, g.combine, opts...)
}

// Enqueue inserts one item, absorbing it into a matching waiting group
// or the serving group's foyer if one exists, otherwise starting a new
// waiting group.
func (g *Grouping[T, P, H]) Enqueue(item T, priority P) {
	s := g.shib(item)

	if lst, ok := g.waiting[s]; ok {
		g.waiting[s] = append(lst, item)
		g.waitingCount++

		cur, ok := g.pq.Priority(s)
		if !ok {
			panic(fmt.Errorf("%w", ErrCorruptState))
		}

		if changed, merged := g.combine(cur, priority); changed {
			g.pq.UpdatePriority(s, merged)
		}

		return
	}

	if g.serving != nil && g.serving.shibboleth == s {
		g.serving.items = append(g.serving.items, item)

		if changed, merged := g.combine(g.serving.priority, priority); changed {
			g.serving.priority = merged
		}

		return
	}

	g.pq.Push(s, priority, g.seq)
	g.seq++
	g.waiting[s] = []T{item}
	g.waitingCount++
}

// EnqueueBatch inserts many items at one priority. If they all share a
// shibboleth, they are fused into the matching group in a single step;
// otherwise each item is enqueued individually.
func (g *Grouping[T, P, H]) EnqueueBatch(items []T, priority P) {
	if len(items) == 0 {
		return
	}

	s0 := g.shib(items[0])
	uniform := true

	for _, it := range items[1:] {
		if g.shib(it) != s0 {
			uniform = false
			break
		}
	}

	if !uniform {
		for _, it := range items {
			g.Enqueue(it, priority)
		}

		return
	}

	if lst, ok := g.waiting[s0]; ok {
		g.waiting[s0] = append(lst, items...)
		g.waitingCount += len(items)

		cur, ok := g.pq.Priority(s0)
		if !ok {
			panic(fmt.Errorf("%w", ErrCorruptState))
		}

		if changed, merged := g.combine(cur, priority); changed {
			g.pq.UpdatePriority(s0, merged)
		}

		return
	}

	if g.serving != nil && g.serving.shibboleth == s0 {
		g.serving.items = append(g.serving.items, items...)

		if changed, merged := g.combine(g.serving.priority, priority); changed {
			g.serving.priority = merged
		}

		return
	}

	g.pq.Push(s0, priority, g.seq)
	g.seq++

	copied := make([]T, len(items))
	copy(copied, items)
	g.waiting[s0] = copied
	g.waitingCount += len(items)
}

// EnqueueMany inserts many items at possibly differing priorities.
func (g *Grouping[T, P, H]) EnqueueMany(pairs []Pair[T, P]) {
	enqueueManyViaRuns[T, P](g, pairs, g.less)
}

// promoteNextGroup pops the top shibboleth from the waiting queue and
// installs it as the serving group. It panics with ErrCorruptState if
// invariant F1 has been violated.
func (g *Grouping[T, P, H]) promoteNextGroup() bool {
	s, p, ok := g.pq.PopMax()
	if !ok {
		return false
	}

	items, ok := g.waiting[s]
	if !ok {
		panic(fmt.Errorf("%w", ErrCorruptState))
	}
	delete(g.waiting, s)
	g.waitingCount -= len(items)

	g.serving = &servingGroup[T, P, H]{shibboleth: s, priority: p, items: items}

	return true
}

// Peek returns the serving group's first member if one exists,
// otherwise the first waiting member of the top shibboleth.
func (g *Grouping[T, P, H]) Peek() (t T, p P, err error) {
	if g.serving != nil && len(g.serving.items) > 0 {
		return g.serving.items[0], g.serving.priority, nil
	}

	s, p, ok := g.pq.PeekMax()
	if !ok {
		return t, p, ErrNoElementsAvailable
	}

	items, ok := g.waiting[s]
	if !ok || len(items) == 0 {
		panic(fmt.Errorf("%w", ErrCorruptState))
	}

	return items[0], p, nil
}

// Dequeue removes and returns the serving group's first member,
// promoting the next waiting group when no serving group exists.
func (g *Grouping[T, P, H]) Dequeue() (t T, p P, err error) {
	if g.serving != nil {
		switch len(g.serving.items) {
		case 0:
			g.serving = nil
		case 1:
			item := g.serving.items[0]
			priority := g.serving.priority
			g.serving = nil

			return item, priority, nil
		default:
			item := g.serving.items[0]
			priority := g.serving.priority
			g.serving.items = g.serving.items[1:]

			return item, priority, nil
		}
	}

	if !g.promoteNextGroup() {
		return t, p, ErrNoElementsAvailable
	}

	return g.Dequeue()
}

// pullGroupWise removes and returns the entire serving group as one
// unit, or, if none exists, promotes and returns the entire next
// waiting group.
func (g *Grouping[T, P, H]) pullGroupWise() []Pair[T, P] {
	if g.serving != nil {
		pairs := make([]Pair[T, P], len(g.serving.items))
		for i, it := range g.serving.items {
			pairs[i] = Pair[T, P]{Item: it, Priority: g.serving.priority}
		}
		g.serving = nil

		return pairs
	}

	if !g.promoteNextGroup() {
		return nil
	}

	pairs := make([]Pair[T, P], len(g.serving.items))
	for i, it := range g.serving.items {
		pairs[i] = Pair[T, P]{Item: it, Priority: g.serving.priority}
	}
	g.serving = nil

	return pairs
}

func allSameShibbolethAndPriority[T, P any, H comparable](pairs []Pair[T, P], shib Friendly[T, H], less func(a, b P) bool) bool {
	if len(pairs) == 0 {
		return true
	}

	s0 := shib(pairs[0].Item)
	p0 := pairs[0].Priority

	for _, pr := range pairs[1:] {
		if shib(pr.Item) != s0 {
			return false
		}
		if !equalPriority(less, p0, pr.Priority) {
			return false
		}
	}

	return true
}

// DequeueBatch pulls whole friend groups until at least target items
// are collected. If the result would exceed hardLimit, the tail is
// split off: if it is itself one intact friend group, it is restored
// as the new serving group; otherwise it is enqueued back normally.
func (g *Grouping[T, P, H]) DequeueBatch(target, hardLimit int) []Pair[T, P] {
	requireValidBatchBounds(target, hardLimit)

	var collected []Pair[T, P]

	for len(collected) < target && g.Len() > 0 {
		group := g.pullGroupWise()
		if group == nil {
			break
		}

		collected = append(collected, group...)
	}

	if len(collected) > hardLimit {
		tail := collected[hardLimit:]
		collected = collected[:hardLimit]

		if allSameShibbolethAndPriority[T, P, H](tail, g.shib, g.less) {
			items := make([]T, len(tail))
			for i, pr := range tail {
				items[i] = pr.Item
			}

			g.serving = &servingGroup[T, P, H]{
				shibboleth: g.shib(tail[0].Item),
				priority:   tail[0].Priority,
				items:      items,
			}
		} else {
			g.EnqueueMany(tail)
		}
	}

	return collected
}

// Len returns the serving group's size plus the waiting count.
func (g *Grouping[T, P, H]) Len() int {
	servingLen := 0
	if g.serving != nil {
		servingLen = len(g.serving.items)
	}

	return servingLen + g.waitingCount
}

// IsEmpty reports whether the queue has no items.
func (g *Grouping[T, P, H]) IsEmpty() bool {
	return g.Len() == 0
}

// DrainAll dequeues everything currently present.
func (g *Grouping[T, P, H]) DrainAll() []Pair[T, P] {
	return drainAll[T, P](g)
}

// AllItemsIter consumes the queue, yielding items in dequeue order.
func (g *Grouping[T, P, H]) AllItemsIter() <-chan T {
	return allItemsIter[T, P](g)
}
