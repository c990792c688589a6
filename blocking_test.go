package queue_test

import (
	"testing"

	"github.com/Cobord/israeli"
	"github.com/matryer/is"
)

type rwItem struct {
	kind     string
	resource string
}

func writeBlocksRead(earlier, later rwItem) bool {
	return later.kind == "write" && earlier.kind == "read" && earlier.resource == later.resource
}

func TestBlocking(t *testing.T) {
	t.Parallel()

	zeroPriority := func(a, b int) bool { return a < b }

	t.Run("Scenario3", func(t *testing.T) {
		// spec.md §8 scenario 3: r1,r2,w1,r3 all same resource, priority 0.
		i := is.New(t)

		q := queue.NewBlocking[rwItem](zeroPriority, writeBlocksRead)

		r1 := rwItem{kind: "read", resource: "x"}
		r2 := rwItem{kind: "read", resource: "x"}
		w1 := rwItem{kind: "write", resource: "x"}
		r3 := rwItem{kind: "read", resource: "x"}

		q.Enqueue(r1, 0)
		q.Enqueue(r2, 0)
		q.Enqueue(w1, 0)
		q.Enqueue(r3, 0)

		var order []rwItem
		for !q.IsEmpty() {
			item, _, err := q.Dequeue()
			i.NoErr(err)
			order = append(order, item)
		}

		i.Equal(order, []rwItem{r1, r2, w1, r3})
	})

	t.Run("TopologicalOrderOverridesPriority", func(t *testing.T) {
		// E1: blocks(a,b) forces a before b regardless of priority.
		i := is.New(t)

		blocksAll := func(earlier, later string) bool { return true }

		q := queue.NewBlocking[string](zeroPriority, blocksAll)

		q.Enqueue("a", 0)
		q.Enqueue("b", 100)

		item, _, err := q.Dequeue()
		i.NoErr(err)
		i.Equal(item, "a")

		item, _, err = q.Dequeue()
		i.NoErr(err)
		i.Equal(item, "b")
	})

	t.Run("PriorityWithinUnblocked", func(t *testing.T) {
		// E2: among simultaneously-unblocked items, max priority dequeues first.
		i := is.New(t)

		neverBlocks := func(earlier, later int) bool { return false }

		q := queue.NewBlocking[int](ascendingLess, neverBlocks)

		q.Enqueue(1, 1)
		q.Enqueue(2, 5)
		q.Enqueue(3, 3)

		item, _, err := q.Dequeue()
		i.NoErr(err)
		i.Equal(item, 2)
	})

	t.Run("EmptyEquivalence", func(t *testing.T) {
		i := is.New(t)

		neverBlocks := func(earlier, later int) bool { return false }
		q := queue.NewBlocking[int](ascendingLess, neverBlocks)

		i.True(q.IsEmpty())
		_, _, err := q.Peek()
		i.True(err != nil)
	})

	t.Run("DequeueBatchRespectsHardLimit", func(t *testing.T) {
		i := is.New(t)

		neverBlocks := func(earlier, later int) bool { return false }
		q := queue.NewBlocking[int](ascendingLess, neverBlocks)

		for v := 0; v < 5; v++ {
			q.Enqueue(v, v)
		}

		got := q.DequeueBatch(2, 2)
		i.Equal(len(got), 2)
	})

	t.Run("NilBlockerPanics", func(t *testing.T) {
		i := is.New(t)

		defer func() {
			p := recover()
			i.True(p != nil)
		}()

		queue.NewBlocking[int](ascendingLess, nil)
	})
}
