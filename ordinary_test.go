package queue_test

import (
	"testing"

	"github.com/Cobord/israeli"
	"github.com/matryer/is"
)

func ascendingLess(a, b int) bool { return a < b }

func TestOrdinary(t *testing.T) {
	t.Parallel()

	t.Run("NilLessFunc", func(t *testing.T) {
		i := is.New(t)

		defer func() {
			p := recover()
			i.Equal(p, "queue: nil less func")
		}()

		queue.NewOrdinary[int](nil)
	})

	t.Run("Scenario1", func(t *testing.T) {
		// spec.md §8 scenario 1: enqueue (a,1),(b,3),(c,2); dequeue order b,c,a.
		i := is.New(t)

		q := queue.NewOrdinary[string](ascendingLess)

		q.Enqueue("a", 1)
		q.Enqueue("b", 3)
		q.Enqueue("c", 2)

		var order []string
		for !q.IsEmpty() {
			item, _, err := q.Dequeue()
			i.NoErr(err)
			order = append(order, item)
		}

		i.Equal(order, []string{"b", "c", "a"})
	})

	t.Run("TiesBreakByInsertionOrder", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[string](ascendingLess)

		q.Enqueue("first", 5)
		q.Enqueue("second", 5)
		q.Enqueue("third", 5)

		item, _, err := q.Dequeue()
		i.NoErr(err)
		i.Equal(item, "first")
	})

	t.Run("PeekAgreement", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[int](ascendingLess)
		q.Enqueue(1, 1)
		q.Enqueue(2, 7)

		peekedItem, peekedPriority, err := q.Peek()
		i.NoErr(err)

		item, priority, err := q.Dequeue()
		i.NoErr(err)

		i.Equal(peekedItem, item)
		i.Equal(peekedPriority, priority)
	})

	t.Run("EmptyEquivalence", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[int](ascendingLess)
		i.True(q.IsEmpty())

		_, _, err := q.Peek()
		i.True(err != nil)

		_, _, err = q.Dequeue()
		i.True(err != nil)
	})

	t.Run("DrainCompleteness", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[int](ascendingLess)
		for _, v := range []int{3, 1, 4, 1, 5} {
			q.Enqueue(v, v)
		}

		n := q.Len()
		drained := q.DrainAll()

		i.Equal(len(drained), n)
		i.True(q.IsEmpty())
	})

	t.Run("BatchBounds", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[int](ascendingLess)
		for _, v := range []int{1, 2, 3, 4, 5} {
			q.Enqueue(v, v)
		}

		got := q.DequeueBatch(2, 3)
		i.True(len(got) >= 2)
		i.True(len(got) <= 3)
	})

	t.Run("BatchBoundsPanicsOnInvalidBounds", func(t *testing.T) {
		i := is.New(t)

		defer func() {
			p := recover()
			i.True(p != nil)
		}()

		q := queue.NewOrdinary[int](ascendingLess)
		q.DequeueBatch(3, 1)
	})

	t.Run("EnqueueManyGroupsEqualPriorityRuns", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[int](ascendingLess)
		q.EnqueueMany([]queue.Pair[int, int]{
			{Item: 1, Priority: 1},
			{Item: 2, Priority: 1},
			{Item: 3, Priority: 2},
		})

		item, _, err := q.Dequeue()
		i.NoErr(err)
		i.Equal(item, 3)
	})

	t.Run("EmptyCopyHasSameOrderingAndNoItems", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[int](ascendingLess)
		q.Enqueue(1, 1)

		copyQ := q.EmptyCopy()
		i.True(copyQ.IsEmpty())

		copyQ.Enqueue(1, 9)
		copyQ.Enqueue(2, 3)

		item, _, err := copyQ.Dequeue()
		i.NoErr(err)
		i.Equal(item, 1)
	})

	t.Run("AllItemsIter", func(t *testing.T) {
		i := is.New(t)

		q := queue.NewOrdinary[int](ascendingLess)
		q.Enqueue(1, 2)
		q.Enqueue(2, 1)

		var got []int
		for item := range q.AllItemsIter() {
			got = append(got, item)
		}

		i.Equal(got, []int{1, 2})
	})
}
