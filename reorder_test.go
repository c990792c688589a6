package queue_test

import (
	"testing"

	"github.com/Cobord/israeli"
	"github.com/matryer/is"
)

func intSource(n int) queue.Source[int, int] {
	next := 0

	return func() (queue.Pending[int, int], bool) {
		if next > n {
			return queue.Pending[int, int]{}, false
		}

		i := next
		next++

		return queue.One(i, 20+i), true
	}
}

func TestReorder(t *testing.T) {
	t.Parallel()

	t.Run("Scenario2", func(t *testing.T) {
		// spec.md §8 scenario 2: capacity 4 over i=0..=6, priority 20+i.
		i := is.New(t)

		r := queue.NewReorder[int, int](intSource(6), queue.NewOrdinary[int](ascendingLess), 4)

		var gotItems []int
		var gotPriorities []int

		for {
			item, priority, ok := r.Next()
			if !ok {
				break
			}

			gotItems = append(gotItems, item)
			gotPriorities = append(gotPriorities, priority)
		}

		i.Equal(gotItems, []int{3, 4, 5, 6, 2, 1, 0})
		i.Equal(gotPriorities, []int{23, 24, 25, 26, 22, 21, 20})
	})

	t.Run("CapacityBehavior", func(t *testing.T) {
		// H1: Next yields the max priority among the first K unconsumed
		// inputs.
		i := is.New(t)

		r := queue.NewReorder[int, int](intSource(9), queue.NewOrdinary[int](ascendingLess), 2)

		item, priority, ok := r.Next()
		i.True(ok)
		i.Equal(item, 1)
		i.Equal(priority, 21)
	})

	t.Run("EnqueueNowInjectsBetweenPulls", func(t *testing.T) {
		i := is.New(t)

		exhausted := func() (queue.Pending[int, int], bool) { return queue.Pending[int, int]{}, false }

		r := queue.NewReorder[int, int](exhausted, queue.NewOrdinary[int](ascendingLess), 4)

		r.EnqueueNow(42, 100)

		item, priority, ok := r.Next()
		i.True(ok)
		i.Equal(item, 42)
		i.Equal(priority, 100)
	})

	t.Run("ChainMorePullsSecondSourceAfterFirstExhausted", func(t *testing.T) {
		i := is.New(t)

		r := queue.NewReorder[int, int](intSource(0), queue.NewOrdinary[int](ascendingLess), 1)
		chained := r.ChainMore(func() (queue.Pending[int, int], bool) {
			return queue.One(99, 99), true
		})

		first, _, ok := chained.Next()
		i.True(ok)
		i.Equal(first, 0)

		second, priority, ok := chained.Next()
		i.True(ok)
		i.Equal(second, 99)
		i.Equal(priority, 99)
	})

	t.Run("FlushDoesNotConsultInput", func(t *testing.T) {
		i := is.New(t)

		neverPulled := func() (queue.Pending[int, int], bool) {
			t.Fatal("flush must not consult the input")
			return queue.Pending[int, int]{}, false
		}

		r := queue.NewReorder[int, int](neverPulled, queue.NewOrdinary[int](ascendingLess), 4)

		r.EnqueueNow(1, 1)
		r.EnqueueNow(2, 5)

		flushed := r.Flush()

		i.Equal(len(flushed), 2)
		i.Equal(flushed[0].Item, 2)
		i.Equal(flushed[1].Item, 1)
	})
}
