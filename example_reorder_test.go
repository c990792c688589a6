package queue_test

import (
	"fmt"

	"github.com/Cobord/israeli"
)

func ExampleNewReorder() {
	next := 0
	source := func() (queue.Pending[int, int], bool) {
		if next > 6 {
			return queue.Pending[int, int]{}, false
		}

		i := next
		next++

		return queue.One(i, 20+i), true
	}

	r := queue.NewReorder[int, int](source, queue.NewOrdinary[int](func(a, b int) bool { return a < b }), 4)

	for {
		item, priority, ok := r.Next()
		if !ok {
			break
		}

		fmt.Println(item, priority)
	}

	// Output:
	// 3 23
	// 4 24
	// 5 25
	// 6 26
	// 2 22
	// 1 21
	// 0 20
}
