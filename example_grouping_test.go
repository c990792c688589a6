package queue_test

import (
	"fmt"

	"github.com/Cobord/israeli"
)

func ExampleNewGrouping() {
	shibboleth := func(item string) byte { return item[0] }

	q := queue.NewGrouping[string, int, byte](func(a, b int) bool { return a < b }, shibboleth, nil)

	q.Enqueue("a1", 1)
	q.Enqueue("a2", 1)

	item, _, _ := q.Dequeue()
	fmt.Println(item)

	// A higher-priority item of a different shibboleth arrives only
	// after the "a" group has started serving, so it waits behind the
	// rest of the group.
	q.Enqueue("a3", 1)
	q.Enqueue("b1", 100)

	for !q.IsEmpty() {
		item, _, _ := q.Dequeue()
		fmt.Println(item)
	}

	// Output:
	// a1
	// a2
	// a3
	// b1
}
