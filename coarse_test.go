package queue_test

import (
	"testing"

	"github.com/Cobord/israeli"
	"github.com/matryer/is"
)

func TestDivisorBucket(t *testing.T) {
	t.Parallel()

	i := is.New(t)

	d := queue.DivisorBucket[int]{Width: 10}

	i.Equal(d.Coarse(7), 0)
	i.Equal(d.Coarse(12), 1)
	i.Equal(d.Coarse(29), 2)

	prev, ok := d.Prev(2)
	i.True(ok)
	i.Equal(prev, 1)

	// Prev has no floor: it steps below zero rather than reporting
	// exhaustion, since scans terminate via the lower watermark instead.
	prev, ok = d.Prev(0)
	i.True(ok)
	i.Equal(prev, -1)

	i.True(d.Less(1, 2))
	i.True(!d.Less(2, 1))
}

func TestDivisorBucketNegativeKeys(t *testing.T) {
	i := is.New(t)

	d := queue.DivisorBucket[int]{Width: 10}

	current := 1
	for n := 0; n < 3; n++ {
		current, _ = d.Prev(current)
	}

	i.Equal(current, -2)
	i.True(d.Less(current, 1))
}

func TestDivisorBucketPanicsOnNonPositiveWidth(t *testing.T) {
	i := is.New(t)

	defer func() {
		p := recover()
		i.True(p != nil)
	}()

	queue.DivisorBucket[int]{Width: 0}.Coarse(5)
}

func TestIdentityBucket(t *testing.T) {
	t.Parallel()

	i := is.New(t)

	id := queue.IdentityBucket[int]{}

	i.Equal(id.Coarse(42), 42)

	prev, ok := id.Prev(1)
	i.True(ok)
	i.Equal(prev, 0)

	// No floor here either: stepping below zero is supported.
	prev, ok = id.Prev(0)
	i.True(ok)
	i.Equal(prev, -1)
}
