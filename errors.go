package queue

import (
	"errors"
)

// ErrNoElementsAvailable is an error returned whenever there are no elements
// available to be extracted from a queue.
var ErrNoElementsAvailable = errors.New("no elements available in the queue")

// ErrCorruptState is wrapped and returned (via panic, never a normal
// return value) when an internal invariant that the implementation
// relies on has been violated. Observing it indicates a bug in this
// package rather than caller misuse.
var ErrCorruptState = errors.New("queue: corrupt internal state")

// ErrInvalidBatchBounds is wrapped and returned (via panic) when
// DequeueBatch is called with hardLimit < target.
var ErrInvalidBatchBounds = errors.New("queue: hard limit is less than target")
