package queue

type options struct {
	capacity *int
}

// An Option configures a Queue using the functional options paradigm.
type Option interface {
	apply(*options)
}

type capacityOption int

func (c capacityOption) apply(opts *options) {
	ic := int(c)

	opts.capacity = &ic
}

// WithCapacity hints at the number of items a queue is expected to hold,
// so its backing storage can be preallocated. It is only a hint: none of
// the variants in this package enforce a maximum size.
func WithCapacity(capacity int) Option {
	return capacityOption(capacity)
}

func resolveOptions(opts []Option) options {
	var resolved options

	for _, o := range opts {
		o.apply(&resolved)
	}

	return resolved
}
