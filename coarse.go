package queue

import "golang.org/x/exp/constraints"

// CoarseGrain projects a fine-grained priority P down to a coarse key
// C used to pick a bucket in Bucket. The projection must be monotone:
// if a is no less urgent than b, then Coarse(a) must be no less urgent
// than Coarse(b) under the same ordering. Prev steps a coarse key down
// to its immediate predecessor, which Bucket uses to widen its search
// when the current bucket is empty.
type CoarseGrain[P any, C comparable] interface {
	// Coarse projects a fine priority down to its bucket key.
	Coarse(p P) C

	// Prev returns the coarse key immediately below c, and false if c is
	// already the lowest possible key. An implementation with no such
	// floor may always return true; Bucket's scans terminate via the
	// lower watermark regardless.
	Prev(c C) (C, bool)

	// Less reports whether a is a less urgent coarse key than b.
	Less(a, b C) bool
}

// DivisorBucket groups integer priorities into buckets by integer
// division, the simplest possible coarse-graining: priority p falls in
// bucket p/width. Go's division truncates toward zero, so bucket 0
// holds every p with -width < p < width (2*width-1 values) while every
// other bucket holds exactly width values. P is restricted to signed
// integer types so that Prev can step below zero without wrapping.
type DivisorBucket[P constraints.Signed] struct {
	Width P
}

// Coarse projects p to p / Width.
func (d DivisorBucket[P]) Coarse(p P) P {
	if d.Width <= 0 {
		panic("queue: DivisorBucket width must be positive")
	}

	return p / d.Width
}

// Prev returns c-1, unconditionally: this coarse-graining places no
// floor on the key, so negative priorities are supported exactly like
// non-negative ones. Bucket's downward scans terminate via the lower
// watermark, not via Prev reporting false.
func (d DivisorBucket[P]) Prev(c P) (P, bool) {
	return c - 1, true
}

// Less reports whether a is a less urgent bucket than b.
func (d DivisorBucket[P]) Less(a, b P) bool {
	return a < b
}

// IdentityBucket is the degenerate coarse-graining where every distinct
// priority value is its own bucket; Bucket then behaves like Ordinary
// but routed through per-value sub-queues. P is restricted to signed
// integer types so that Prev can step below zero without wrapping.
type IdentityBucket[P constraints.Signed] struct{}

// Coarse returns p unchanged.
func (IdentityBucket[P]) Coarse(p P) P {
	return p
}

// Prev returns c-1, unconditionally: every priority value is its own
// bucket with no floor, so negative priorities work the same as
// non-negative ones. Bucket's downward scans terminate via the lower
// watermark, not via Prev reporting false.
func (IdentityBucket[P]) Prev(c P) (P, bool) {
	return c - 1, true
}

// Less reports whether a is a less urgent bucket than b.
func (IdentityBucket[P]) Less(a, b P) bool {
	return a < b
}
