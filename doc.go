// Package queue provides a family of single-threaded priority-queue
// variants that share one abstract contract, plus two stream adapters
// built on top of it.
//
// Ordinary is a plain max-priority queue, used throughout the package as
// the reference implementation for the abstract Queue contract. Blocking
// layers a dynamic "must precede" DAG on top of priority ordering.
// Grouping coalesces same-shibboleth items into a friend group that,
// once serving, cannot be overtaken by a higher-priority newcomer.
// Bucket dispatches to one of many inner queues keyed by a coarse-grained
// projection of the fine priority. Reorder and Feedback turn any Queue
// into a pull-based stream adapter.
//
// None of the types in this package are safe for concurrent use; every
// operation is synchronous and expects single-threaded callers.
package queue
