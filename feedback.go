package queue

type outcomeKind int

const (
	outcomeFinishedOnly outcomeKind = iota
	outcomeFinishedAndFeedOne
	outcomeFinishedAndFeedMany
	outcomeJustFeedOne
	outcomeJustFeedMany
)

// Outcome is the result of applying a Processor to one dequeued item:
// exactly one of five cases, constructed via the functions below.
type Outcome[F, T, P any] struct {
	kind     outcomeKind
	finished F
	one      Pair[T, P]
	many     []T
	priority P
}

// FinishedOnly emits result with nothing fed back.
func FinishedOnly[F, T, P any](result F) Outcome[F, T, P] {
	return Outcome[F, T, P]{kind: outcomeFinishedOnly, finished: result}
}

// FinishedAndFeedOne emits result and pushes one item back.
func FinishedAndFeedOne[F, T, P any](result F, item T, priority P) Outcome[F, T, P] {
	return Outcome[F, T, P]{
		kind:     outcomeFinishedAndFeedOne,
		finished: result,
		one:      Pair[T, P]{Item: item, Priority: priority},
	}
}

// FinishedAndFeedMany emits result and pushes a batch back.
func FinishedAndFeedMany[F, T, P any](result F, items []T, priority P) Outcome[F, T, P] {
	return Outcome[F, T, P]{
		kind:     outcomeFinishedAndFeedMany,
		finished: result,
		many:     items,
		priority: priority,
	}
}

// JustFeedOne emits nothing this step, pushes one item back, and
// signals the caller to try again.
func JustFeedOne[F, T, P any](item T, priority P) Outcome[F, T, P] {
	return Outcome[F, T, P]{kind: outcomeJustFeedOne, one: Pair[T, P]{Item: item, Priority: priority}}
}

// JustFeedMany emits nothing this step, pushes a batch back, and
// signals the caller to try again.
func JustFeedMany[F, T, P any](items []T, priority P) Outcome[F, T, P] {
	return Outcome[F, T, P]{kind: outcomeJustFeedMany, many: items, priority: priority}
}

// Processor turns one dequeued (item, priority) into an Outcome.
type Processor[F, T, P any] func(item T, priority P) Outcome[F, T, P]

// Feedback wraps a Reorder adapter and a Processor that may re-inject
// items for further processing before anything is emitted.
type Feedback[T, P, F any] struct {
	reorder *Reorder[T, P]
	process Processor[F, T, P]
}

// NewFeedback returns a Feedback wrapping reorder and process.
func NewFeedback[T, P, F any](reorder *Reorder[T, P], process Processor[F, T, P]) *Feedback[T, P, F] {
	if reorder == nil {
		panic("queue: nil reorder adapter")
	}
	if process == nil {
		panic("queue: nil processor")
	}

	return &Feedback[T, P, F]{reorder: reorder, process: process}
}

// Next pulls from the wrapped Reorder and applies the processor,
// looping (rather than recursing) through any number of JustFeed*
// outcomes until a Finished* outcome is produced or the input is
// exhausted.
func (fb *Feedback[T, P, F]) Next() (result F, ok bool) {
	for {
		item, priority, more := fb.reorder.Next()
		if !more {
			return result, false
		}

		outcome := fb.process(item, priority)

		switch outcome.kind {
		case outcomeFinishedOnly:
			return outcome.finished, true

		case outcomeFinishedAndFeedOne:
			fb.reorder.EnqueueNow(outcome.one.Item, outcome.one.Priority)
			return outcome.finished, true

		case outcomeFinishedAndFeedMany:
			fb.reorder.EnqueueNowBatch(outcome.many, outcome.priority)
			return outcome.finished, true

		case outcomeJustFeedOne:
			fb.reorder.EnqueueNow(outcome.one.Item, outcome.one.Priority)

		case outcomeJustFeedMany:
			fb.reorder.EnqueueNowBatch(outcome.many, outcome.priority)
		}
	}
}

// Flush drains the wrapped Reorder's buffer into a snapshot first, so
// it never re-observes anything fed back during its own pass. It then
// applies the processor to each drained pair, emitting the Finished*
// results and re-enqueuing JustFeed* items into the now-empty buffer
// for a later Next or Flush to pick up.
func (fb *Feedback[T, P, F]) Flush() []F {
	buffered := fb.reorder.Flush()

	var results []F

	for _, pr := range buffered {
		outcome := fb.process(pr.Item, pr.Priority)

		switch outcome.kind {
		case outcomeFinishedOnly:
			results = append(results, outcome.finished)

		case outcomeFinishedAndFeedOne:
			results = append(results, outcome.finished)
			fb.reorder.EnqueueNow(outcome.one.Item, outcome.one.Priority)

		case outcomeFinishedAndFeedMany:
			results = append(results, outcome.finished)
			fb.reorder.EnqueueNowBatch(outcome.many, outcome.priority)

		case outcomeJustFeedOne:
			fb.reorder.EnqueueNow(outcome.one.Item, outcome.one.Priority)

		case outcomeJustFeedMany:
			fb.reorder.EnqueueNowBatch(outcome.many, outcome.priority)
		}
	}

	return results
}
