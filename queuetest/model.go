// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queuetest

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gammazero/deque"
	"go.uber.org/zap"

	"github.com/ava-labs/pqueue/queue"
)

// A Generator returns a new element for insertion into a queue under test.
// Drawing from a small domain makes removal by value more likely to succeed.
type Generator[T any] func(*rand.Rand) T

// RunDeque applies `steps` random operations to both `q` and a reference
// model, failing the test as soon as they disagree. Every operation is logged
// at [logging.Debug] along with the resulting queue; see [ReplayOnFailure].
func RunDeque[T comparable](tb testing.TB, log logging.Logger, q queue.Deque[T], rng *rand.Rand, gen Generator[T], steps int) {
	tb.Helper()

	var model deque.Deque[T]
	q.ForEachPeek(model.PushBack)

	for step := range steps {
		var (
			op  string
			arg any
			err error
		)
		switch rng.IntN(8) {
		case 0, 1:
			op = "Enqueue"
			x := gen(rng)
			arg = x
			q.Enqueue(x)
			model.PushBack(x)

		case 2:
			op = "EnqueueFirst"
			x := gen(rng)
			arg = x
			q.EnqueueFirst(x)
			model.PushFront(x)

		case 3:
			op = "Dequeue"
			err = checkRemoval(q.Dequeue, model.Len(), model.PopFront)

		case 4:
			op = "DequeueLast"
			err = checkRemoval(q.DequeueLast, model.Len(), model.PopBack)

		case 5:
			op = "RemoveFirst"
			x := gen(rng)
			arg = x
			i := model.Index(func(y T) bool { return y == x })
			if i >= 0 {
				model.Remove(i)
			}
			if got, want := q.RemoveFirst(x), i >= 0; got != want {
				err = errors.New("RemoveFirst() disagrees with model")
			}

		case 6:
			op = "RemoveLast"
			x := gen(rng)
			arg = x
			i := model.RIndex(func(y T) bool { return y == x })
			if i >= 0 {
				model.Remove(i)
			}
			if got, want := q.RemoveLast(x), i >= 0; got != want {
				err = errors.New("RemoveLast() disagrees with model")
			}

		case 7:
			op = "Peek"
			i := rng.IntN(model.Len()+2) - 1
			arg = i
			got, perr := q.Peek(i)
			switch {
			case i < 0 || i >= model.Len():
				if !errors.Is(perr, queue.ErrIndexOutOfRange) {
					err = errors.New("Peek() out of range without ErrIndexOutOfRange")
				}
			case perr != nil:
				err = perr
			case got != model.At(i):
				err = errors.New("Peek() disagrees with model")
			}
		}

		log.Debug("Applied operation", stateFields(step, op, arg, q)...)
		if err != nil {
			tb.Fatalf("Step %d: %T.%s(): %v", step, q, op, err)
		}

		want := make([]T, model.Len())
		for i := range want {
			want[i] = model.At(i)
		}
		RequireContents(tb, q, want)
	}
}

// stateFields describes `q` after applying `op` so that a failing sequence can
// be reconstructed from the log.
func stateFields[T comparable](step int, op string, arg any, q queue.Queue[T]) []zap.Field {
	fs := []zap.Field{
		zap.Int("step", step),
		zap.String("op", op),
		zap.Any("arg", arg),
		zap.Int("len", q.Len()),
		zap.String("queue", queue.String(q)),
	}
	if c, ok := q.(interface{ Cap() int }); ok {
		fs = append(fs, zap.Int("cap", c.Cap()))
	}
	return fs
}

// checkRemoval calls `remove` and verifies its result against `modelRemove`,
// which is only called if the model is non-empty.
func checkRemoval[T comparable](remove func() (T, error), modelLen int, modelRemove func() T) error {
	got, err := remove()
	if modelLen == 0 {
		if !errors.Is(err, queue.ErrEmptyQueue) {
			return errors.New("removal from empty queue without ErrEmptyQueue")
		}
		return nil
	}
	if err != nil {
		return err
	}
	if got != modelRemove() {
		return errors.New("removed element disagrees with model")
	}
	return nil
}

// RunHeap applies `steps` random operations to `q`, which MUST be ordered by
// `order`, failing the test as soon as the heap invariant is violated or its
// elements differ from a reference multiset. Every operation is logged at
// [logging.Debug].
func RunHeap[T comparable](tb testing.TB, log logging.Logger, q queue.Queue[T], order queue.Comparator[T], rng *rand.Rand, gen Generator[T], steps int) {
	tb.Helper()

	model := q.ToSlice(nil)
	remove := func(x T) bool {
		for i, y := range model {
			if y == x {
				model = append(model[:i], model[i+1:]...)
				return true
			}
		}
		return false
	}

	for step := range steps {
		var (
			op  string
			arg any
			err error
		)
		switch rng.IntN(6) {
		case 0, 1, 2:
			op = "Enqueue"
			x := gen(rng)
			arg = x
			q.Enqueue(x)
			model = append(model, x)

		case 3:
			op = "Dequeue"
			got, derr := q.Dequeue()
			switch {
			case len(model) == 0:
				if !errors.Is(derr, queue.ErrEmptyQueue) {
					err = errors.New("removal from empty queue without ErrEmptyQueue")
				}
			case derr != nil:
				err = derr
			case !remove(got):
				err = errors.New("dequeued element not in model")
			default:
				for _, y := range model {
					if order(got, y) > 0 {
						err = errors.New("dequeued element is not the least")
						break
					}
				}
			}

		case 4:
			op = "RemoveFirst"
			x := gen(rng)
			arg = x
			if got, want := q.RemoveFirst(x), remove(x); got != want {
				err = errors.New("RemoveFirst() disagrees with model")
			}

		case 5:
			op = "RemoveLast"
			x := gen(rng)
			arg = x
			if got, want := q.RemoveLast(x), remove(x); got != want {
				err = errors.New("RemoveLast() disagrees with model")
			}
		}

		log.Debug("Applied operation", stateFields(step, op, arg, q)...)
		if err != nil {
			tb.Fatalf("Step %d: %T.%s(): %v", step, q, op, err)
		}

		RequireHeapInvariant(tb, q, order)
		want, cerr := queue.NewCircularFrom(model)
		if cerr != nil {
			tb.Fatalf("queue.NewCircularFrom(): %v", cerr)
		}
		if !queue.SameElements[T](want, q) {
			tb.Fatalf("Step %d: %T holds %v; want same elements as %v", step, q, q, want)
		}
	}
}
