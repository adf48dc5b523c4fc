// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/ava-labs/pqueue/intmath"
)

// MinCapacity is the smallest buffer that a [Circular] queue will shrink to.
const MinCapacity = 4

const maxCapacity = math.MaxInt

// A Circular queue is a double-ended FIFO queue backed by a ring buffer. The
// zero value is a valid, empty queue.
//
// The buffer doubles when an insertion would fill it and halves when a removal
// leaves it at most a quarter full, but never below [MinCapacity].
type Circular[T comparable] struct {
	ring []T // len(ring) == 0 || len(ring) > Len()
	head int // 0 <= head < len(ring); index of the first element
	tail int // 0 <= tail < len(ring); index after the last element
}

var _ Deque[int] = (*Circular[int])(nil)

// NewCircular constructs an empty [Circular] queue.
func NewCircular[T comparable](opts ...Option) (*Circular[T], error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Circular[T]{
		ring: make([]T, max(c.capacity, MinCapacity)),
	}, nil
}

// NewCircularFrom constructs a [Circular] queue holding a copy of `src`, with
// `src[0]` at the front.
func NewCircularFrom[T comparable](src []T, opts ...Option) (*Circular[T], error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	ring := make([]T, max(c.capacity, len(src)+1, MinCapacity))
	return &Circular[T]{
		ring: ring,
		tail: copy(ring, src),
	}, nil
}

// WrapCircular constructs a [Circular] queue holding `buf[:n]`, with `buf[0]`
// at the front. The queue takes ownership of `buf`, which MUST NOT be used
// after the call. If `buf` is shorter than [MinCapacity], or if it has no
// spare slot (`n == len(buf)`), its contents are instead copied into a new
// buffer.
func WrapCircular[T comparable](buf []T, n int) (*Circular[T], error) {
	if n < 0 || n > len(buf) {
		return nil, fmt.Errorf("%w: wrapping %d elements of buffer with length %d", ErrInvalidArgument, n, len(buf))
	}
	if n == len(buf) || len(buf) < MinCapacity {
		b := make([]T, max(MinCapacity, intmath.BoundedDouble(n, maxCapacity)))
		copy(b, buf[:n])
		buf = b
	}
	return &Circular[T]{
		ring: buf,
		tail: n,
	}, nil
}

// Cap returns the length of the backing buffer. It is always greater than
// [Circular.Len] unless the queue is an unused zero value.
func (q *Circular[T]) Cap() int {
	return len(q.ring)
}

// Len returns the number of elements in the queue.
func (q *Circular[T]) Len() int {
	if q.tail >= q.head {
		return q.tail - q.head
	}
	return len(q.ring) - q.head + q.tail
}

// IsEmpty reports whether `q.Len() == 0`.
func (q *Circular[T]) IsEmpty() bool {
	return q.head == q.tail
}

// ringIndex converts the logical index `i` into an index of `q.ring`.
func (q *Circular[T]) ringIndex(i int) int {
	return (q.head + i) % len(q.ring)
}

// Clear removes all elements. The capacity is unchanged.
func (q *Circular[T]) Clear() {
	clear(q.ring)
	q.head, q.tail = 0, 0
}

// Enqueue appends `x` to the back of the queue.
func (q *Circular[T]) Enqueue(x T) {
	if len(q.ring) == 0 {
		q.ring = make([]T, MinCapacity)
	}
	q.ring[q.tail] = x
	q.tail = (q.tail + 1) % len(q.ring)
	if q.tail == q.head {
		q.grow()
	}
}

// EnqueueFirst prepends `x` to the front of the queue, such that it will be
// the next element returned by [Circular.Dequeue].
func (q *Circular[T]) EnqueueFirst(x T) {
	if len(q.ring) == 0 {
		q.ring = make([]T, MinCapacity)
	}
	q.head = intmath.Mod(q.head-1, len(q.ring))
	q.ring[q.head] = x
	if q.head == q.tail {
		q.grow()
	}
}

// EnqueueAll appends all of `xs`, in order, to the back of the queue.
func (q *Circular[T]) EnqueueAll(xs ...T) {
	q.Grow(q.Len() + len(xs))
	for _, x := range xs {
		q.Enqueue(x)
	}
}

// EnqueueSeq appends all values yielded by `seq` to the back of the queue.
func (q *Circular[T]) EnqueueSeq(seq iter.Seq[T]) {
	for x := range seq {
		q.Enqueue(x)
	}
}

// Dequeue removes and returns the element at the front of the queue.
func (q *Circular[T]) Dequeue() (T, error) {
	if q.IsEmpty() {
		return zero[T](), ErrEmptyQueue
	}
	x := q.ring[q.head]
	q.ring[q.head] = zero[T]()
	q.head = (q.head + 1) % len(q.ring)
	q.maybeShrink()
	return x, nil
}

// DequeueLast removes and returns the element at the back of the queue.
func (q *Circular[T]) DequeueLast() (T, error) {
	if q.IsEmpty() {
		return zero[T](), ErrEmptyQueue
	}
	q.tail = intmath.Mod(q.tail-1, len(q.ring))
	x := q.ring[q.tail]
	q.ring[q.tail] = zero[T]()
	q.maybeShrink()
	return x, nil
}

// Peek returns the `i`th element from the front of the queue.
func (q *Circular[T]) Peek(i int) (T, error) {
	if n := q.Len(); i < 0 || i >= n {
		return zero[T](), fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, i, n)
	}
	return q.ring[q.ringIndex(i)], nil
}

// First returns the element at the front of the queue.
func (q *Circular[T]) First() (T, error) {
	if q.IsEmpty() {
		return zero[T](), ErrEmptyQueue
	}
	return q.ring[q.head], nil
}

// Last returns the element at the back of the queue.
func (q *Circular[T]) Last() (T, error) {
	if q.IsEmpty() {
		return zero[T](), ErrEmptyQueue
	}
	return q.ring[intmath.Mod(q.tail-1, len(q.ring))], nil
}

// RemoveFirst removes the element equal to `v` that is closest to the front.
func (q *Circular[T]) RemoveFirst(v T) bool {
	for i, n := 0, q.Len(); i < n; i++ {
		if idx := q.ringIndex(i); same(q.ring[idx], v) {
			q.removeAt(idx)
			return true
		}
	}
	return false
}

// RemoveLast removes the element equal to `v` that is closest to the back.
func (q *Circular[T]) RemoveLast(v T) bool {
	for i := q.Len() - 1; i >= 0; i-- {
		if idx := q.ringIndex(i); same(q.ring[idx], v) {
			q.removeAt(idx)
			return true
		}
	}
	return false
}

// removeAt removes the element at `q.ring[idx]`, closing the gap by shifting
// whichever of the preceding or following elements are fewer.
func (q *Circular[T]) removeAt(idx int) {
	size := len(q.ring)
	before := intmath.RingDistance(q.head, idx, size)
	after := intmath.RingDistance(idx, q.tail, size) - 1

	if before <= after {
		for i := idx; i != q.head; {
			prev := intmath.Mod(i-1, size)
			q.ring[i] = q.ring[prev]
			i = prev
		}
		q.ring[q.head] = zero[T]()
		q.head = (q.head + 1) % size
	} else {
		last := intmath.Mod(q.tail-1, size)
		for i := idx; i != last; {
			next := (i + 1) % size
			q.ring[i] = q.ring[next]
			i = next
		}
		q.ring[last] = zero[T]()
		q.tail = last
	}
	q.maybeShrink()
}

// grow doubles the buffer. It MUST only be called when the ring is full, i.e.
// immediately after an insertion resulted in `head == tail`.
func (q *Circular[T]) grow() {
	size := len(q.ring)
	to := intmath.BoundedDouble(size, maxCapacity)
	if to <= size {
		panic(fmt.Sprintf("%T exceeded maximum capacity", q))
	}
	q.resize(to, size)
}

func (q *Circular[T]) maybeShrink() {
	if size := len(q.ring); size > MinCapacity && q.Len() <= size/4 {
		q.resize(intmath.BoundedHalve(size, MinCapacity), q.Len())
	}
}

// resize replaces the ring with one of length `size`, moving the `n` elements
// starting at `head` to the beginning. The length is explicit because it can't
// be derived from `head` and `tail` while the ring is full.
func (q *Circular[T]) resize(size, n int) {
	ring := make([]T, size)
	q.copyOut(ring, n)
	q.ring = ring
	q.head = 0
	q.tail = n
}

// copyOut copies the first `n` elements into `dst`, which MUST have length of
// at least `n`.
func (q *Circular[T]) copyOut(dst []T, n int) {
	end := min(q.head+n, len(q.ring))
	k := copy(dst, q.ring[q.head:end])
	copy(dst[k:n], q.ring[:n-k])
}

// Grow increases the queue's capacity, if necessary, such that `n` elements can
// be held without further allocation.
func (q *Circular[T]) Grow(n int) {
	if n < len(q.ring) {
		return
	}
	q.resize(max(n+1, MinCapacity), q.Len())
}

// Trim reduces the capacity to the smallest value that holds the current
// elements and is at least `target` and [MinCapacity]. It reports whether the
// buffer was reallocated.
func (q *Circular[T]) Trim(target int) bool {
	n := q.Len()
	size := max(target, n+1, MinCapacity)
	if size >= len(q.ring) {
		return false
	}
	q.resize(size, n)
	return true
}

// ClearAndTrim removes all elements and, if the buffer is larger than
// `max(target,MinCapacity)`, replaces it with one of that size.
func (q *Circular[T]) ClearAndTrim(target int) {
	size := max(target, MinCapacity)
	if size >= len(q.ring) {
		q.Clear()
		return
	}
	q.ring = make([]T, size)
	q.head, q.tail = 0, 0
}

// OnChanged is a no-op as a [Circular] queue has no ordering invariant.
func (q *Circular[T]) OnChanged() {}

// Clone returns a copy of the queue with its own buffer, in an identical
// layout.
func (q *Circular[T]) Clone() *Circular[T] {
	return &Circular[T]{
		ring: slices.Clone(q.ring),
		head: q.head,
		tail: q.tail,
	}
}

// Copy returns [Circular.Clone] and a nil error.
func (q *Circular[T]) Copy() (Queue[T], error) {
	return q.Clone(), nil
}

// Comparator always returns nil as elements are kept in insertion order.
func (q *Circular[T]) Comparator() Comparator[T] {
	return nil
}

// ToSlice returns the elements in front-to-back order.
func (q *Circular[T]) ToSlice(dst []T) []T {
	n := q.Len()
	if cap(dst) < n {
		dst = make([]T, n)
	}
	dst = dst[:n]
	if n > 0 {
		q.copyOut(dst, n)
	}
	return dst
}

// Drain calls `fn` with every element, front to back, and then clears the
// queue.
func (q *Circular[T]) Drain(fn Consumer[T]) {
	for i, n := 0, q.Len(); i < n; i++ {
		fn(q.ring[q.ringIndex(i)])
	}
	q.Clear()
}

// All returns an iterator that dequeues each element before yielding it. If
// iteration stops early, the elements not yet yielded remain in the queue.
func (q *Circular[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for !q.IsEmpty() {
			x, _ := q.Dequeue()
			if !yield(x) {
				return
			}
		}
	}
}

// ForEachPeek calls `fn` with every element, front to back.
func (q *Circular[T]) ForEachPeek(fn Consumer[T]) {
	for i, n := 0, q.Len(); i < n; i++ {
		fn(q.ring[q.ringIndex(i)])
	}
}

// Equal returns [Equal] for the two queues.
func (q *Circular[T]) Equal(o Queue[T]) bool {
	return Equal[T](q, o)
}

// String returns [String] for the queue.
func (q *Circular[T]) String() string {
	return String[T](q)
}
