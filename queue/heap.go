// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/ava-labs/pqueue/intmath"
)

// A Heap is a priority queue backed by an implicit binary min-heap; the
// element that compares least is dequeued first. The zero value is not valid;
// use one of the constructors.
//
// [Heap.Peek] exposes the raw buffer: only index 0 is guaranteed to be the
// least element, and other indices are in no particular order. The buffer
// doubles when full and is never shrunk automatically.
type Heap[T comparable] struct {
	buf []T // buf[:n] satisfies the heap invariant under `order`
	n   int

	order Comparator[T]
	// custom is the [Comparator] provided at construction, which is nil for
	// natural ordering.
	custom Comparator[T]
}

var _ Queue[int] = (*Heap[int])(nil)

// NewHeap constructs an empty [Heap] in ascending natural order.
func NewHeap[T constraints.Ordered](opts ...Option) (*Heap[T], error) {
	return newHeap(cmp.Compare[T], nil, opts...)
}

// NewHeapFunc constructs an empty [Heap] ordered by `c`.
func NewHeapFunc[T comparable](c Comparator[T], opts ...Option) (*Heap[T], error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil %T", ErrInvalidArgument, c)
	}
	return newHeap(c, c, opts...)
}

func newHeap[T comparable](order, custom Comparator[T], opts ...Option) (*Heap[T], error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Heap[T]{
		buf:    make([]T, c.capacity),
		order:  order,
		custom: custom,
	}, nil
}

// NewHeapFrom constructs a [Heap], in ascending natural order, holding a copy
// of `src`.
func NewHeapFrom[T constraints.Ordered](src []T, opts ...Option) (*Heap[T], error) {
	h, err := NewHeap[T](opts...)
	if err != nil {
		return nil, err
	}
	h.adopt(src)
	return h, nil
}

// NewHeapFromFunc constructs a [Heap], ordered by `c`, holding a copy of `src`.
func NewHeapFromFunc[T comparable](src []T, c Comparator[T], opts ...Option) (*Heap[T], error) {
	h, err := NewHeapFunc(c, opts...)
	if err != nil {
		return nil, err
	}
	h.adopt(src)
	return h, nil
}

func (h *Heap[T]) adopt(src []T) {
	h.Grow(len(src))
	h.n = copy(h.buf, src)
	h.heapify()
}

// WrapHeap constructs a [Heap], in ascending natural order, holding `buf[:n]`.
// The queue takes ownership of `buf`, which is reordered in place and MUST NOT
// be used after the call.
func WrapHeap[T constraints.Ordered](buf []T, n int) (*Heap[T], error) {
	return wrapHeap(buf, n, cmp.Compare[T], nil)
}

// WrapHeapFunc is equivalent to [WrapHeap] except that the heap is ordered by
// `c`.
func WrapHeapFunc[T comparable](buf []T, n int, c Comparator[T]) (*Heap[T], error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil %T", ErrInvalidArgument, c)
	}
	return wrapHeap(buf, n, c, c)
}

func wrapHeap[T comparable](buf []T, n int, order, custom Comparator[T]) (*Heap[T], error) {
	if n < 0 || n > len(buf) {
		return nil, fmt.Errorf("%w: wrapping %d elements of buffer with length %d", ErrInvalidArgument, n, len(buf))
	}
	h := &Heap[T]{
		buf:    buf,
		n:      n,
		order:  order,
		custom: custom,
	}
	h.heapify()
	return h, nil
}

// Cap returns the length of the backing buffer.
func (h *Heap[T]) Cap() int {
	return len(h.buf)
}

// Len returns the number of elements in the queue.
func (h *Heap[T]) Len() int {
	return h.n
}

// IsEmpty reports whether `h.Len() == 0`.
func (h *Heap[T]) IsEmpty() bool {
	return h.n == 0
}

// Clear removes all elements. The capacity is unchanged.
func (h *Heap[T]) Clear() {
	clear(h.buf[:h.n])
	h.n = 0
}

// Enqueue adds `x` to the queue.
func (h *Heap[T]) Enqueue(x T) {
	if h.n == len(h.buf) {
		size := len(h.buf)
		to := intmath.BoundedDouble(size, maxCapacity)
		if to <= size {
			panic(fmt.Sprintf("%T exceeded maximum capacity", h))
		}
		h.resize(to)
	}
	h.buf[h.n] = x
	h.n++
	h.siftUp(h.n - 1)
}

// EnqueueAll adds all of `xs` to the queue.
func (h *Heap[T]) EnqueueAll(xs ...T) {
	h.Grow(h.n + len(xs))
	for _, x := range xs {
		h.Enqueue(x)
	}
}

// EnqueueSeq adds all values yielded by `seq` to the queue.
func (h *Heap[T]) EnqueueSeq(seq iter.Seq[T]) {
	for x := range seq {
		h.Enqueue(x)
	}
}

// Dequeue removes and returns the least element.
func (h *Heap[T]) Dequeue() (T, error) {
	if h.n == 0 {
		return zero[T](), ErrEmptyQueue
	}
	x := h.buf[0]
	h.n--
	h.buf[0] = h.buf[h.n]
	h.buf[h.n] = zero[T]()
	if h.n > 0 {
		h.siftDown(0)
	}
	return x, nil
}

// Peek returns the element at index `i` of the heap's buffer. Only `Peek(0)`
// is meaningful as the least element.
func (h *Heap[T]) Peek(i int) (T, error) {
	if i < 0 || i >= h.n {
		return zero[T](), fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, i, h.n)
	}
	return h.buf[i], nil
}

// First returns the least element without removing it.
func (h *Heap[T]) First() (T, error) {
	if h.n == 0 {
		return zero[T](), ErrEmptyQueue
	}
	return h.buf[0], nil
}

// RemoveFirst removes the element equal to `v` with the lowest buffer index.
func (h *Heap[T]) RemoveFirst(v T) bool {
	if i := slices.IndexFunc(h.buf[:h.n], func(x T) bool { return same(x, v) }); i >= 0 {
		h.removeAt(i)
		return true
	}
	return false
}

// RemoveLast removes the element equal to `v` with the highest buffer index.
func (h *Heap[T]) RemoveLast(v T) bool {
	for i := h.n - 1; i >= 0; i-- {
		if same(h.buf[i], v) {
			h.removeAt(i)
			return true
		}
	}
	return false
}

// removeAt replaces `h.buf[i]` with the last element and restores the
// invariant. The moved element can belong above `i` if it came from a
// different subtree, so it is sifted up if sifting down didn't move it.
func (h *Heap[T]) removeAt(i int) {
	h.n--
	if i == h.n {
		h.buf[i] = zero[T]()
		return
	}
	h.buf[i] = h.buf[h.n]
	h.buf[h.n] = zero[T]()
	if h.siftDown(i) == i {
		h.siftUp(i)
	}
}

// siftUp moves `h.buf[i]` towards the root until its parent isn't greater.
func (h *Heap[T]) siftUp(i int) {
	x := h.buf[i]
	for i > 0 {
		parent := (i - 1) / 2
		if h.order(x, h.buf[parent]) >= 0 {
			break
		}
		h.buf[i] = h.buf[parent]
		i = parent
	}
	h.buf[i] = x
}

// siftDown moves `h.buf[i]` towards the leaves until neither child is less,
// returning its final index.
func (h *Heap[T]) siftDown(i int) int {
	x := h.buf[i]
	for {
		child := 2*i + 1
		if child >= h.n {
			break
		}
		if right := child + 1; right < h.n && h.order(h.buf[right], h.buf[child]) < 0 {
			child = right
		}
		if h.order(x, h.buf[child]) <= 0 {
			break
		}
		h.buf[i] = h.buf[child]
		i = child
	}
	h.buf[i] = x
	return i
}

// heapify establishes the invariant over all of `h.buf[:h.n]` in O(n).
func (h *Heap[T]) heapify() {
	for i := h.n/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
}

// OnChanged re-establishes the heap invariant over the entire buffer. It MUST
// be called after elements are modified in a way that changes their order,
// including via a buffer passed to [WrapHeap].
func (h *Heap[T]) OnChanged() {
	h.heapify()
}

func (h *Heap[T]) resize(size int) {
	buf := make([]T, size)
	copy(buf, h.buf[:h.n])
	h.buf = buf
}

// Grow increases the queue's capacity, if necessary, such that `n` elements can
// be held without further allocation.
func (h *Heap[T]) Grow(n int) {
	if n > len(h.buf) {
		h.resize(n)
	}
}

// Clone returns a copy of the heap with its own buffer, in an identical layout.
// The [Comparator] is shared.
func (h *Heap[T]) Clone() *Heap[T] {
	return &Heap[T]{
		buf:    slices.Clone(h.buf),
		n:      h.n,
		order:  h.order,
		custom: h.custom,
	}
}

// Copy returns [Heap.Clone] and a nil error.
func (h *Heap[T]) Copy() (Queue[T], error) {
	return h.Clone(), nil
}

// Comparator returns the [Comparator] provided at construction, or nil if the
// heap uses natural ordering.
func (h *Heap[T]) Comparator() Comparator[T] {
	return h.custom
}

// ToSlice returns the heap's buffer, in buffer order.
func (h *Heap[T]) ToSlice(dst []T) []T {
	if cap(dst) < h.n {
		dst = make([]T, h.n)
	}
	dst = dst[:h.n]
	copy(dst, h.buf[:h.n])
	return dst
}

// Drain dequeues every element, in priority order, calling `fn` with each.
func (h *Heap[T]) Drain(fn Consumer[T]) {
	for h.n > 0 {
		x, _ := h.Dequeue()
		fn(x)
	}
}

// All returns an iterator that dequeues each element, in priority order, before
// yielding it. If iteration stops early, the elements not yet yielded remain in
// the queue.
func (h *Heap[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h.n > 0 {
			x, _ := h.Dequeue()
			if !yield(x) {
				return
			}
		}
	}
}

// ForEachPeek calls `fn` with every element in buffer order.
func (h *Heap[T]) ForEachPeek(fn Consumer[T]) {
	for _, x := range h.buf[:h.n] {
		fn(x)
	}
}

// Equal returns [Equal] for the two queues, which depends on buffer layout.
func (h *Heap[T]) Equal(o Queue[T]) bool {
	return Equal[T](h, o)
}

// String returns [String] for the queue.
func (h *Heap[T]) String() string {
	return String[T](h)
}
