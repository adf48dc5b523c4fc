// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package queue provides array-backed queues of arbitrary comparable element
// types: a circular-buffer double-ended queue ([Circular]) and a binary-heap
// priority queue ([Heap]), both implementing the [Queue] contract.
//
// Neither backend is safe for concurrent use. Enumeration via [Queue.Drain]
// and [Queue.All] consumes the queue; use [Queue.ForEachPeek] or
// [Queue.ToSlice] to read without removing.
package queue

import (
	"errors"
	"iter"
)

var (
	// ErrEmptyQueue is returned when removing from, or inspecting the head of,
	// a queue with no elements.
	ErrEmptyQueue = errors.New("empty queue")
	// ErrIndexOutOfRange is returned by [Queue.Peek] for an index outside
	// `[0,Len())`.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidArgument is returned by constructors given a negative capacity
	// or size, or a buffer shorter than its declared element count.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported is returned by [Queue] decorators that can't honour an
	// operation, e.g. [Queue.Copy]. The backends in this package never return
	// it.
	ErrUnsupported = errors.New("unsupported operation")
)

// A Comparator defines a total order over T, returning a negative number,
// zero, or a positive number if `a` is less than, equal to, or greater than `b`
// respectively.
type Comparator[T any] func(a, b T) int

// A LessThan implementation has a strict ordering.
type LessThan[T any] interface {
	LessThan(T) bool
}

// ComparatorOf returns a [Comparator] derived from T's [LessThan] method.
func ComparatorOf[T LessThan[T]]() Comparator[T] {
	return func(a, b T) int {
		switch {
		case a.LessThan(b):
			return -1
		case b.LessThan(a):
			return 1
		default:
			return 0
		}
	}
}

// A Consumer is called once per element by enumeration methods.
type Consumer[T any] func(T)

// A Queue is the contract shared by all backends. Index 0 is always the next
// element to be dequeued.
type Queue[T comparable] interface {
	// Len returns the number of elements in the queue.
	Len() int
	IsEmpty() bool
	// Clear removes all elements without releasing the backing buffer.
	Clear()

	Enqueue(T)
	EnqueueAll(...T)
	EnqueueSeq(iter.Seq[T])
	// Dequeue removes and returns the next element, returning [ErrEmptyQueue]
	// if there is none.
	Dequeue() (T, error)

	// Peek returns the element at logical position `i`. Only `Peek(0)` has
	// backend-independent meaning; see each backend for others.
	Peek(i int) (T, error)
	// First is equivalent to `Peek(0)` except that it returns [ErrEmptyQueue].
	First() (T, error)

	// RemoveFirst removes the first element equal to `v`, scanning from index
	// 0, and reports whether one was found. NaN is equal to NaN.
	RemoveFirst(v T) bool
	// RemoveLast is equivalent to [Queue.RemoveFirst] but scans from the end.
	RemoveLast(v T) bool

	// OnChanged re-establishes internal ordering after the backing buffer was
	// modified outside of the queue's methods.
	OnChanged()
	// Copy returns an independent shallow copy of the queue.
	Copy() (Queue[T], error)
	// Comparator returns the ordering in use, which MAY be nil.
	Comparator() Comparator[T]

	// ToSlice returns the elements in `Peek` order without modifying the
	// queue. The backing array of `dst` is reused if it has sufficient
	// capacity.
	ToSlice(dst []T) []T
	// Drain calls `fn` with every element and leaves the queue empty.
	Drain(fn Consumer[T])
	// All returns a single-use iterator that removes each element before
	// yielding it.
	All() iter.Seq[T]
	// ForEachPeek calls `fn` with every element in `Peek` order without
	// modifying the queue.
	ForEachPeek(fn Consumer[T])
}

// A Deque is a [Queue] that also supports insertion at the front and removal
// from the back.
type Deque[T comparable] interface {
	Queue[T]
	EnqueueFirst(T)
	// DequeueLast removes and returns the element at index `Len()-1`.
	DequeueLast() (T, error)
	// Last returns the element at index `Len()-1` without removing it.
	Last() (T, error)
}

func zero[T any]() (z T) { return }

// same reports whether `a` and `b` are the same element. It differs from `==`
// only in that every NaN is the same as every other NaN.
func same[T comparable](a, b T) bool {
	return a == b || (isNaN(a) && isNaN(b))
}

// isNaN reports whether `x` is not equal to itself, which is only possible for
// floating-point (or complex) NaN values.
func isNaN[T comparable](x T) bool {
	return x != x //nolint:gocritic // NaN check over any comparable type
}
