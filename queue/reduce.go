// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import "iter"

// The functions in this file never modify the queue. They visit elements in
// `Peek` order, which for a [Heap] is buffer order and not priority order.

// Values returns an iterator over the elements in `Peek` order. Unlike
// [Queue.All], it does not remove them. The queue MUST NOT be modified during
// iteration.
func Values[T comparable](q Queue[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range q.Len() {
			x, _ := q.Peek(i)
			if !yield(x) {
				return
			}
		}
	}
}

// Fold returns the result of repeatedly applying `fn` to the accumulator,
// starting with `init`, and each element.
func Fold[T comparable, A any](q Queue[T], init A, fn func(A, T) A) A {
	acc := init
	for x := range Values(q) {
		acc = fn(acc, x)
	}
	return acc
}

// Reduce is equivalent to [Fold] with the first element as the initial
// accumulator. It returns false if the queue is empty.
func Reduce[T comparable](q Queue[T], fn func(T, T) T) (T, bool) {
	var (
		acc   T
		found bool
	)
	for x := range Values(q) {
		if !found {
			acc, found = x, true
			continue
		}
		acc = fn(acc, x)
	}
	return acc, found
}

// AnyMatch reports whether `pred` returns true for at least one element.
func AnyMatch[T comparable](q Queue[T], pred func(T) bool) bool {
	_, ok := FindFirst(q, pred)
	return ok
}

// AllMatch reports whether `pred` returns true for every element, which is
// vacuously true for an empty queue.
func AllMatch[T comparable](q Queue[T], pred func(T) bool) bool {
	for x := range Values(q) {
		if !pred(x) {
			return false
		}
	}
	return true
}

// NoneMatch reports whether `pred` returns false for every element.
func NoneMatch[T comparable](q Queue[T], pred func(T) bool) bool {
	return !AnyMatch(q, pred)
}

// Count returns the number of elements for which `pred` returns true.
func Count[T comparable](q Queue[T], pred func(T) bool) int {
	var n int
	for x := range Values(q) {
		if pred(x) {
			n++
		}
	}
	return n
}

// FindFirst returns the first element for which `pred` returns true.
func FindFirst[T comparable](q Queue[T], pred func(T) bool) (T, bool) {
	for x := range Values(q) {
		if pred(x) {
			return x, true
		}
	}
	return zero[T](), false
}
