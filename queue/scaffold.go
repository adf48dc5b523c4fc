// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import (
	"fmt"
	"reflect"
	"strings"
)

// Equal reports whether `a` and `b` have the same length and `a.Peek(i)` is the
// same element as `b.Peek(i)` for all valid `i`. Elements are compared with
// `==` except that NaN is equal to NaN. For a [Heap], this depends on buffer
// layout so two heaps holding the same elements MAY be unequal; see
// [SameElements]. A nil queue, including a nil pointer to a concrete queue, is
// only equal to another nil queue.
func Equal[T comparable](a, b Queue[T]) bool {
	if an, bn := isNil(a), isNil(b); an || bn {
		return an && bn
	}
	n := a.Len()
	if b.Len() != n {
		return false
	}
	for i := range n {
		x, _ := a.Peek(i)
		y, _ := b.Peek(i)
		if !same(x, y) {
			return false
		}
	}
	return true
}

func isNil[T comparable](q Queue[T]) bool {
	if q == nil {
		return true
	}
	v := reflect.ValueOf(q)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// SameElements reports whether `a` and `b` hold the same multiset of elements,
// regardless of order. Elements are compared as by [Equal].
func SameElements[T comparable](a, b Queue[T]) bool {
	if an, bn := isNil(a), isNil(b); an || bn {
		return an && bn
	}
	if a.Len() != b.Len() {
		return false
	}

	// NaN keys never match on map lookup so are counted separately.
	var nans int
	counts := make(map[T]int)
	a.ForEachPeek(func(x T) {
		if isNaN(x) {
			nans++
		} else {
			counts[x]++
		}
	})

	ok := true
	b.ForEachPeek(func(x T) {
		switch {
		case isNaN(x):
			nans--
		case counts[x] == 0:
			ok = false
		default:
			counts[x]--
		}
	})
	return ok && nans == 0
}

// A Hasher returns the hash of a single element.
type Hasher[T any] func(T) uint64

// Hash returns the left fold `31*hash + h(x)` over all elements in `Peek`
// order, starting from zero. Queues that are [Equal] have equal hashes.
func Hash[T comparable](q Queue[T], h Hasher[T]) uint64 {
	var hash uint64
	for x := range Values(q) {
		hash = 31*hash + h(x)
	}
	return hash
}

// String returns the elements in `Peek` order, formatted as "[a, b, c]".
func String[T comparable](q Queue[T]) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range q.Len() {
		if i > 0 {
			b.WriteString(", ")
		}
		x, _ := q.Peek(i)
		fmt.Fprint(&b, x)
	}
	b.WriteByte(']')
	return b.String()
}
