// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package queuetest provides testing helpers for the [queue] package.
package queuetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"

	"github.com/ava-labs/pqueue/queue"
)

// NoLeak calls [goleak.VerifyTestMain] with [goleak.IgnoreCurrent].
func NoLeak(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreCurrent())
}

// HeapViolation returns the first parent index `i` for which `order` places
// `q.Peek(i)` after one of its children, or -1 if the heap invariant holds.
func HeapViolation[T comparable](q queue.Queue[T], order queue.Comparator[T]) int {
	n := q.Len()
	for i := range n {
		parent, _ := q.Peek(i)
		for _, c := range [2]int{2*i + 1, 2*i + 2} {
			if c >= n {
				continue
			}
			if child, _ := q.Peek(c); order(parent, child) > 0 {
				return i
			}
		}
	}
	return -1
}

// RequireHeapInvariant fails the test immediately if [HeapViolation] finds a
// parent that is greater than one of its children.
func RequireHeapInvariant[T comparable](tb testing.TB, q queue.Queue[T], order queue.Comparator[T]) {
	tb.Helper()
	if i := HeapViolation(q, order); i != -1 {
		tb.Fatalf("heap invariant violated at index %d of %v", i, q)
	}
}

// RequireContents fails the test immediately if `q.ToSlice(nil)`, which is in
// `Peek` order, differs from `want`.
func RequireContents[T comparable](tb testing.TB, q queue.Queue[T], want []T) {
	tb.Helper()
	if diff := cmp.Diff(want, q.ToSlice(nil), cmpopts.EquateEmpty()); diff != "" {
		tb.Fatalf("%T.ToSlice(nil) diff (-want +got):\n%s", q, diff)
	}
}

// Drained returns all elements passed to the [queue.Consumer] by
// [queue.Queue.Drain].
func Drained[T comparable](q queue.Queue[T]) []T {
	var got []T
	q.Drain(func(x T) {
		got = append(got, x)
	})
	return got
}
